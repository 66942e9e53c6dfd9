package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/doctrove/doctrove"
	apimiddleware "github.com/doctrove/doctrove/infrastructure/api/middleware"
	v1 "github.com/doctrove/doctrove/infrastructure/api/v1"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// APIServer provides an HTTP API backed by a doctrove Client.
type APIServer struct {
	client *doctrove.Client
	server *Server
	logger *slog.Logger
}

// NewAPIServer creates a new APIServer wired to the given Client.
func NewAPIServer(client *doctrove.Client) *APIServer {
	return &APIServer{
		client: client,
		logger: client.Logger(),
	}
}

// mountRoutes wires up all v1 API routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	collectionsRouter := v1.NewCollectionsRouter(a.client)
	searchRouter := v1.NewSearchRouter(a.client)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))
		r.Use(apimiddleware.Logging(a.logger))

		r.Mount("/collections", collectionsRouter.Routes())
		r.Mount("/search", searchRouter.Routes())
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = &server

	a.mountRoutes(server.Router())

	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the routes as an http.Handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	router := chi.NewRouter()
	a.mountRoutes(router)
	return router
}
