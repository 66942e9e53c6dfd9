// Package v1 implements the v1 HTTP API routes.
package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/doctrove/doctrove"
	"github.com/doctrove/doctrove/domain/corpus"
	"github.com/doctrove/doctrove/infrastructure/api/middleware"
	"github.com/doctrove/doctrove/infrastructure/api/v1/dto"
	"github.com/go-chi/chi/v5"
)

// CollectionsRouter handles collection lifecycle endpoints.
type CollectionsRouter struct {
	client *doctrove.Client
	logger *slog.Logger
}

// NewCollectionsRouter creates a new CollectionsRouter.
func NewCollectionsRouter(client *doctrove.Client) *CollectionsRouter {
	return &CollectionsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for collection endpoints.
func (r *CollectionsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Put("/{name}", r.Update)
	router.Delete("/{name}", r.Delete)

	return router
}

// List handles GET /api/v1/collections.
func (r *CollectionsRouter) List(w http.ResponseWriter, req *http.Request) {
	names := r.client.Collections.List(req.Context())
	middleware.WriteJSON(w, http.StatusOK, dto.CollectionListResponse{Collections: names})
}

// Update handles PUT /api/v1/collections/{name}. It creates the collection
// or replaces its entire contents.
func (r *CollectionsRouter) Update(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")
	if name == "" {
		middleware.WriteError(w, req, middleware.NewValidationError("collection name is required"), r.logger)
		return
	}

	var body dto.CollectionUpdateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewValidationError(fmt.Sprintf("decode request body: %v", err)), r.logger)
		return
	}

	chunks := make([]corpus.Chunk, len(body.Chunks))
	for i, c := range body.Chunks {
		if c.CustomID != "" {
			chunks[i] = corpus.NewChunkWithID(c.Text, c.CustomID)
		} else {
			chunks[i] = corpus.NewChunk(c.Text)
		}
	}

	if err := r.client.Collections.Update(req.Context(), name, chunks); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.CollectionUpdateResponse{
		Collection: name,
		Chunks:     len(chunks),
	})
}

// Delete handles DELETE /api/v1/collections/{name}. Deleting an unknown
// collection succeeds.
func (r *CollectionsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")
	if name == "" {
		middleware.WriteError(w, req, middleware.NewValidationError("collection name is required"), r.logger)
		return
	}

	if err := r.client.Collections.Delete(req.Context(), name); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
