package v1

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/doctrove/doctrove"
	"github.com/doctrove/doctrove/infrastructure/api/middleware"
	"github.com/doctrove/doctrove/infrastructure/api/v1/dto"
	"github.com/go-chi/chi/v5"
)

// SearchRouter handles the similarity search endpoint.
type SearchRouter struct {
	client *doctrove.Client
	logger *slog.Logger
}

// NewSearchRouter creates a new SearchRouter.
func NewSearchRouter(client *doctrove.Client) *SearchRouter {
	return &SearchRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for search endpoints.
func (r *SearchRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.Search)

	return router
}

// Search handles GET /api/v1/search?q=...&k=.... Results are ranked across
// every collection; k defaults to the client's search limit.
func (r *SearchRouter) Search(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query().Get("q")
	if query == "" {
		middleware.WriteError(w, req, middleware.NewValidationError("query parameter q is required"), r.logger)
		return
	}

	k := r.client.SearchLimit()
	if raw := req.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			middleware.WriteError(w, req, middleware.NewValidationError(fmt.Sprintf("invalid k: %q", raw)), r.logger)
			return
		}
		k = parsed
	}

	results, err := r.client.Search.Query(req.Context(), query, k)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	data := make([]dto.SearchResult, len(results))
	for i, res := range results {
		data[i] = dto.SearchResult{
			Content:  res.Content(),
			CustomID: res.CustomID(),
			Score:    res.Score(),
		}
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SearchResponse{Query: query, Results: data})
}
