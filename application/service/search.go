package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/doctrove/doctrove/domain/corpus"
)

// Search ranks stored chunks by similarity to an arbitrary query,
// irrespective of which collection they belong to. Read-only.
type Search struct {
	searcher corpus.Searcher
	embedder corpus.Embedder
	logger   *slog.Logger
}

// NewSearch creates a Search service. The embedder must be the same
// configuration used to populate the store; a dimension mismatch surfaces
// as a storage-layer error.
func NewSearch(searcher corpus.Searcher, embedder corpus.Embedder, logger *slog.Logger) *Search {
	if logger == nil {
		logger = slog.Default()
	}
	return &Search{searcher: searcher, embedder: embedder, logger: logger}
}

// Query embeds the query text and returns the globally top-k nearest stored
// chunks by cosine distance, as (content, score) pairs with
// score = 1 - distance. k <= 0 and an empty store both yield an empty
// slice; neither is an error.
func (s *Search) Query(ctx context.Context, query string, k int) ([]corpus.SearchResult, error) {
	if k <= 0 {
		return []corpus.SearchResult{}, nil
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return []corpus.SearchResult{}, nil
	}

	results, err := s.searcher.Search(ctx, vectors[0], k)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("similarity search", "query_len", len(query), "k", k, "results", len(results))
	return results, nil
}
