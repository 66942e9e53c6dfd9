// Package service provides the application services that orchestrate the
// embedding provider and the stores: collection lifecycle and similarity
// search.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/doctrove/doctrove/domain/corpus"
)

// Collections owns collection lifecycle: create, full replacement, and
// deletion of named collections, keeping the registry and embedding rows
// consistent. It is the only component that mutates the store.
type Collections struct {
	store    corpus.CollectionStore
	embedder corpus.Embedder
	logger   *slog.Logger
}

// NewCollections creates a Collections service.
func NewCollections(store corpus.CollectionStore, embedder corpus.Embedder, logger *slog.Logger) *Collections {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collections{store: store, embedder: embedder, logger: logger}
}

// List returns every registered collection name. It never fails: an
// unreadable registry degrades to an empty set, with the underlying error
// logged, so this call can never block initialization. The error is
// collapsed here, at the boundary; the store itself reports it faithfully.
func (s *Collections) List(ctx context.Context) []string {
	names, err := s.store.List(ctx)
	if err != nil {
		s.logger.Warn("listing collections failed, treating registry as empty", "error", err)
		return []string{}
	}
	return names
}

// Update creates the collection if the name is new, or replaces its entire
// contents if it already exists. Chunks are embedded before anything is
// written, and the delete-then-insert of a replacement runs in one
// transaction: a provider or store failure mid-update leaves nothing
// half-written.
//
// An empty chunks slice is an explicit no-op: an empty collection is never
// created.
func (s *Collections) Update(ctx context.Context, name string, chunks []corpus.Chunk) error {
	if len(chunks) == 0 {
		s.logger.Debug("update with no chunks is a no-op", "collection", name)
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text()
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed %d chunks for collection %s: %w", len(chunks), name, err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	embeddings := make([]corpus.Embedding, len(chunks))
	for i, chunk := range chunks {
		embeddings[i] = corpus.NewEmbedding(chunk, vectors[i])
	}

	existing, err := s.store.Lookup(ctx, name)
	switch {
	case err == nil:
		s.logger.Info("replacing collection", "collection", name, "chunks", len(chunks))
		return s.store.Replace(ctx, existing, embeddings)
	case errors.Is(err, corpus.ErrCollectionNotFound):
		s.logger.Info("creating collection", "collection", name, "chunks", len(chunks))
		return s.store.Insert(ctx, corpus.NewCollection(name), embeddings)
	default:
		return err
	}
}

// Delete removes a collection and all its embedding rows. Deleting a name
// that does not exist succeeds silently.
func (s *Collections) Delete(ctx context.Context, name string) error {
	s.logger.Info("deleting collection", "collection", name)
	return s.store.Delete(ctx, name)
}
