package provider

import (
	"context"
	"fmt"

	"github.com/doctrove/doctrove/domain/corpus"
)

// corpusEmbedder adapts a provider Embedder to the plain-slice
// corpus.Embedder interface the domain services depend on.
type corpusEmbedder struct {
	embedder Embedder
}

// NewCorpusEmbedder wraps a provider Embedder as a corpus.Embedder.
func NewCorpusEmbedder(embedder Embedder) corpus.Embedder {
	return corpusEmbedder{embedder: embedder}
}

// Embed generates one vector per text, verifying the provider honored the
// one-vector-per-text contract.
func (a corpusEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	resp, err := a.embedder.Embed(ctx, NewEmbeddingRequest(texts))
	if err != nil {
		return nil, err
	}

	embeddings := resp.Embeddings()
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d vectors for %d texts", len(embeddings), len(texts))
	}
	return embeddings, nil
}
