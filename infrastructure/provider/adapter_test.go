package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder implements Embedder with canned responses.
type stubEmbedder struct {
	embeddings [][]float64
	err        error
}

func (s stubEmbedder) Embed(_ context.Context, _ EmbeddingRequest) (EmbeddingResponse, error) {
	if s.err != nil {
		return EmbeddingResponse{}, s.err
	}
	return NewEmbeddingResponse(s.embeddings, 0), nil
}

func (s stubEmbedder) Close() error { return nil }

func TestCorpusEmbedderPassesThroughVectors(t *testing.T) {
	adapter := NewCorpusEmbedder(stubEmbedder{embeddings: [][]float64{{1, 0}, {0, 1}}})

	vectors, err := adapter.Embed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, vectors)
}

func TestCorpusEmbedderRejectsCountMismatch(t *testing.T) {
	adapter := NewCorpusEmbedder(stubEmbedder{embeddings: [][]float64{{1, 0}}})

	_, err := adapter.Embed(context.Background(), []string{"a", "b"})
	require.Error(t, err)
}

func TestCorpusEmbedderPropagatesProviderError(t *testing.T) {
	providerErr := errors.New("provider down")
	adapter := NewCorpusEmbedder(stubEmbedder{err: providerErr})

	_, err := adapter.Embed(context.Background(), []string{"a"})
	require.ErrorIs(t, err, providerErr)
}

func TestEmbeddingRequestCopiesTexts(t *testing.T) {
	source := []string{"a", "b"}
	req := NewEmbeddingRequest(source)
	source[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, req.Texts())
}

func TestEmbeddingResponseCopiesVectors(t *testing.T) {
	source := [][]float64{{1, 2}}
	resp := NewEmbeddingResponse(source, 3)
	source[0][0] = 99

	assert.Equal(t, [][]float64{{1, 2}}, resp.Embeddings())
	assert.Equal(t, 3, resp.Tokens())
}
