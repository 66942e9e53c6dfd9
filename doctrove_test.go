package doctrove_test

import (
	"context"
	"testing"

	"github.com/doctrove/doctrove"
	"github.com/doctrove/doctrove/domain/corpus"
	"github.com/doctrove/doctrove/infrastructure/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapEmbedder implements provider.Embedder with a fixed text-to-vector map.
type mapEmbedder struct {
	vectors map[string][]float64
}

func (m mapEmbedder) Embed(_ context.Context, req provider.EmbeddingRequest) (provider.EmbeddingResponse, error) {
	texts := req.Texts()
	result := make([][]float64, len(texts))
	for i, text := range texts {
		if v, ok := m.vectors[text]; ok {
			result[i] = v
		} else {
			result[i] = []float64{0, 0}
		}
	}
	return provider.NewEmbeddingResponse(result, 0), nil
}

func (m mapEmbedder) Close() error { return nil }

func newTestClient(t *testing.T, vectors map[string][]float64) *doctrove.Client {
	t.Helper()
	client, err := doctrove.New(
		doctrove.WithDatabaseURL("sqlite:///:memory:"),
		doctrove.WithEmbeddingProvider(mapEmbedder{vectors: vectors}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewRequiresDatabase(t *testing.T) {
	_, err := doctrove.New(
		doctrove.WithEmbeddingProvider(mapEmbedder{}),
	)
	require.ErrorIs(t, err, doctrove.ErrNoDatabase)
}

func TestNewRequiresEmbedder(t *testing.T) {
	_, err := doctrove.New(
		doctrove.WithDatabaseURL("sqlite:///:memory:"),
	)
	require.ErrorIs(t, err, doctrove.ErrNoEmbedder)
}

func TestClientLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, map[string][]float64{
		"the red fox jumps": {1, 0},
		"a clear blue sky":  {0, 1},
		"red fox":           {1, 0},
	})

	require.NoError(t, client.Collections.Update(ctx, "docs", []corpus.Chunk{
		corpus.NewChunk("the red fox jumps"),
		corpus.NewChunk("a clear blue sky"),
	}))

	assert.Equal(t, []string{"docs"}, client.Collections.List(ctx))

	results, err := client.Search.Query(ctx, "red fox", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "the red fox jumps", results[0].Content())
	assert.InDelta(t, 1.0, results[0].Score(), 1e-9)

	require.NoError(t, client.Collections.Delete(ctx, "docs"))
	assert.Empty(t, client.Collections.List(ctx))
}

func TestClientCloseIsFinal(t *testing.T) {
	client, err := doctrove.New(
		doctrove.WithDatabaseURL("sqlite:///:memory:"),
		doctrove.WithEmbeddingProvider(mapEmbedder{}),
	)
	require.NoError(t, err)

	require.NoError(t, client.Close())
	require.ErrorIs(t, client.Close(), doctrove.ErrClientClosed)
}

func TestClientSplitText(t *testing.T) {
	client := newTestClient(t, nil)

	chunks, err := client.SplitText("first paragraph\n\nsecond paragraph")
	require.NoError(t, err)
	assert.Equal(t, []string{"first paragraph\n\nsecond paragraph"}, chunks)
}

func TestClientSearchLimitDefault(t *testing.T) {
	client := newTestClient(t, nil)
	assert.Equal(t, 4, client.SearchLimit())

	custom, err := doctrove.New(
		doctrove.WithDatabaseURL("sqlite:///:memory:"),
		doctrove.WithEmbeddingProvider(mapEmbedder{}),
		doctrove.WithSearchLimit(9),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = custom.Close() })
	assert.Equal(t, 9, custom.SearchLimit())
}
