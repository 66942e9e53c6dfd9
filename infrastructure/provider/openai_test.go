package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type embeddingAPIResponse struct {
	Object string `json:"object"`
	Data   []struct {
		Object    string    `json:"object"`
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

func embeddingResponseJSON(vectors [][]float32, tokens int) []byte {
	var resp embeddingAPIResponse
	resp.Object = "list"
	for i, v := range vectors {
		resp.Data = append(resp.Data, struct {
			Object    string    `json:"object"`
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		}{Object: "embedding", Index: i, Embedding: v})
	}
	resp.Usage.TotalTokens = tokens
	data, _ := json.Marshal(resp)
	return data
}

func newTestProvider(baseURL string) *OpenAIProvider {
	return NewOpenAIProvider(OpenAIConfig{
		APIKey:       "test-key",
		BaseURL:      baseURL,
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
	})
}

func TestOpenAIProviderEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(embeddingResponseJSON([][]float32{{1, 0}, {0, 1}}, 7))
	}))
	t.Cleanup(server.Close)

	p := newTestProvider(server.URL + "/v1")

	resp, err := p.Embed(context.Background(), NewEmbeddingRequest([]string{"a", "b"}))
	require.NoError(t, err)

	embeddings := resp.Embeddings()
	require.Len(t, embeddings, 2)
	assert.Equal(t, []float64{1, 0}, embeddings[0])
	assert.Equal(t, []float64{0, 1}, embeddings[1])
	assert.Equal(t, 7, resp.Tokens())
}

func TestOpenAIProviderEmbedEmptyInput(t *testing.T) {
	p := newTestProvider("http://unreachable.invalid/v1")

	resp, err := p.Embed(context.Background(), NewEmbeddingRequest(nil))
	require.NoError(t, err)
	assert.Empty(t, resp.Embeddings())
}

func TestOpenAIProviderRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(embeddingResponseJSON([][]float32{{1, 0}}, 1))
	}))
	t.Cleanup(server.Close)

	p := newTestProvider(server.URL + "/v1")

	resp, err := p.Embed(context.Background(), NewEmbeddingRequest([]string{"a"}))
	require.NoError(t, err)
	assert.Len(t, resp.Embeddings(), 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOpenAIProviderDoesNotRetryAuthFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	t.Cleanup(server.Close)

	p := newTestProvider(server.URL + "/v1")

	_, err := p.Embed(context.Background(), NewEmbeddingRequest([]string{"a"}))
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusUnauthorized, provErr.StatusCode())
}

func TestOpenAIProviderRetriesCountMismatch(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		// Always one vector short.
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(embeddingResponseJSON([][]float32{{1, 0}}, 1))
	}))
	t.Cleanup(server.Close)

	p := newTestProvider(server.URL + "/v1")

	_, err := p.Embed(context.Background(), NewEmbeddingRequest([]string{"a", "b"}))
	require.Error(t, err)
	// maxRetries of 2 means three attempts in total.
	assert.Equal(t, int32(3), calls.Load())
}

func TestOpenAIProviderHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"unavailable","type":"server_error"}}`))
	}))
	t.Cleanup(server.Close)

	p := NewOpenAIProvider(OpenAIConfig{
		APIKey:       "test-key",
		BaseURL:      server.URL + "/v1",
		MaxRetries:   100,
		InitialDelay: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := p.Embed(ctx, NewEmbeddingRequest([]string{"a"}))
	require.Error(t, err)
}
