// Package provider implements embedding providers: a hosted OpenAI-compatible
// endpoint and a local ONNX model via hugot. Providers are selected and
// injected at the composition root, never read from ambient environment
// state inside core logic.
package provider

import "context"

// Embedder generates embedding vectors for text.
type Embedder interface {
	// Embed generates one vector per input text, in input order.
	Embed(ctx context.Context, req EmbeddingRequest) (EmbeddingResponse, error)

	// Close releases any resources held by the provider.
	Close() error
}

// EmbeddingRequest represents a request for embeddings.
type EmbeddingRequest struct {
	texts []string
}

// NewEmbeddingRequest creates an EmbeddingRequest.
func NewEmbeddingRequest(texts []string) EmbeddingRequest {
	t := make([]string, len(texts))
	copy(t, texts)
	return EmbeddingRequest{texts: t}
}

// Texts returns the texts to embed.
func (r EmbeddingRequest) Texts() []string {
	t := make([]string, len(r.texts))
	copy(t, r.texts)
	return t
}

// EmbeddingResponse represents an embedding response.
type EmbeddingResponse struct {
	embeddings [][]float64
	tokens     int
}

// NewEmbeddingResponse creates an EmbeddingResponse.
func NewEmbeddingResponse(embeddings [][]float64, tokens int) EmbeddingResponse {
	embs := make([][]float64, len(embeddings))
	for i, e := range embeddings {
		embs[i] = make([]float64, len(e))
		copy(embs[i], e)
	}
	return EmbeddingResponse{embeddings: embs, tokens: tokens}
}

// Embeddings returns the embedding vectors.
func (r EmbeddingResponse) Embeddings() [][]float64 {
	embs := make([][]float64, len(r.embeddings))
	for i, e := range r.embeddings {
		embs[i] = make([]float64, len(e))
		copy(embs[i], e)
	}
	return embs
}

// Tokens returns the total token usage reported by the provider, or 0 when
// the provider does not report usage.
func (r EmbeddingResponse) Tokens() int { return r.tokens }
