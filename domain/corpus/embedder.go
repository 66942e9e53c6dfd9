package corpus

import "context"

// Embedder converts text into fixed-dimension embedding vectors. The output
// dimension is constant for a given embedder configuration and must match
// across everything written to one store; mixing dimensions is rejected by
// the storage layer where it can be (typed vector columns) and is otherwise
// a documented precondition.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}
