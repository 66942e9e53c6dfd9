// Package corpus defines the domain model for collection-scoped vector
// storage: chunks of text grouped into named collections, embedded into
// fixed-dimension vectors, and ranked by cosine similarity.
package corpus

// Chunk is a unit of text stored together with one embedding vector.
// The custom ID is an optional caller-assigned key carried alongside the
// text; it has no uniqueness requirement.
type Chunk struct {
	text     string
	customID string
}

// NewChunk creates a Chunk with no custom ID.
func NewChunk(text string) Chunk {
	return Chunk{text: text}
}

// NewChunkWithID creates a Chunk with a caller-assigned custom ID.
func NewChunkWithID(text, customID string) Chunk {
	return Chunk{text: text, customID: customID}
}

// Text returns the chunk content.
func (c Chunk) Text() string { return c.text }

// CustomID returns the caller-assigned ID, or empty if none was given.
func (c Chunk) CustomID() string { return c.customID }

// Embedding pairs a chunk with its computed vector, ready for storage.
type Embedding struct {
	chunk  Chunk
	vector []float64
}

// NewEmbedding creates an Embedding. The vector is copied.
func NewEmbedding(chunk Chunk, vector []float64) Embedding {
	cp := make([]float64, len(vector))
	copy(cp, vector)
	return Embedding{chunk: chunk, vector: cp}
}

// Chunk returns the source chunk.
func (e Embedding) Chunk() Chunk { return e.chunk }

// Vector returns a copy of the embedding vector.
func (e Embedding) Vector() []float64 {
	cp := make([]float64, len(e.vector))
	copy(cp, e.vector)
	return cp
}

// Dimension returns the vector dimension.
func (e Embedding) Dimension() int { return len(e.vector) }
