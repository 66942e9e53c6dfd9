package corpus

// SearchResult is a transient (content, score) pair returned by similarity
// search. Score is the cosine similarity between the query vector and the
// stored vector: 1 for identical direction, theoretically down to -1.
// Results are never persisted.
type SearchResult struct {
	content  string
	customID string
	score    float64
}

// NewSearchResult creates a SearchResult.
func NewSearchResult(content, customID string, score float64) SearchResult {
	return SearchResult{content: content, customID: customID, score: score}
}

// Content returns the stored chunk text.
func (r SearchResult) Content() string { return r.content }

// CustomID returns the chunk's caller-assigned ID, or empty.
func (r SearchResult) CustomID() string { return r.customID }

// Score returns the similarity score.
func (r SearchResult) Score() float64 { return r.score }
