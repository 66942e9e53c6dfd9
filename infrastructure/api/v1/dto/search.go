package dto

// SearchResult is one ranked chunk in a search response.
type SearchResult struct {
	Content  string  `json:"content"`
	CustomID string  `json:"custom_id,omitempty"`
	Score    float64 `json:"score"`
}

// SearchResponse is the body of GET /api/v1/search.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}
