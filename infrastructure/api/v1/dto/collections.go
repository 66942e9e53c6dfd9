// Package dto defines the request and response bodies for the v1 API.
package dto

// ChunkInput is one document chunk in a collection update request.
type ChunkInput struct {
	Text     string `json:"text"`
	CustomID string `json:"custom_id,omitempty"`
}

// CollectionUpdateRequest is the body of PUT /api/v1/collections/{name}.
type CollectionUpdateRequest struct {
	Chunks []ChunkInput `json:"chunks"`
}

// CollectionUpdateResponse reports the outcome of a collection update.
type CollectionUpdateResponse struct {
	Collection string `json:"collection"`
	Chunks     int    `json:"chunks"`
}

// CollectionListResponse is the body of GET /api/v1/collections.
type CollectionListResponse struct {
	Collections []string `json:"collections"`
}
