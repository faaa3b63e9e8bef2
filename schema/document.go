package schema

import "time"

// Document is the unit stored in and returned from the vector store.
// Content is the rendered plot description that gets embedded; Metadata
// carries the raw land-bank fields for answer generation.
type Document struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Vector    []float32      `json:"vector,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
}

// SearchResult pairs a document with its similarity score in [0,1].
type SearchResult struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// SearchOptions controls a single vector search.
type SearchOptions struct {
	TopK      int     `json:"top_k"`
	Threshold float64 `json:"threshold"`
}
