package models

import (
	"fmt"
	"strings"
)

// SearchQuery represents a search request.
type SearchQuery struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
	// MaxSnippets caps highlighted passages per document; 0 uses the server
	// default.
	MaxSnippets int `json:"max_snippets,omitempty"`
	// ContextWords overrides how much context surrounds each match; 0 uses
	// the server default.
	ContextWords int `json:"context_words,omitempty"`
	// MinScore drops documents scoring below the threshold.
	MinScore float64 `json:"min_score,omitempty"`
}

// Validate ensures the search query has valid fields and sets defaults.
// Returns an error if the query is empty; otherwise normalizes the limit.
func (q *SearchQuery) Validate() error {
	q.Query = strings.TrimSpace(q.Query)
	if q.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return nil
}
