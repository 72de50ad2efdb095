package models

import "github.com/okibi/terasu/internal/snippet"

// SearchResult represents a single search hit: document metadata, its
// retrieval score, and the highlighted passages serialized as ordered trees.
// Snippet key order is part of the response contract, which is why Snippets
// holds snippet.Node values rather than plain maps.
type SearchResult struct {
	ID       string         `json:"id"`
	Title    string         `json:"title,omitempty"`
	Path     string         `json:"path,omitempty"`
	Format   string         `json:"format"`
	Score    float64        `json:"score"`
	Rank     int            `json:"rank"`
	Snippets []snippet.Node `json:"snippets"`
}

// SearchResponse is the response for a search request. Suggestion is a
// rewritten query worth retrying, set only when the query matched nothing and
// the index's term dictionary held a close spelling.
type SearchResponse struct {
	Results    []*SearchResult `json:"results"`
	Total      int             `json:"total"`
	QueryTime  int64           `json:"query_time_ms"`
	Query      string          `json:"query"`
	Suggestion string          `json:"suggestion,omitempty"`
}
