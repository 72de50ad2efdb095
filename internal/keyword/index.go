// Package keyword provides keyword (BM25) indexing and candidate retrieval.
package keyword

import (
	"context"

	"github.com/okibi/terasu/internal/models"
)

// SearchOptions are optional retrieval parameters. Nil means defaults.
type SearchOptions struct {
	// TitleBoost multiplies the score contribution from title matches.
	// Values > 1 make title matches rank higher; 1.0 disables the boost.
	TitleBoost float64
	// PhraseBoost multiplies the score of documents where the query terms
	// appear adjacent, for multi-term queries. 1.0 disables the boost.
	PhraseBoost float64
}

// Index defines keyword retrieval operations.
type Index interface {
	Index(ctx context.Context, id string, doc *models.Document) error
	Search(ctx context.Context, query string, limit int, opts *SearchOptions) ([]*Result, error)
	Delete(ctx context.Context, id string) error
	DocCount() (uint64, error)
	Close() error
}

// Result is a single keyword retrieval hit.
type Result struct {
	ID    string
	Score float64
}

// TermDictionary exposes the index's term dictionary. Implemented by
// BleveIndex; the Suggester uses it to build did-you-mean rewrites.
type TermDictionary interface {
	// Terms returns every unique indexed term with its document frequency.
	Terms() ([]TermEntry, error)
}

// TermEntry is one dictionary term and the number of documents containing it.
type TermEntry struct {
	Term string
	Freq int
}
