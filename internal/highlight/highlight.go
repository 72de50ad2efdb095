// Package highlight builds scored, highlighted passages from parsed OCR
// documents. It is the producer side of the snippet contract: it constructs
// snippets with page regions, accumulates highlight spans as it walks the
// match positions, scores each passage against its siblings, and returns them
// best-first.
package highlight

import (
	"math"

	"github.com/okibi/terasu/internal/ocr"
	"github.com/okibi/terasu/internal/snippet"
)

// Config controls passage construction.
type Config struct {
	// ContextWords is how many words of context to keep on each side of a
	// match.
	ContextWords int
	// MaxPassages caps how many passages are returned per document.
	MaxPassages int
	// PreTag and PostTag wrap highlighted runs in the passage text.
	PreTag  string
	PostTag string
}

// DefaultConfig returns the default passage settings.
func DefaultConfig() *Config {
	return &Config{
		ContextWords: 8,
		MaxPassages:  3,
		PreTag:       "<em>",
		PostTag:      "</em>",
	}
}

// Highlighter builds passages for one configuration.
type Highlighter struct {
	cfg Config
}

// New creates a Highlighter. A nil config uses defaults; zero fields are
// filled from the defaults.
func New(cfg *Config) *Highlighter {
	def := DefaultConfig()
	if cfg == nil {
		cfg = def
	}
	c := *cfg
	if c.ContextWords <= 0 {
		c.ContextWords = def.ContextWords
	}
	if c.MaxPassages <= 0 {
		c.MaxPassages = def.MaxPassages
	}
	if c.PreTag == "" {
		c.PreTag = def.PreTag
	}
	if c.PostTag == "" {
		c.PostTag = def.PostTag
	}
	return &Highlighter{cfg: c}
}

// Passages scans doc for the query's terms and returns highlighted snippets,
// best first. Returns nil when the query has no usable terms or nothing
// matches.
func (h *Highlighter) Passages(doc *ocr.Document, query string) []*snippet.Snippet {
	terms := Tokenize(query)
	if len(terms) == 0 || doc == nil {
		return nil
	}
	words := flatten(doc)
	matched := make([]bool, len(words))
	any := false
	for i, w := range words {
		if matchesAny(w.Text, terms) {
			matched[i] = true
			any = true
		}
	}
	if !any {
		return nil
	}

	snippets := make([]*snippet.Snippet, 0)
	for _, win := range windows(matched, h.cfg.ContextWords) {
		p := h.buildPassage(doc, words, matched, win)
		p.snip.SetScore(h.scorePassage(words, matched, win, len(terms)))
		snippets = append(snippets, p.snip)
	}

	// The snippet contract only orders ascending; best-first presentation is
	// on us.
	snippet.SortByScore(snippets)
	reverse(snippets)
	if len(snippets) > h.cfg.MaxPassages {
		snippets = snippets[:h.cfg.MaxPassages]
	}
	return snippets
}

// scorePassage rates one window over OCR words.
func (h *Highlighter) scorePassage(words []posWord, matched []bool, win window, termCount int) float64 {
	seen := make(map[string]bool)
	total := 0
	for i := win.start; i <= win.end; i++ {
		if matched[i] {
			total++
			seen[normalize(words[i].Text)] = true
		}
	}
	return scoreWindow(total, len(seen), win.end-win.start+1, termCount)
}

// scoreWindow rates one passage window: term coverage dominates, repeated
// hits add diminishing returns, and denser passages get a small boost.
func scoreWindow(total, distinct, size, termCount int) float64 {
	if total == 0 || termCount == 0 {
		return 0
	}
	coverage := float64(distinct) / float64(termCount)
	score := coverage * 2.0
	score += math.Min(float64(total-1)*0.25, 1.0)
	if size > 0 {
		score += float64(total) / float64(size)
	}
	return score
}

func reverse(s []*snippet.Snippet) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
