package snippet

import (
	"math"
	"sort"
)

// Snippet is one ranked, highlighted passage. Text, pages, and regions are
// fixed at construction; highlight spans are append-only and the score is
// written once by the ranking step. A Snippet is a single-owner value: it is
// populated by the highlighter, scored, serialized, and discarded, with no
// internal locking.
type Snippet struct {
	text    string
	pages   []Page
	regions []Box
	spans   [][]Box
	score   float64
}

// New creates a snippet with the given plaintext (including any highlight
// markers already embedded), the pages it spans, and the regions it occupies
// on those pages. The highlight span list starts empty but non-nil, so the
// serialized tree always carries a highlights key. No validation happens
// here; a region referencing a page missing from pages surfaces as an error
// from ToNode.
func New(text string, pages []Page, regions []Box) *Snippet {
	return &Snippet{
		text:    text,
		pages:   pages,
		regions: regions,
		spans:   [][]Box{},
	}
}

// Text returns the passage text with embedded highlight markers.
func (s *Snippet) Text() string { return s.text }

// Pages returns the pages the passage spans.
func (s *Snippet) Pages() []Page { return s.pages }

// Regions returns the regions the passage occupies on its pages.
func (s *Snippet) Regions() []Box { return s.regions }

// HighlightSpans returns the accumulated highlight groups in discovery order.
// Span coordinates are relative to the snippet region, not the page.
func (s *Snippet) HighlightSpans() [][]Box { return s.spans }

// AddHighlightSpan appends one highlight group. A group is the region(s) of a
// single highlighted occurrence; it has multiple boxes when the occurrence
// wraps over a line or page break. The input is copied, so later mutation of
// span by the caller does not alias stored state.
func (s *Snippet) AddHighlightSpan(span []Box) {
	group := make([]Box, len(span))
	copy(group, span)
	s.spans = append(s.spans, group)
}

// Score returns the passage's relevance score relative to its document's
// other passages.
func (s *Snippet) Score() float64 { return s.score }

// SetScore stores the passage's relevance score. Any value is accepted,
// including NaN and negatives; see Less for how NaN orders.
func (s *Snippet) SetScore(score float64) { s.score = score }

// Less reports whether s orders before other, ascending by score. NaN scores
// sort after every numeric score; two NaN scores are tied. This comparator is
// the only ordering contract between snippets: presenting best-first is the
// caller's job (sort and reverse, or sort with the comparison flipped).
func (s *Snippet) Less(other *Snippet) bool {
	if math.IsNaN(s.score) {
		return false
	}
	if math.IsNaN(other.score) {
		return true
	}
	return s.score < other.score
}

// SortByScore sorts snippets ascending by score. The sort is stable: ties and
// NaN runs keep their insertion order.
func SortByScore(snippets []*Snippet) {
	sort.SliceStable(snippets, func(i, j int) bool {
		return snippets[i].Less(snippets[j])
	})
}

// ToNode serializes the snippet into its output tree. Key order is fixed:
//
//	text       passage text, verbatim
//	score      relevance score
//	pages      only when the snippet spans at least one page
//	regions    always present, resolved against the snippet's pages
//	highlights one entry per highlight group, boxes without page resolution;
//	           omitted only for a zero-value Snippet whose span list was
//	           never initialized
//
// Page and box rendering is delegated to the Page and Box types; a region box
// that cannot be resolved against the page list fails the whole call, and the
// error is returned unwrapped.
func (s *Snippet) ToNode() (Node, error) {
	var n Node
	n.Add("text", s.text)
	n.Add("score", s.score)
	if len(s.pages) > 0 {
		pages := make([]Node, 0, len(s.pages))
		for _, p := range s.pages {
			pages = append(pages, p.ToNode())
		}
		n.Add("pages", pages)
	}
	regions := make([]Node, 0, len(s.regions))
	for _, b := range s.regions {
		region, err := b.ToPageNode(s.pages)
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}
	n.Add("regions", regions)
	if s.spans != nil {
		highlights := make([][]Node, 0, len(s.spans))
		for _, group := range s.spans {
			boxes := make([]Node, 0, len(group))
			for _, b := range group {
				boxes = append(boxes, b.ToNode())
			}
			highlights = append(highlights, boxes)
		}
		n.Add("highlights", highlights)
	}
	return n, nil
}
