package highlight

import (
	"strings"

	"github.com/okibi/terasu/internal/snippet"
)

// Tokenize splits a query into lowercase, punctuation-trimmed terms with
// duplicates removed, keeping first-occurrence order.
func Tokenize(query string) []string {
	var terms []string
	seen := make(map[string]bool)
	for _, f := range strings.Fields(query) {
		t := normalize(f)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		terms = append(terms, t)
	}
	return terms
}

// normalize lowercases a token and trims leading/trailing punctuation, so
// "Cats," matches the term "cats".
func normalize(token string) string {
	return strings.Trim(strings.ToLower(token), ".,;:!?\"'()[]{}«»")
}

func matchesAny(word string, terms []string) bool {
	w := normalize(word)
	if w == "" {
		return false
	}
	for _, t := range terms {
		if w == t {
			return true
		}
	}
	return false
}

// PassagesText builds passages from plain text without geometry. The
// resulting snippets span no pages and report empty regions; highlight
// marking happens in the text only. Used for documents indexed from
// geometry-less sources (text-layer PDFs, office formats, plain text).
func (h *Highlighter) PassagesText(text, query string) []*snippet.Snippet {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return nil
	}
	words := strings.Fields(text)
	matched := make([]bool, len(words))
	any := false
	for i, w := range words {
		if matchesAny(w, terms) {
			matched[i] = true
			any = true
		}
	}
	if !any {
		return nil
	}

	snippets := make([]*snippet.Snippet, 0)
	for _, win := range windows(matched, h.cfg.ContextWords) {
		var b strings.Builder
		for i := win.start; i <= win.end; i++ {
			if i > win.start {
				b.WriteByte(' ')
			}
			if matched[i] && (i == win.start || !matched[i-1]) {
				b.WriteString(h.cfg.PreTag)
			}
			b.WriteString(words[i])
			if matched[i] && (i == win.end || !matched[i+1]) {
				b.WriteString(h.cfg.PostTag)
			}
		}
		seen := make(map[string]bool)
		total := 0
		for i := win.start; i <= win.end; i++ {
			if matched[i] {
				total++
				seen[normalize(words[i])] = true
			}
		}
		snip := snippet.New(b.String(), nil, nil)
		snip.SetScore(scoreWindow(total, len(seen), win.end-win.start+1, len(terms)))
		snippets = append(snippets, snip)
	}
	snippet.SortByScore(snippets)
	reverse(snippets)
	if len(snippets) > h.cfg.MaxPassages {
		snippets = snippets[:h.cfg.MaxPassages]
	}
	return snippets
}
