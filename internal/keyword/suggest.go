package keyword

import "strings"

const (
	// suggestMaxDistance caps how far a replacement may be from the typed
	// term. Two edits covers most typos without drifting to unrelated words.
	suggestMaxDistance = 2
	// suggestMinFreq drops dictionary terms seen in fewer documents; OCR
	// noise tends to produce one-off garbage terms.
	suggestMinFreq = 1
)

// Suggester rewrites query terms to close dictionary terms. Used for
// did-you-mean hints when a query matches nothing: the index's own term
// dictionary is the source of candidate spellings, so every suggestion is
// guaranteed to occur in at least one document.
type Suggester struct {
	dict        TermDictionary
	maxDistance int
	minFreq     int
}

// NewSuggester creates a suggester over the given term dictionary.
func NewSuggester(dict TermDictionary) *Suggester {
	return &Suggester{
		dict:        dict,
		maxDistance: suggestMaxDistance,
		minFreq:     suggestMinFreq,
	}
}

// SuggestQuery rewrites each query term missing from the dictionary to its
// closest replacement, keeping known terms as typed. The second return is
// false when nothing was rewritten: all terms are known, no replacement is
// close enough, or the dictionary is empty or unavailable. The dictionary is
// read per call; callers invoke this only on queries with zero hits.
func (s *Suggester) SuggestQuery(query string) (string, bool) {
	entries, err := s.dict.Terms()
	if err != nil || len(entries) == 0 {
		return query, false
	}
	known := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		known[e.Term] = struct{}{}
	}

	terms := strings.Fields(strings.ToLower(query))
	rewritten := false
	for i, term := range terms {
		if _, ok := known[term]; ok {
			continue
		}
		if best, ok := s.closest(term, entries); ok {
			terms[i] = best
			rewritten = true
		}
	}
	if !rewritten {
		return query, false
	}
	return strings.Join(terms, " "), true
}

// closest picks the in-budget dictionary term with the highest
// frequency/(distance+1) score: prefer popular terms, penalize distance.
func (s *Suggester) closest(term string, entries []TermEntry) (string, bool) {
	var best string
	var bestScore float64
	for _, e := range entries {
		if e.Freq < s.minFreq || e.Term == term {
			continue
		}
		// Length difference is a lower bound on edit distance.
		lenDiff := len(e.Term) - len(term)
		if lenDiff < 0 {
			lenDiff = -lenDiff
		}
		if lenDiff > s.maxDistance {
			continue
		}
		dist := EditDistance(term, e.Term)
		if dist > s.maxDistance {
			continue
		}
		score := float64(e.Freq) / float64(dist+1)
		if score > bestScore {
			best, bestScore = e.Term, score
		}
	}
	return best, best != ""
}
