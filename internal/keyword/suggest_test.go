package keyword

import (
	"fmt"
	"testing"
)

type fakeDict struct {
	entries []TermEntry
	err     error
}

func (f *fakeDict) Terms() ([]TermEntry, error) { return f.entries, f.err }

func TestSuggestQuery_rewritesUnknownTerm(t *testing.T) {
	s := NewSuggester(&fakeDict{entries: []TermEntry{
		{Term: "steamship", Freq: 4},
		{Term: "harbor", Freq: 2},
	}})
	got, ok := s.SuggestQuery("steemship")
	if !ok || got != "steamship" {
		t.Errorf("SuggestQuery = %q, %v; want %q, true", got, ok, "steamship")
	}
}

func TestSuggestQuery_keepsKnownTerms(t *testing.T) {
	s := NewSuggester(&fakeDict{entries: []TermEntry{
		{Term: "steamship", Freq: 4},
		{Term: "harbor", Freq: 2},
	}})
	got, ok := s.SuggestQuery("harbor steemship")
	if !ok || got != "harbor steamship" {
		t.Errorf("SuggestQuery = %q, %v; want %q, true", got, ok, "harbor steamship")
	}
}

func TestSuggestQuery_allTermsKnown(t *testing.T) {
	s := NewSuggester(&fakeDict{entries: []TermEntry{{Term: "harbor", Freq: 2}}})
	if got, ok := s.SuggestQuery("harbor"); ok {
		t.Errorf("known query should not be rewritten, got %q", got)
	}
}

func TestSuggestQuery_nothingCloseEnough(t *testing.T) {
	s := NewSuggester(&fakeDict{entries: []TermEntry{{Term: "locomotive", Freq: 9}}})
	if got, ok := s.SuggestQuery("cat"); ok {
		t.Errorf("distant term should not be rewritten, got %q", got)
	}
}

func TestSuggestQuery_prefersFrequentTerm(t *testing.T) {
	// Both candidates are one edit away; frequency decides.
	s := NewSuggester(&fakeDict{entries: []TermEntry{
		{Term: "cart", Freq: 1},
		{Term: "cast", Freq: 10},
	}})
	got, ok := s.SuggestQuery("caqt")
	if !ok || got != "cast" {
		t.Errorf("SuggestQuery = %q, %v; want %q, true", got, ok, "cast")
	}
}

func TestSuggestQuery_prefersCloserTermAtEqualFrequency(t *testing.T) {
	s := NewSuggester(&fakeDict{entries: []TermEntry{
		{Term: "purrs", Freq: 3},
		{Term: "purr", Freq: 3},
	}})
	got, ok := s.SuggestQuery("pur")
	if !ok || got != "purr" {
		t.Errorf("SuggestQuery = %q, %v; want %q, true", got, ok, "purr")
	}
}

func TestSuggestQuery_lowercasesQuery(t *testing.T) {
	s := NewSuggester(&fakeDict{entries: []TermEntry{{Term: "steamship", Freq: 4}}})
	got, ok := s.SuggestQuery("Steemship")
	if !ok || got != "steamship" {
		t.Errorf("SuggestQuery = %q, %v; want %q, true", got, ok, "steamship")
	}
}

func TestSuggestQuery_emptyDictionary(t *testing.T) {
	s := NewSuggester(&fakeDict{})
	if got, ok := s.SuggestQuery("anything"); ok {
		t.Errorf("empty dictionary should not suggest, got %q", got)
	}
}

func TestSuggestQuery_dictionaryError(t *testing.T) {
	s := NewSuggester(&fakeDict{err: fmt.Errorf("index closed")})
	if got, ok := s.SuggestQuery("anything"); ok {
		t.Errorf("dictionary error should not suggest, got %q", got)
	}
}
