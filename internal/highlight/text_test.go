package highlight

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"simple", "domestic cats", []string{"domestic", "cats"}},
		{"case and punctuation", "Cats, purring!", []string{"cats", "purring"}},
		{"duplicates", "cats cats CATS", []string{"cats"}},
		{"empty", "  ", nil},
		{"only punctuation", ",,, ...", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tokenize(tt.query); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestPassagesText(t *testing.T) {
	h := New(&Config{ContextWords: 3})
	snippets := h.PassagesText("the quick brown fox jumps over the lazy dog", "fox")
	if len(snippets) != 1 {
		t.Fatalf("expected 1 passage, got %d", len(snippets))
	}
	s := snippets[0]
	if !strings.Contains(s.Text(), "<em>fox</em>") {
		t.Errorf("match not marked: %q", s.Text())
	}
	if len(s.Pages()) != 0 || len(s.Regions()) != 0 {
		t.Error("text-only passages should have no geometry")
	}
	if len(s.HighlightSpans()) != 0 {
		t.Error("text-only passages should have no highlight spans")
	}
	n, err := s.ToNode()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if _, ok := n.Get("pages"); ok {
		t.Error("pages key should be omitted")
	}
	if _, ok := n.Get("regions"); !ok {
		t.Error("regions key should still be present")
	}
}

func TestPassagesText_window(t *testing.T) {
	h := New(&Config{ContextWords: 1})
	s := h.PassagesText("a b c target d e f", "target")[0]
	if s.Text() != "c <em>target</em> d" {
		t.Errorf("context window wrong: %q", s.Text())
	}
}

func TestPassagesText_noMatch(t *testing.T) {
	h := New(nil)
	if got := h.PassagesText("nothing relevant here", "zebra"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
