package highlight

import (
	"strings"
	"testing"

	"github.com/okibi/terasu/internal/ocr"
)

func w(text string, ulx, uly, lrx, lry float64) ocr.Word {
	return ocr.Word{Text: text, ULX: ulx, ULY: uly, LRX: lrx, LRY: lry}
}

func catDoc() *ocr.Document {
	return &ocr.Document{
		Format: ocr.FormatHOCR,
		Pages: []ocr.Page{
			{ID: "p1", Width: 1000, Height: 1500, Lines: []ocr.Line{
				{Words: []ocr.Word{
					w("Domestic", 100, 100, 260, 140),
					w("cats", 280, 100, 400, 140),
					w("purr", 420, 100, 520, 140),
				}},
				{Words: []ocr.Word{
					w("while", 100, 160, 200, 200),
					w("wild", 220, 160, 320, 200),
					w("cats", 340, 160, 440, 200),
					w("roam", 460, 160, 560, 200),
				}},
			}},
		},
	}
}

func TestPassages_markersAndPages(t *testing.T) {
	h := New(nil)
	snippets := h.Passages(catDoc(), "cats")
	if len(snippets) != 1 {
		t.Fatalf("expected 1 passage, got %d", len(snippets))
	}
	s := snippets[0]
	want := "Domestic <em>cats</em> purr while wild <em>cats</em> roam"
	if s.Text() != want {
		t.Errorf("text = %q, want %q", s.Text(), want)
	}
	if len(s.Pages()) != 1 || s.Pages()[0].ID != "p1" || s.Pages()[0].Width != 1000 {
		t.Errorf("unexpected pages %+v", s.Pages())
	}
	if len(s.HighlightSpans()) != 2 {
		t.Errorf("expected 2 highlight groups, got %d", len(s.HighlightSpans()))
	}
}

func TestPassages_regionUnion(t *testing.T) {
	h := New(nil)
	s := h.Passages(catDoc(), "cats")[0]
	regions := s.Regions()
	if len(regions) != 1 {
		t.Fatalf("expected 1 region, got %d", len(regions))
	}
	r := regions[0]
	if r.ULX != 100 || r.ULY != 100 || r.LRX != 560 || r.LRY != 200 {
		t.Errorf("region should be the union of window word boxes, got %+v", r)
	}
	if r.PageID != "p1" {
		t.Errorf("region should reference its page, got %q", r.PageID)
	}
}

func TestPassages_relativeSpanCoordinates(t *testing.T) {
	h := New(nil)
	s := h.Passages(catDoc(), "domestic")[0]
	spans := s.HighlightSpans()
	if len(spans) != 1 || len(spans[0]) != 1 {
		t.Fatalf("expected one single-box group, got %v", spans)
	}
	box := spans[0][0]
	if box.ULX != 0 || box.ULY != 0 || box.LRX != 160 || box.LRY != 40 {
		t.Errorf("span should be relative to the region origin, got %+v", box)
	}
	if box.Text != "Domestic" {
		t.Errorf("span text = %q", box.Text)
	}
}

func TestPassages_runAcrossLineBreak(t *testing.T) {
	h := New(nil)
	snippets := h.Passages(catDoc(), "purr while")
	if len(snippets) != 1 {
		t.Fatalf("expected 1 passage, got %d", len(snippets))
	}
	spans := snippets[0].HighlightSpans()
	if len(spans) != 1 {
		t.Fatalf("adjacent matches should form one group, got %d", len(spans))
	}
	if len(spans[0]) != 2 {
		t.Fatalf("a run crossing a line break should yield one box per line, got %d", len(spans[0]))
	}
	first, second := spans[0][0], spans[0][1]
	if first.Text != "purr" || second.Text != "while" {
		t.Errorf("unexpected segment texts %q, %q", first.Text, second.Text)
	}
	if first.ULX != 320 || first.ULY != 0 {
		t.Errorf("first segment not region-relative: %+v", first)
	}
	if second.ULX != 0 || second.ULY != 60 {
		t.Errorf("second segment not region-relative: %+v", second)
	}
	if !strings.Contains(snippets[0].Text(), "<em>purr while</em>") {
		t.Errorf("run should share one marker pair: %q", snippets[0].Text())
	}
}

func TestPassages_noMatch(t *testing.T) {
	h := New(nil)
	if got := h.Passages(catDoc(), "zebra"); got != nil {
		t.Errorf("expected nil for no matches, got %v", got)
	}
	if got := h.Passages(catDoc(), "  ,, "); got != nil {
		t.Errorf("expected nil for empty query, got %v", got)
	}
}

func sparseDoc() *ocr.Document {
	words := make([]ocr.Word, 0, 30)
	for i := 0; i < 30; i++ {
		text := "filler"
		switch i {
		case 2, 3, 25:
			text = "cats"
		}
		x := float64(i * 50)
		words = append(words, w(text, x, 0, x+40, 20))
	}
	return &ocr.Document{Pages: []ocr.Page{{ID: "p1", Lines: []ocr.Line{{Words: words}}}}}
}

func TestPassages_bestFirst(t *testing.T) {
	h := New(&Config{ContextWords: 2, MaxPassages: 5})
	snippets := h.Passages(sparseDoc(), "cats")
	if len(snippets) != 2 {
		t.Fatalf("expected 2 passages, got %d", len(snippets))
	}
	if snippets[0].Score() < snippets[1].Score() {
		t.Error("passages should be ordered best-first")
	}
	// the double hit should win
	if !strings.Contains(snippets[0].Text(), "cats cats") {
		t.Errorf("double-hit passage should rank first: %q", snippets[0].Text())
	}
}

func TestPassages_maxPassages(t *testing.T) {
	h := New(&Config{ContextWords: 2, MaxPassages: 1})
	snippets := h.Passages(sparseDoc(), "cats")
	if len(snippets) != 1 {
		t.Errorf("expected passage cap to apply, got %d", len(snippets))
	}
}

func TestPassages_customTags(t *testing.T) {
	h := New(&Config{PreTag: "[[", PostTag: "]]"})
	s := h.Passages(catDoc(), "purr")[0]
	if !strings.Contains(s.Text(), "[[purr]]") {
		t.Errorf("custom tags not applied: %q", s.Text())
	}
}
