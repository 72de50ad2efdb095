package highlight

import (
	"strings"

	"github.com/okibi/terasu/internal/ocr"
	"github.com/okibi/terasu/internal/snippet"
)

// posWord is a word with its position in the document's page/line structure.
type posWord struct {
	ocr.Word
	page int
	line int
}

func flatten(doc *ocr.Document) []posWord {
	var words []posWord
	for pi := range doc.Pages {
		for li := range doc.Pages[pi].Lines {
			for _, w := range doc.Pages[pi].Lines[li].Words {
				words = append(words, posWord{Word: w, page: pi, line: li})
			}
		}
	}
	return words
}

// window is an inclusive word index range.
type window struct {
	start, end int
}

// windows expands each match by context words and merges overlapping or
// adjacent ranges, so nearby matches share one passage.
func windows(matched []bool, context int) []window {
	var out []window
	for i, m := range matched {
		if !m {
			continue
		}
		start := i - context
		if start < 0 {
			start = 0
		}
		end := i + context
		if end > len(matched)-1 {
			end = len(matched) - 1
		}
		if n := len(out); n > 0 && start <= out[n-1].end+1 {
			out[n-1].end = end
			continue
		}
		out = append(out, window{start: start, end: end})
	}
	return out
}

type passage struct {
	snip *snippet.Snippet
}

// buildPassage assembles one snippet for the window: marker-wrapped text, the
// pages the window touches, one merged region box per page, and one highlight
// group per matched run. Group boxes are relative to their page's region box,
// and a run crossing a line or page break contributes one box per segment.
func (h *Highlighter) buildPassage(doc *ocr.Document, words []posWord, matched []bool, win window) passage {
	// pages in window order
	var pageOrder []int
	seen := make(map[int]bool)
	for i := win.start; i <= win.end; i++ {
		if !seen[words[i].page] {
			seen[words[i].page] = true
			pageOrder = append(pageOrder, words[i].page)
		}
	}
	pages := make([]snippet.Page, 0, len(pageOrder))
	pageIdx := make(map[int]int, len(pageOrder))
	for i, pi := range pageOrder {
		p := doc.Pages[pi]
		pages = append(pages, snippet.Page{ID: p.ID, Width: p.Width, Height: p.Height})
		pageIdx[pi] = i
	}

	// one region per page: union of the window's word boxes on that page
	regions := make([]snippet.Box, len(pageOrder))
	regionSet := make([]bool, len(pageOrder))
	for i := win.start; i <= win.end; i++ {
		w := words[i]
		ri := pageIdx[w.page]
		box := snippet.Box{ULX: w.ULX, ULY: w.ULY, LRX: w.LRX, LRY: w.LRY, PageID: doc.Pages[w.page].ID}
		if !regionSet[ri] {
			regions[ri] = box
			regionSet[ri] = true
			continue
		}
		regions[ri] = union(regions[ri], box)
	}

	// text with markers; adjacent matched words form a single run
	var text strings.Builder
	for i := win.start; i <= win.end; i++ {
		if i > win.start {
			text.WriteByte(' ')
		}
		if matched[i] && (i == win.start || !matched[i-1]) {
			text.WriteString(h.cfg.PreTag)
		}
		text.WriteString(words[i].Text)
		if matched[i] && (i == win.end || !matched[i+1]) {
			text.WriteString(h.cfg.PostTag)
		}
	}

	snip := snippet.New(text.String(), pages, regions)

	// highlight groups, coordinates relative to the run's page region
	for i := win.start; i <= win.end; i++ {
		if !matched[i] || (i > win.start && matched[i-1]) {
			continue
		}
		end := i
		for end < win.end && matched[end+1] {
			end++
		}
		snip.AddHighlightSpan(h.runBoxes(doc, words, regions, pageIdx, i, end))
	}
	return passage{snip: snip}
}

// runBoxes returns one box per (page, line) segment of a matched run.
func (h *Highlighter) runBoxes(doc *ocr.Document, words []posWord, regions []snippet.Box, pageIdx map[int]int, start, end int) []snippet.Box {
	var boxes []snippet.Box
	segStart := start
	for i := start; i <= end; i++ {
		last := i == end
		if !last && words[i+1].page == words[i].page && words[i+1].line == words[i].line {
			continue
		}
		region := regions[pageIdx[words[segStart].page]]
		var texts []string
		box := snippet.Box{ULX: words[segStart].ULX, ULY: words[segStart].ULY, LRX: words[segStart].LRX, LRY: words[segStart].LRY}
		for j := segStart; j <= i; j++ {
			w := words[j]
			box = union(box, snippet.Box{ULX: w.ULX, ULY: w.ULY, LRX: w.LRX, LRY: w.LRY})
			texts = append(texts, w.Text)
		}
		box.ULX -= region.ULX
		box.ULY -= region.ULY
		box.LRX -= region.ULX
		box.LRY -= region.ULY
		box.Text = strings.Join(texts, " ")
		boxes = append(boxes, box)
		segStart = i + 1
	}
	return boxes
}

func union(a, b snippet.Box) snippet.Box {
	if b.ULX < a.ULX {
		a.ULX = b.ULX
	}
	if b.ULY < a.ULY {
		a.ULY = b.ULY
	}
	if b.LRX > a.LRX {
		a.LRX = b.LRX
	}
	if b.LRY > a.LRY {
		a.LRY = b.LRY
	}
	return a
}
