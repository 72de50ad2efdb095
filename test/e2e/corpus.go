// Package e2e exercises the full stack over a generated corpus of OCR
// documents and a set of query cases.
package e2e

import (
	"fmt"
	"strings"
)

// Document is one corpus entry: a synthetic hOCR page with a unique
// signature word so queries can assert the right document comes back.
type Document struct {
	ID        string
	Title     string
	Source    string
	Signature string
}

// QueryCase defines a query and the document ID(s) that must appear in
// search results.
type QueryCase struct {
	Query          string
	ExpectedDocIDs []string
	Description    string
}

// Corpus holds documents and query cases.
type Corpus struct {
	Documents []Document
	Cases     []QueryCase
}

var topics = [][]string{
	{"harbor", "steamship", "arrivals", "cargo", "manifest"},
	{"railway", "timetable", "locomotive", "platform", "station"},
	{"weather", "barometer", "rainfall", "forecast", "storm"},
	{"market", "wheat", "prices", "auction", "merchant"},
	{"theatre", "performance", "orchestra", "evening", "tickets"},
}

// BuildCorpus returns a corpus of n synthetic hOCR documents cycling over
// the topic vocabulary, each carrying a unique signature word, plus query
// cases covering signatures, shared topic terms, and a phrase.
func BuildCorpus(n int) *Corpus {
	docs := make([]Document, 0, n)
	for i := 0; i < n; i++ {
		topic := topics[i%len(topics)]
		sig := fmt.Sprintf("sig%04dword", i)
		words := append(append([]string{}, topic...), sig)
		docs = append(docs, Document{
			ID:        fmt.Sprintf("doc-%04d", i),
			Title:     fmt.Sprintf("%s_bulletin_%04d", topic[0], i),
			Source:    hocrPage(fmt.Sprintf("page_%d", i), words),
			Signature: sig,
		})
	}

	cases := []QueryCase{
		{
			Query:          docs[3].Signature,
			ExpectedDocIDs: []string{docs[3].ID},
			Description:    "unique signature finds exactly its document",
		},
		{
			Query:          docs[len(docs)-1].Signature,
			ExpectedDocIDs: []string{docs[len(docs)-1].ID},
			Description:    "last document is indexed too",
		},
		{
			Query:          "locomotive",
			ExpectedDocIDs: []string{docs[1].ID, docs[6].ID},
			Description:    "topic term matches documents of that topic",
		},
		{
			Query:          "harbor steamship",
			ExpectedDocIDs: []string{docs[0].ID, docs[5].ID},
			Description:    "multi-word query over a topic",
		},
	}
	return &Corpus{Documents: docs, Cases: cases}
}

// hocrPage renders words as a one-line hOCR page with synthetic boxes.
func hocrPage(pageID string, words []string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="ocr_page" id="` + pageID + `" title="bbox 0 0 2400 3400">`)
	b.WriteString(`<span class="ocr_line" title="bbox 100 100 2300 160">`)
	x := 100
	for _, w := range words {
		wEnd := x + 40*len(w)
		fmt.Fprintf(&b, `<span class="ocrx_word" title="bbox %d 100 %d 160">%s</span>`, x, wEnd, w)
		x = wEnd + 40
	}
	b.WriteString(`</span></div></body></html>`)
	return b.String()
}
