package keyword

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/okibi/terasu/internal/models"
)

// indexedDocument is the shape stored in Bleve. Only the fields retrieval
// needs are indexed; full documents live in storage.
type indexedDocument struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BleveIndex implements Index using Bleve.
type BleveIndex struct {
	index bleve.Index
}

// NewBleveIndex creates or opens a Bleve index at path. An existing index is
// reused so unchanged files are not re-indexed; remove the directory to force
// a full re-index after a mapping change.
func NewBleveIndex(path string) (*BleveIndex, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so OCR'd proper
	// nouns match exactly as typed.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("content", textFieldMapping)
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("id", keywordFieldMapping)
	im.AddDocumentMapping("document", docMapping)
	im.DefaultType = "document"
	im.DefaultMapping = docMapping

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// Index indexes a document by id.
func (b *BleveIndex) Index(ctx context.Context, id string, doc *models.Document) error {
	return b.index.Index(id, indexedDocument{ID: id, Title: doc.Title, Content: doc.Content})
}

// Search runs retrieval and returns up to limit hits, best first. With a
// TitleBoost above 1, title and content matches are scored separately and
// summed; with a PhraseBoost above 1, multi-term queries found as an adjacent
// phrase multiply the document's score.
func (b *BleveIndex) Search(ctx context.Context, query string, limit int, opts *SearchOptions) ([]*Result, error) {
	titleBoost := 1.0
	phraseBoost := 1.0
	if opts != nil {
		if opts.TitleBoost > 0 {
			titleBoost = opts.TitleBoost
		}
		if opts.PhraseBoost > 0 {
			phraseBoost = opts.PhraseBoost
		}
	}
	if titleBoost <= 1.0 && phraseBoost <= 1.0 {
		return b.searchSingle(query, limit)
	}
	return b.searchWithBoosts(query, limit, titleBoost, phraseBoost)
}

func (b *BleveIndex) searchSingle(query string, limit int) ([]*Result, error) {
	search := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	search.Size = limit
	results, err := b.index.Search(search)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	out := make([]*Result, len(results.Hits))
	for i, hit := range results.Hits {
		out[i] = &Result{ID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

func (b *BleveIndex) searchWithBoosts(query string, limit int, titleBoost, phraseBoost float64) ([]*Result, error) {
	reqSize := limit * 2
	if reqSize < 50 {
		reqSize = 50
	}

	titleQuery := bleve.NewMatchQuery(query)
	titleQuery.SetField("title")
	contentQuery := bleve.NewMatchQuery(query)
	contentQuery.SetField("content")

	titleScores, err := b.fieldScores(titleQuery, reqSize)
	if err != nil {
		return nil, err
	}
	contentScores, err := b.fieldScores(contentQuery, reqSize)
	if err != nil {
		return nil, err
	}

	phraseMatches := make(map[string]bool)
	if phraseBoost > 1.0 && len(strings.Fields(query)) > 1 {
		phraseMatches, err = b.phraseMatches(query, reqSize)
		if err != nil {
			return nil, err
		}
	}

	scores := make(map[string]float64)
	for id, s := range titleScores {
		scores[id] += s * titleBoost
	}
	for id, s := range contentScores {
		scores[id] += s
	}
	for id := range scores {
		if phraseMatches[id] {
			scores[id] *= phraseBoost
		}
	}

	out := make([]*Result, 0, len(scores))
	for id, s := range scores {
		out = append(out, &Result{ID: id, Score: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (b *BleveIndex) fieldScores(q blevequery.Query, size int) (map[string]float64, error) {
	req := bleve.NewSearchRequest(q)
	req.Size = size
	results, err := b.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	scores := make(map[string]float64, len(results.Hits))
	for _, hit := range results.Hits {
		scores[hit.ID] = hit.Score
	}
	return scores, nil
}

func (b *BleveIndex) phraseMatches(query string, size int) (map[string]bool, error) {
	pq := bleve.NewMatchPhraseQuery(query)
	req := bleve.NewSearchRequest(pq)
	req.Size = size
	results, err := b.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("Bleve phrase search failed: %w", err)
	}
	matches := make(map[string]bool, len(results.Hits))
	for _, hit := range results.Hits {
		matches[hit.ID] = true
	}
	return matches, nil
}

// Terms returns the unique terms of the content and title fields with their
// document frequencies, in dictionary order per field. Terms are as the
// analyzer stored them, so lowercase.
func (b *BleveIndex) Terms() ([]TermEntry, error) {
	freqs := make(map[string]int)
	var order []string
	for _, field := range []string{"content", "title"} {
		dict, err := b.index.FieldDict(field)
		if err != nil {
			return nil, fmt.Errorf("field dictionary %q: %w", field, err)
		}
		for {
			entry, err := dict.Next()
			if err != nil {
				_ = dict.Close()
				return nil, fmt.Errorf("field dictionary %q: %w", field, err)
			}
			if entry == nil {
				break
			}
			if _, ok := freqs[entry.Term]; !ok {
				order = append(order, entry.Term)
			}
			freqs[entry.Term] += int(entry.Count)
		}
		if err := dict.Close(); err != nil {
			return nil, fmt.Errorf("field dictionary %q: %w", field, err)
		}
	}
	out := make([]TermEntry, len(order))
	for i, term := range order {
		out[i] = TermEntry{Term: term, Freq: freqs[term]}
	}
	return out, nil
}

// Delete removes a document from the index.
func (b *BleveIndex) Delete(ctx context.Context, id string) error {
	return b.index.Delete(id)
}

// DocCount returns the number of indexed documents.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Close closes the index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
