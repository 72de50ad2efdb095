// Package search runs keyword retrieval and snippet highlighting over stored
// documents.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/okibi/terasu/internal/config"
	"github.com/okibi/terasu/internal/highlight"
	"github.com/okibi/terasu/internal/keyword"
	"github.com/okibi/terasu/internal/models"
	"github.com/okibi/terasu/internal/ocr"
	"github.com/okibi/terasu/internal/snippet"
	"github.com/okibi/terasu/internal/storage"
)

// Engine answers search queries: Bleve picks candidate documents, the
// highlighter builds scored passages for each, and the result carries the
// passages as ordered output trees.
type Engine struct {
	storage   storage.Storage
	keyword   keyword.Index
	config    *config.SearchConfig
	logger    *zap.Logger
	suggester *keyword.Suggester
}

// NewEngine creates a search engine with the given dependencies. When the
// index exposes its term dictionary, zero-hit queries get did-you-mean
// rewrites in the response.
func NewEngine(store storage.Storage, idx keyword.Index, cfg *config.SearchConfig, logger *zap.Logger) *Engine {
	e := &Engine{
		storage: store,
		keyword: idx,
		config:  cfg,
		logger:  logger,
	}
	if dict, ok := idx.(keyword.TermDictionary); ok {
		e.suggester = keyword.NewSuggester(dict)
	}
	return e
}

// Search runs retrieval and highlighting and returns ranked results.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	startTime := time.Now()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	topK := e.config.TopKCandidates
	if topK <= 0 {
		topK = 50
	}
	opts := &keyword.SearchOptions{
		TitleBoost:  e.config.TitleBoost,
		PhraseBoost: e.config.PhraseBoost,
	}
	candidates, err := e.keyword.Search(ctx, query.Query, topK, opts)
	if err != nil {
		return nil, fmt.Errorf("keyword search failed: %w", err)
	}

	highlighter := highlight.New(e.highlightConfig(query))

	results := make([]*models.SearchResult, 0, len(candidates))
	for _, candidate := range candidates {
		if query.MinScore > 0 && candidate.Score < query.MinScore {
			continue
		}
		doc, err := e.storage.GetDocument(ctx, candidate.ID)
		if err != nil {
			e.logger.Warn("candidate document missing", zap.String("id", candidate.ID), zap.Error(err))
			continue
		}
		results = append(results, &models.SearchResult{
			ID:       doc.ID,
			Title:    doc.Title,
			Path:     doc.Path,
			Format:   doc.Format,
			Score:    candidate.Score,
			Snippets: e.buildSnippets(highlighter, doc, query.Query),
		})
	}

	total := len(results)
	start := query.Offset
	end := query.Offset + query.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	paged := results[start:end]
	for i, r := range paged {
		r.Rank = start + i + 1
	}

	resp := &models.SearchResponse{
		Results:   paged,
		Total:     total,
		QueryTime: time.Since(startTime).Milliseconds(),
		Query:     query.Query,
	}
	if total == 0 && e.suggester != nil {
		if corrected, ok := e.suggester.SuggestQuery(query.Query); ok {
			resp.Suggestion = corrected
		}
	}
	return resp, nil
}

func (e *Engine) highlightConfig(query *models.SearchQuery) *highlight.Config {
	cfg := &highlight.Config{
		ContextWords: e.config.ContextWords,
		MaxPassages:  e.config.MaxSnippets,
		PreTag:       e.config.PreTag,
		PostTag:      e.config.PostTag,
	}
	if query.ContextWords > 0 {
		cfg.ContextWords = query.ContextWords
	}
	if query.MaxSnippets > 0 {
		cfg.MaxPassages = query.MaxSnippets
	}
	return cfg
}

// buildSnippets highlights one document and serializes its passages. OCR
// sources are re-parsed for geometry; everything else falls back to
// text-only passages. A passage that fails to serialize is dropped with a
// warning, keeping the rest of the result intact.
func (e *Engine) buildSnippets(h *highlight.Highlighter, doc *models.Document, query string) []snippet.Node {
	var passages []*snippet.Snippet
	if doc.Source != "" && isOCRFormat(doc.Format) {
		parsed, err := ocr.Parse([]byte(doc.Source))
		if err != nil {
			e.logger.Warn("stored OCR source no longer parses", zap.String("id", doc.ID), zap.Error(err))
		} else {
			passages = h.Passages(parsed, query)
		}
	}
	if passages == nil {
		passages = h.PassagesText(doc.Content, query)
	}

	nodes := make([]snippet.Node, 0, len(passages))
	for _, p := range passages {
		node, err := p.ToNode()
		if err != nil {
			e.logger.Warn("snippet serialization failed", zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// DocCount returns the number of indexed documents, for status reporting.
func (e *Engine) DocCount() (uint64, error) {
	return e.keyword.DocCount()
}

func isOCRFormat(format string) bool {
	switch format {
	case "hocr", "alto", "miniocr":
		return true
	default:
		return false
	}
}
