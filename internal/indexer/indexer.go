// Package indexer ingests documents into storage and the keyword index. OCR
// sources keep their raw markup and per-page geometry so search results can
// be highlighted with page coordinates.
package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okibi/terasu/internal/extract"
	"github.com/okibi/terasu/internal/fileid"
	"github.com/okibi/terasu/internal/keyword"
	"github.com/okibi/terasu/internal/models"
	"github.com/okibi/terasu/internal/ocr"
	"github.com/okibi/terasu/internal/storage"
)

// Indexer ingests documents into storage and the keyword index.
type Indexer struct {
	storage   storage.Storage
	keyword   keyword.Index
	extractor *extract.Extractor
	logger    *zap.Logger // optional; when set, logs debug events
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithLogger sets a logger for debug output (file indexed, document deleted).
func WithLogger(l *zap.Logger) Option {
	return func(idx *Indexer) { idx.logger = l }
}

// NewIndexer creates an indexer with the given dependencies.
// extractor may be nil; when nil, IndexFile treats all files as plain text.
func NewIndexer(store storage.Storage, kw keyword.Index, extractor *extract.Extractor, opts ...Option) *Indexer {
	idx := &Indexer{
		storage:   store,
		keyword:   kw,
		extractor: extractor,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// IndexDocument ingests a document submitted as raw content. OCR markup
// (hOCR, ALTO, MiniOCR) is detected by content; anything else is indexed as
// plain text. Returns the stored document.
func (idx *Indexer) IndexDocument(ctx context.Context, input *models.DocumentInput) (*models.Document, error) {
	if input.ID == "" {
		input.ID = uuid.New().String()
	}
	result, err := idx.extractRaw([]byte(input.Content))
	if err != nil {
		return nil, fmt.Errorf("extract content: %w", err)
	}

	doc := &models.Document{
		ID:       input.ID,
		Title:    input.Title,
		Content:  Preprocess(result.Text),
		Format:   result.Format,
		Metadata: input.Metadata,
	}
	if result.OCR != nil {
		doc.Source = input.Content
	}
	if err := idx.persist(ctx, doc, result.OCR); err != nil {
		return nil, err
	}
	return doc, nil
}

// persist stores the document, its OCR pages when present, and registers it
// in the keyword index.
func (idx *Indexer) persist(ctx context.Context, doc *models.Document, ocrDoc *ocr.Document) error {
	if err := idx.storage.CreateDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}
	if ocrDoc != nil {
		pages := make([]*models.DocumentPage, len(ocrDoc.Pages))
		for i := range ocrDoc.Pages {
			p := &ocrDoc.Pages[i]
			pages[i] = &models.DocumentPage{
				DocumentID: doc.ID,
				PageNum:    i,
				PageID:     p.ID,
				Width:      p.Width,
				Height:     p.Height,
				Text:       p.Text(),
			}
		}
		if err := idx.storage.ReplacePages(ctx, doc.ID, pages); err != nil {
			return fmt.Errorf("failed to store pages: %w", err)
		}
	}
	// Underscores in titles become spaces so "annual_report_1947.hocr" is
	// searchable as "annual report 1947" (the standard analyzer does not
	// split on underscore).
	docForKeyword := *doc
	docForKeyword.Title = normalizeTitleForKeywordSearch(doc.Title)
	if err := idx.keyword.Index(ctx, doc.ID, &docForKeyword); err != nil {
		return fmt.Errorf("failed to index keywords: %w", err)
	}
	return nil
}

func (idx *Indexer) extractRaw(content []byte) (*extract.Result, error) {
	if idx.extractor != nil {
		return idx.extractor.ExtractBytes(content, "")
	}
	return &extract.Result{Text: string(content), Format: "plain"}, nil
}

func normalizeTitleForKeywordSearch(title string) string {
	return strings.ReplaceAll(title, "_", " ")
}

const (
	metaKeySourcePath  = "source_path"
	metaKeySourceMtime = "source_mtime"
	metaKeySourceSize  = "source_size"
)

// IndexFile reads a file from path and indexes it. The document ID is derived
// from the absolute path so re-indexing updates the same document. If
// allowedExts is non-empty, the file's extension must be in the list
// (case-insensitive). Unchanged files (same mtime and size as last indexed)
// are skipped.
func (idx *Indexer) IndexFile(ctx context.Context, path string, allowedExts []string) error {
	if idx.logger != nil {
		idx.logger.Debug("indexer indexing file", zap.String("path", path))
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(absPath))
	if len(allowedExts) > 0 && !extensionAllowed(ext, allowedExts) {
		return fmt.Errorf("extension %q not in allowed list", ext)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", absPath)
	}
	docID := fileid.FromPath(absPath)
	if skip, err := idx.shouldSkipFile(ctx, absPath, docID, info); err != nil {
		return err
	} else if skip {
		// Re-register in the keyword index in case Bleve was opened empty.
		if doc, getErr := idx.storage.GetDocument(ctx, docID); getErr == nil {
			docForKeyword := *doc
			docForKeyword.Title = normalizeTitleForKeywordSearch(doc.Title)
			_ = idx.keyword.Index(ctx, doc.ID, &docForKeyword)
		}
		if idx.logger != nil {
			idx.logger.Debug("indexer skipping unchanged file", zap.String("path", absPath))
		}
		return nil
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	var result *extract.Result
	if idx.extractor != nil {
		result, err = idx.extractor.ExtractBytes(content, ext)
		if err != nil {
			return fmt.Errorf("extract content: %w", err)
		}
	} else {
		result = &extract.Result{Text: string(content), Format: "plain"}
	}

	_ = idx.DeleteDocument(ctx, docID)

	doc := &models.Document{
		ID:      docID,
		Title:   filepath.Base(absPath),
		Content: Preprocess(result.Text),
		Format:  result.Format,
		Path:    absPath,
		Metadata: map[string]interface{}{
			metaKeySourcePath: absPath,
			// Stored as strings to avoid JSON float64 precision loss
			// (UnixNano exceeds 53 bits).
			metaKeySourceMtime: strconv.FormatInt(info.ModTime().UnixNano(), 10),
			metaKeySourceSize:  strconv.FormatInt(info.Size(), 10),
		},
	}
	if result.OCR != nil {
		doc.Source = string(content)
	}
	if err := idx.persist(ctx, doc, result.OCR); err != nil {
		return err
	}
	if idx.logger != nil {
		idx.logger.Debug("indexer file indexed", zap.String("path", absPath), zap.String("doc_id", docID))
	}
	return nil
}

// shouldSkipFile returns true if the file is already indexed with the same
// mtime and size.
func (idx *Indexer) shouldSkipFile(ctx context.Context, absPath, docID string, info os.FileInfo) (bool, error) {
	doc, err := idx.storage.GetDocument(ctx, docID)
	if err != nil {
		return false, nil
	}
	if doc.Metadata == nil || doc.Metadata[metaKeySourcePath] != absPath {
		return false, nil
	}
	if metadataInt64(doc.Metadata, metaKeySourceMtime) != info.ModTime().UnixNano() {
		return false, nil
	}
	if metadataInt64(doc.Metadata, metaKeySourceSize) != info.Size() {
		return false, nil
	}
	return true, nil
}

func metadataInt64(m map[string]interface{}, key string) int64 {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case string:
		x, _ := strconv.ParseInt(n, 10, 64)
		return x
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// IndexDirectory walks dir recursively and indexes each regular file whose
// extension is in allowedExts (all files when empty). Returns the number of
// files indexed and the first error encountered, if any.
func (idx *Indexer) IndexDirectory(ctx context.Context, dir string, allowedExts []string) (n int, err error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("absolute path: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return 0, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("not a directory: %s", absDir)
	}
	err = filepath.WalkDir(absDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if len(allowedExts) > 0 && !extensionAllowed(ext, allowedExts) {
			return nil
		}
		// Resolve symlinks so we only index regular files
		finfo, statErr := os.Stat(path)
		if statErr != nil {
			return nil
		}
		if !finfo.Mode().IsRegular() {
			return nil
		}
		if indexErr := idx.IndexFile(ctx, path, allowedExts); indexErr != nil {
			return indexErr
		}
		n++
		return nil
	})
	return n, err
}

func extensionAllowed(ext string, allowed []string) bool {
	extNorm := strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, a := range allowed {
		if strings.ToLower(strings.TrimPrefix(a, ".")) == extNorm {
			return true
		}
	}
	return false
}

// DeleteDocument removes a document, its pages, and its keyword index entry.
func (idx *Indexer) DeleteDocument(ctx context.Context, id string) error {
	if idx.logger != nil {
		idx.logger.Debug("indexer deleting document", zap.String("id", id))
	}
	if err := idx.keyword.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete from keyword index: %w", err)
	}
	if err := idx.storage.DeletePagesByDocumentID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete pages: %w", err)
	}
	if err := idx.storage.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if idx.logger != nil {
		idx.logger.Debug("indexer document deleted", zap.String("id", id))
	}
	return nil
}
