package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/okibi/terasu/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testDoc(id string) *models.Document {
	return &models.Document{
		ID:      id,
		Title:   "Scanned newspaper",
		Content: "domestic cats purring",
		Source:  "<ocr><p xml:id=\"p1\" wh=\"100 100\"></p></ocr>",
		Format:  "miniocr",
		Path:    "/data/" + id + ".xml",
		Metadata: map[string]interface{}{
			"year": "1905",
		},
	}
}

func TestSQLiteStorage_documentRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	doc := testDoc("doc1")
	if err := s.CreateDocument(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := s.GetDocument(ctx, "doc1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != doc.Title || got.Content != doc.Content || got.Source != doc.Source {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Format != "miniocr" || got.Path != doc.Path {
		t.Errorf("format/path mismatch: %+v", got)
	}
	if got.Metadata["year"] != "1905" {
		t.Errorf("metadata mismatch: %v", got.Metadata)
	}
}

func TestSQLiteStorage_getMissing(t *testing.T) {
	s := newTestStorage(t)
	if _, err := s.GetDocument(context.Background(), "nope"); err == nil {
		t.Error("missing document should fail")
	}
}

func TestSQLiteStorage_update(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	doc := testDoc("doc1")
	if err := s.CreateDocument(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	doc.Title = "Updated"
	if err := s.UpdateDocument(ctx, doc); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := s.GetDocument(ctx, "doc1")
	if got.Title != "Updated" {
		t.Errorf("title = %q", got.Title)
	}
	if err := s.UpdateDocument(ctx, testDoc("ghost")); err == nil {
		t.Error("updating a missing document should fail")
	}
}

func TestSQLiteStorage_pages(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	if err := s.CreateDocument(ctx, testDoc("doc1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	pages := []*models.DocumentPage{
		{DocumentID: "doc1", PageNum: 0, PageID: "p1", Width: 1200, Height: 1800, Text: "first page"},
		{DocumentID: "doc1", PageNum: 1, PageID: "p2", Width: 1200, Height: 1800, Text: "second page"},
	}
	if err := s.ReplacePages(ctx, "doc1", pages); err != nil {
		t.Fatalf("replace pages: %v", err)
	}
	got, err := s.GetPagesByDocumentID(ctx, "doc1")
	if err != nil {
		t.Fatalf("get pages: %v", err)
	}
	if len(got) != 2 || got[0].PageID != "p1" || got[1].Text != "second page" {
		t.Errorf("unexpected pages %+v", got)
	}

	// replacing again overwrites, not appends
	if err := s.ReplacePages(ctx, "doc1", pages[:1]); err != nil {
		t.Fatalf("replace pages: %v", err)
	}
	got, _ = s.GetPagesByDocumentID(ctx, "doc1")
	if len(got) != 1 {
		t.Errorf("expected 1 page after replace, got %d", len(got))
	}
}

func TestSQLiteStorage_deleteCascades(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	if err := s.CreateDocument(ctx, testDoc("doc1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = s.ReplacePages(ctx, "doc1", []*models.DocumentPage{{DocumentID: "doc1", PageNum: 0}})
	if err := s.DeleteDocument(ctx, "doc1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetDocument(ctx, "doc1"); err == nil {
		t.Error("document should be gone")
	}
	pages, err := s.GetPagesByDocumentID(ctx, "doc1")
	if err != nil {
		t.Fatalf("get pages: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("pages should be gone, got %d", len(pages))
	}
}

func TestSQLiteStorage_counts(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	_ = s.CreateDocument(ctx, testDoc("a"))
	_ = s.CreateDocument(ctx, testDoc("b"))
	_ = s.ReplacePages(ctx, "a", []*models.DocumentPage{{DocumentID: "a", PageNum: 0}})

	docs, err := s.CountDocuments(ctx)
	if err != nil || docs != 2 {
		t.Errorf("CountDocuments = %d, %v", docs, err)
	}
	pages, err := s.CountPages(ctx)
	if err != nil || pages != 1 {
		t.Errorf("CountPages = %d, %v", pages, err)
	}
}

func TestSQLiteStorage_list(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	_ = s.CreateDocument(ctx, testDoc("a"))
	_ = s.CreateDocument(ctx, testDoc("b"))
	docs, err := s.ListDocuments(ctx, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("expected 2 documents, got %d", len(docs))
	}
}
