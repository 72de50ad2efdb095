package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/okibi/terasu/internal/config"
	"github.com/okibi/terasu/internal/extract"
	"github.com/okibi/terasu/internal/indexer"
	"github.com/okibi/terasu/internal/keyword"
	"github.com/okibi/terasu/internal/search"
	"github.com/okibi/terasu/internal/storage"
)

const hocrSource = `<html><body>
<div class="ocr_page" id="page_1" title="bbox 0 0 1000 1500">
<span class="ocr_line" title="bbox 100 100 560 140">
<span class="ocrx_word" title="bbox 100 100 260 140">Domestic</span>
<span class="ocrx_word" title="bbox 280 100 420 140">cats</span>
<span class="ocrx_word" title="bbox 440 100 560 140">purr</span>
</span>
</div>
</body></html>`

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewSQLiteStorage(filepath.Join(dir, "db.sqlite"))
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	kwIdx, err := keyword.NewBleveIndex(filepath.Join(dir, "bleve"))
	if err != nil {
		t.Fatalf("bleve: %v", err)
	}
	t.Cleanup(func() { kwIdx.Close() })

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Storage.DatabasePath = filepath.Join(dir, "db.sqlite")
	cfg.Storage.BleveIndexPath = filepath.Join(dir, "bleve")

	engine := search.NewEngine(store, kwIdx, &cfg.Search, zap.NewNop())
	idx := indexer.NewIndexer(store, kwIdx, extract.NewExtractor())
	srv := NewServer(engine, idx, store, cfg, zap.NewNop())
	return srv, srv.Router()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestIndexThenSearch(t *testing.T) {
	_, handler := newTestServer(t)

	w := doJSON(t, handler, http.MethodPost, "/api/v1/documents", map[string]string{
		"id":      "scan-1",
		"title":   "Cat Scan",
		"content": hocrSource,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("index status = %d, body = %s", w.Code, w.Body.String())
	}
	var created map[string]string
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created["id"] != "scan-1" || created["format"] != "hocr" {
		t.Errorf("unexpected create response: %v", created)
	}

	w = doJSON(t, handler, http.MethodPost, "/api/v1/search", map[string]string{"query": "purr"})
	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d, body = %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"scan-1"`) {
		t.Errorf("search should find the document: %s", body)
	}
	if !strings.Contains(body, "<em>purr</em>") {
		t.Errorf("search result should carry highlighted snippet: %s", body)
	}
	if !strings.Contains(body, `"regions"`) {
		t.Errorf("OCR snippet should carry regions: %s", body)
	}
}

func TestGetDocument(t *testing.T) {
	_, handler := newTestServer(t)

	doJSON(t, handler, http.MethodPost, "/api/v1/documents", map[string]string{
		"id": "d1", "title": "T", "content": "plain words here",
	})

	w := doJSON(t, handler, http.MethodGet, "/api/v1/documents/d1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"plain words here"`) {
		t.Errorf("unexpected document body: %s", w.Body.String())
	}

	w = doJSON(t, handler, http.MethodGet, "/api/v1/documents/absent", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing document should 404, got %d", w.Code)
	}
}

func TestDeleteDocument(t *testing.T) {
	_, handler := newTestServer(t)

	doJSON(t, handler, http.MethodPost, "/api/v1/documents", map[string]string{
		"id": "d1", "content": "delete me",
	})
	w := doJSON(t, handler, http.MethodDelete, "/api/v1/documents/d1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = doJSON(t, handler, http.MethodGet, "/api/v1/documents/d1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("document should be gone, got %d", w.Code)
	}
	w = doJSON(t, handler, http.MethodDelete, "/api/v1/documents/d1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("deleting a missing document should 404, got %d", w.Code)
	}
}

func TestIndexDocumentValidation(t *testing.T) {
	_, handler := newTestServer(t)

	w := doJSON(t, handler, http.MethodPost, "/api/v1/documents", map[string]string{"title": "empty"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing content should 400, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed JSON should 400, got %d", rec.Code)
	}
}

func TestSearchEmptyQueryRejected(t *testing.T) {
	_, handler := newTestServer(t)
	w := doJSON(t, handler, http.MethodPost, "/api/v1/search", map[string]string{"query": ""})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty query should 400, got %d", w.Code)
	}
}

func TestStatus(t *testing.T) {
	_, handler := newTestServer(t)
	doJSON(t, handler, http.MethodPost, "/api/v1/documents", map[string]string{
		"id": "s1", "content": hocrSource,
	})

	w := doJSON(t, handler, http.MethodGet, "/api/v1/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out struct {
		Documents int64                  `json:"documents"`
		Pages     int64                  `json:"pages"`
		Config    map[string]interface{} `json:"config"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Documents != 1 || out.Pages != 1 {
		t.Errorf("counts wrong: documents=%d pages=%d", out.Documents, out.Pages)
	}
	if out.Config["database_path"] == "" {
		t.Error("config block should carry paths")
	}
}

func TestHealth(t *testing.T) {
	_, handler := newTestServer(t)
	w := doJSON(t, handler, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("health = %d", w.Code)
	}
}
