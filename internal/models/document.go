// Package models defines core data structures for documents, queries, and
// search results.
package models

import "time"

// Document represents a stored document. Content holds the extracted plain
// text used for keyword indexing; Source keeps the raw OCR markup so word
// geometry can be recovered at highlight time. Format names the source
// format ("hocr", "alto", "miniocr", or a geometry-less format like "pdf").
type Document struct {
	ID        string                 `json:"id" db:"id"`
	Title     string                 `json:"title" db:"title"`
	Content   string                 `json:"content" db:"content"`
	Source    string                 `json:"-" db:"source"`
	Format    string                 `json:"format" db:"format"`
	Path      string                 `json:"path,omitempty" db:"path"`
	Metadata  map[string]interface{} `json:"metadata" db:"metadata"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt time.Time              `json:"updated_at" db:"updated_at"`
}

// DocumentPage is one scanned page of a document: its position, source page
// identifier, pixel dimensions, and plain text.
type DocumentPage struct {
	DocumentID string `json:"document_id" db:"document_id"`
	PageNum    int    `json:"page_num" db:"page_num"`
	PageID     string `json:"page_id" db:"page_id"`
	Width      int    `json:"width" db:"width"`
	Height     int    `json:"height" db:"height"`
	Text       string `json:"text,omitempty" db:"text"`
}

// DocumentInput is the input for creating or updating a document. Content is
// the raw source (OCR markup or plain text); the format is detected on
// ingest.
type DocumentInput struct {
	ID       string                 `json:"id,omitempty"`
	Title    string                 `json:"title,omitempty"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
