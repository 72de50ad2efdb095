// Package extract turns document files into indexable text, keeping OCR word
// geometry when the source carries it.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okibi/terasu/internal/ocr"
)

// Result is the outcome of extraction. OCR is non-nil only when the source
// was OCR markup; such documents can be highlighted with page coordinates.
// Everything else yields plain text only.
type Result struct {
	Text   string
	Format string
	OCR    *ocr.Document
}

// Extractor extracts text (and OCR geometry) from document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and extracts its content.
// OCR markup (hOCR, ALTO, MiniOCR) is detected by content regardless of
// extension. Otherwise the extension routes to a format extractor: PDF text
// layer, office formats, spreadsheets, or plain text.
func (e *Extractor) Extract(path string) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return e.ExtractBytes(content, ext)
}

// ExtractBytes extracts content based on the given extension (including the
// leading dot). Returns an error for unsupported formats.
func (e *Extractor) ExtractBytes(content []byte, ext string) (*Result, error) {
	if format := ocr.Detect(content); format != ocr.FormatUnknown {
		doc, err := ocr.Parse(content)
		if err != nil {
			return nil, err
		}
		return &Result{Text: doc.PlainText(), Format: format.String(), OCR: doc}, nil
	}
	switch ext {
	case ".pdf":
		text, err := extractPDF(content)
		if err != nil {
			return nil, err
		}
		return &Result{Text: text, Format: "pdf"}, nil
	case ".docx", ".odt", ".rtf":
		text, err := extractOffice(content)
		if err != nil {
			return nil, err
		}
		return &Result{Text: text, Format: strings.TrimPrefix(ext, ".")}, nil
	case ".xlsx":
		text, err := extractExcel(content)
		if err != nil {
			return nil, err
		}
		return &Result{Text: text, Format: "xlsx"}, nil
	case ".txt", ".md", ".rst", ".xml", ".html", ".hocr", "":
		text, err := extractPlain(content)
		if err != nil {
			return nil, err
		}
		return &Result{Text: text, Format: "plain"}, nil
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}
}

// Supported reports whether the extension can be extracted. OCR sources pass
// regardless because they are detected by content.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".pdf", ".docx", ".odt", ".rtf", ".xlsx", ".txt", ".md", ".rst", ".xml", ".html", ".hocr":
		return true
	default:
		return false
	}
}
