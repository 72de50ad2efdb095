// Package ocr parses OCR-annotated document formats (hOCR, ALTO, MiniOCR)
// into pages, lines, and words with pixel geometry.
package ocr

import (
	"bytes"
	"fmt"
	"strings"
)

// Format identifies an OCR markup format.
type Format int

const (
	// FormatUnknown means the content was not recognized as OCR markup.
	FormatUnknown Format = iota
	// FormatHOCR is the HTML-based hOCR format (ocr_page/ocr_line/ocrx_word).
	FormatHOCR
	// FormatALTO is the ALTO XML format (Layout/Page/TextLine/String).
	FormatALTO
	// FormatMiniOCR is the compact MiniOCR XML format (p/l/w elements).
	FormatMiniOCR
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatHOCR:
		return "hocr"
	case FormatALTO:
		return "alto"
	case FormatMiniOCR:
		return "miniocr"
	default:
		return "unknown"
	}
}

// Word is one recognized word with its bounding box in page pixel
// coordinates (upper-left origin).
type Word struct {
	Text string
	ULX  float64
	ULY  float64
	LRX  float64
	LRY  float64
}

// Line is one line of recognized words.
type Line struct {
	Words []Word
}

// Page is one scanned page: its identifier, pixel dimensions, and lines.
type Page struct {
	ID     string
	Width  int
	Height int
	Lines  []Line
}

// Text returns the page's plain text, words joined by spaces and lines by
// newlines.
func (p *Page) Text() string {
	var b strings.Builder
	for i, line := range p.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, w := range line.Words {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(w.Text)
		}
	}
	return b.String()
}

// Document is a parsed OCR source.
type Document struct {
	Format Format
	Pages  []Page
}

// PlainText returns the document's full plain text, pages separated by
// newlines. Used for keyword indexing.
func (d *Document) PlainText() string {
	parts := make([]string, 0, len(d.Pages))
	for i := range d.Pages {
		parts = append(parts, d.Pages[i].Text())
	}
	return strings.Join(parts, "\n")
}

// Detect sniffs content for a known OCR markup format.
func Detect(content []byte) Format {
	head := content
	if len(head) > 4096 {
		head = head[:4096]
	}
	lower := bytes.ToLower(head)
	switch {
	case bytes.Contains(lower, []byte("<alto")):
		return FormatALTO
	case bytes.Contains(lower, []byte("ocr_page")):
		return FormatHOCR
	case bytes.Contains(lower, []byte("<ocr>")) || bytes.Contains(lower, []byte("<ocr ")):
		return FormatMiniOCR
	default:
		return FormatUnknown
	}
}

// Parse detects the format of content and parses it.
// Returns an error for unrecognized or malformed markup.
func Parse(content []byte) (*Document, error) {
	switch Detect(content) {
	case FormatHOCR:
		return ParseHOCR(content)
	case FormatALTO:
		return ParseALTO(content)
	case FormatMiniOCR:
		return ParseMiniOCR(content)
	default:
		return nil, fmt.Errorf("unrecognized OCR format")
	}
}
