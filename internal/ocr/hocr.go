package ocr

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ParseHOCR parses hOCR markup. Pages are elements with class ocr_page,
// lines are ocr_line (or ocr_header/ocr_caption), words are ocrx_word.
// Geometry comes from the bbox property of each element's title attribute.
func ParseHOCR(content []byte) (*Document, error) {
	root, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse hOCR: %w", err)
	}
	doc := &Document{Format: FormatHOCR}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocr_page") {
			doc.Pages = append(doc.Pages, parseHOCRPage(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("parse hOCR: no ocr_page elements")
	}
	return doc, nil
}

func parseHOCRPage(n *html.Node) Page {
	page := Page{ID: attr(n, "id")}
	if box, ok := titleBBox(attr(n, "title")); ok {
		page.Width = int(box.lrx - box.ulx)
		page.Height = int(box.lry - box.uly)
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "ocr_line"), hasClass(n, "ocr_header"), hasClass(n, "ocr_caption"):
				if line := parseHOCRLine(n); len(line.Words) > 0 {
					page.Lines = append(page.Lines, line)
				}
				return
			case hasClass(n, "ocrx_word"):
				// word outside any line gets its own line
				if w, ok := parseHOCRWord(n); ok {
					page.Lines = append(page.Lines, Line{Words: []Word{w}})
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return page
}

func parseHOCRLine(n *html.Node) Line {
	var line Line
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocrx_word") {
			if w, ok := parseHOCRWord(n); ok {
				line.Words = append(line.Words, w)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return line
}

func parseHOCRWord(n *html.Node) (Word, bool) {
	text := strings.TrimSpace(textContent(n))
	if text == "" {
		return Word{}, false
	}
	box, ok := titleBBox(attr(n, "title"))
	if !ok {
		return Word{}, false
	}
	return Word{Text: text, ULX: box.ulx, ULY: box.uly, LRX: box.lrx, LRY: box.lry}, true
}

type bbox struct {
	ulx, uly, lrx, lry float64
}

// titleBBox extracts the bbox property from an hOCR title attribute, e.g.
// `image "p1.png"; bbox 0 0 1200 1800; ppageno 0`.
func titleBBox(title string) (bbox, bool) {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}
		var coords [4]float64
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return bbox{}, false
			}
			coords[i] = v
		}
		return bbox{ulx: coords[0], uly: coords[1], lrx: coords[2], lry: coords[3]}, true
	}
	return bbox{}, false
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
