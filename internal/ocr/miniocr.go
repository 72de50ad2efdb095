package ocr

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

type miniRoot struct {
	XMLName xml.Name   `xml:"ocr"`
	Pages   []miniPage `xml:"p"`
}

type miniPage struct {
	ID string `xml:"id,attr"`
	WH string `xml:"wh,attr"`
	// Blocks and loose lines interleave; ",any" keeps document order.
	Nodes []miniNode `xml:",any"`
}

// miniNode is either a <b> block (Lines populated) or a loose <l> line
// (Words populated), told apart by XMLName.
type miniNode struct {
	XMLName xml.Name
	Lines   []miniLine `xml:"l"`
	Words   []miniWord `xml:"w"`
}

type miniLine struct {
	Words []miniWord `xml:"w"`
}

type miniWord struct {
	X    string `xml:"x,attr"`
	Text string `xml:",chardata"`
}

// ParseMiniOCR parses the compact MiniOCR format: <ocr> containing <p> pages
// (wh holds "width height"), <b> blocks, <l> lines, and <w> words whose x
// attribute holds "x y w h". Coordinates at or below 1.0 are treated as
// fractions of the page dimensions.
func ParseMiniOCR(content []byte) (*Document, error) {
	var root miniRoot
	if err := xml.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("parse MiniOCR: %w", err)
	}
	if len(root.Pages) == 0 {
		return nil, fmt.Errorf("parse MiniOCR: no p elements")
	}
	doc := &Document{Format: FormatMiniOCR}
	for _, p := range root.Pages {
		page := Page{ID: p.ID}
		if w, h, ok := parseWH(p.WH); ok {
			page.Width, page.Height = w, h
		}
		for _, node := range p.Nodes {
			switch node.XMLName.Local {
			case "b":
				for _, l := range node.Lines {
					appendMiniLine(&page, l.Words)
				}
			case "l":
				appendMiniLine(&page, node.Words)
			}
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

func appendMiniLine(page *Page, words []miniWord) {
	var line Line
	for _, mw := range words {
		text := strings.TrimSpace(mw.Text)
		if text == "" {
			continue
		}
		w, ok := parseMiniBox(mw.X, page.Width, page.Height)
		if !ok {
			continue
		}
		w.Text = text
		line.Words = append(line.Words, w)
	}
	if len(line.Words) > 0 {
		page.Lines = append(page.Lines, line)
	}
}

func parseWH(wh string) (int, int, bool) {
	fields := strings.Fields(wh)
	if len(fields) != 2 {
		return 0, 0, false
	}
	w, err1 := strconv.Atoi(fields[0])
	h, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return w, h, true
}

func parseMiniBox(x string, pageWidth, pageHeight int) (Word, bool) {
	fields := strings.Fields(x)
	if len(fields) != 4 {
		return Word{}, false
	}
	var coords [4]float64
	fractional := true
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Word{}, false
		}
		if v > 1 {
			fractional = false
		}
		coords[i] = v
	}
	if fractional && pageWidth > 0 && pageHeight > 0 {
		coords[0] *= float64(pageWidth)
		coords[1] *= float64(pageHeight)
		coords[2] *= float64(pageWidth)
		coords[3] *= float64(pageHeight)
	}
	return Word{
		ULX: coords[0],
		ULY: coords[1],
		LRX: coords[0] + coords[2],
		LRY: coords[1] + coords[3],
	}, true
}
