package ocr

import (
	"encoding/xml"
	"fmt"
)

type altoRoot struct {
	XMLName xml.Name   `xml:"alto"`
	Pages   []altoPage `xml:"Layout>Page"`
}

type altoPage struct {
	ID     string     `xml:"ID,attr"`
	Width  int        `xml:"WIDTH,attr"`
	Height int        `xml:"HEIGHT,attr"`
	Lines  []altoLine `xml:"PrintSpace>TextBlock>TextLine"`
}

type altoLine struct {
	Strings []altoString `xml:"String"`
}

type altoString struct {
	Content string  `xml:"CONTENT,attr"`
	HPos    float64 `xml:"HPOS,attr"`
	VPos    float64 `xml:"VPOS,attr"`
	Width   float64 `xml:"WIDTH,attr"`
	Height  float64 `xml:"HEIGHT,attr"`
}

// ParseALTO parses ALTO XML. Word geometry comes from each String element's
// HPOS/VPOS/WIDTH/HEIGHT attributes.
func ParseALTO(content []byte) (*Document, error) {
	var root altoRoot
	if err := xml.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("parse ALTO: %w", err)
	}
	if len(root.Pages) == 0 {
		return nil, fmt.Errorf("parse ALTO: no Page elements")
	}
	doc := &Document{Format: FormatALTO}
	for _, p := range root.Pages {
		page := Page{ID: p.ID, Width: p.Width, Height: p.Height}
		for _, l := range p.Lines {
			var line Line
			for _, s := range l.Strings {
				if s.Content == "" {
					continue
				}
				line.Words = append(line.Words, Word{
					Text: s.Content,
					ULX:  s.HPos,
					ULY:  s.VPos,
					LRX:  s.HPos + s.Width,
					LRY:  s.VPos + s.Height,
				})
			}
			if len(line.Words) > 0 {
				page.Lines = append(page.Lines, line)
			}
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}
