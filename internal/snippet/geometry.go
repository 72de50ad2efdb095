package snippet

import "fmt"

// Page identifies one scanned page and its pixel dimensions. The dimensions
// let a renderer scale region coordinates to the page image.
type Page struct {
	ID     string
	Width  int
	Height int
}

// ToNode renders the page reference. Dimensions are included only when both
// are known (positive); an id-only page is still addressable.
func (p Page) ToNode() Node {
	n := Node{{Key: "id", Value: p.ID}}
	if p.Width > 0 && p.Height > 0 {
		n.Add("width", p.Width)
		n.Add("height", p.Height)
	}
	return n
}

// Box is a rectangular region in pixel coordinates with the origin at the
// upper left. PageID optionally associates the box with a page; Text
// optionally carries the text covered by the box.
type Box struct {
	ULX    float64
	ULY    float64
	LRX    float64
	LRY    float64
	PageID string
	Text   string
}

// ToNode renders the box without page resolution. Used for highlight-group
// boxes, whose coordinates are relative to their snippet region.
func (b Box) ToNode() Node {
	var n Node
	n.Add("ulx", b.ULX)
	n.Add("uly", b.ULY)
	n.Add("lrx", b.LRX)
	n.Add("lry", b.LRY)
	if b.Text != "" {
		n.Add("text", b.Text)
	}
	return n
}

// ToPageNode renders the box resolved against pages: when the box carries a
// PageID, a pageIdx field pointing into pages is appended. A PageID not
// present in pages is an error.
func (b Box) ToPageNode(pages []Page) (Node, error) {
	n := b.ToNode()
	if b.PageID == "" {
		return n, nil
	}
	for i, p := range pages {
		if p.ID == b.PageID {
			n.Add("pageIdx", i)
			return n, nil
		}
	}
	return nil, fmt.Errorf("box references page %q not in snippet pages", b.PageID)
}

var (
	_ TreeMarshaler = Page{}
	_ TreeMarshaler = Box{}
)
