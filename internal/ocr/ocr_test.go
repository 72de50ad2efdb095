package ocr

import "testing"

const hocrSample = `<?xml version="1.0" encoding="UTF-8"?>
<html>
<body>
  <div class="ocr_page" id="page_1" title='image "p1.png"; bbox 0 0 1200 1800; ppageno 0'>
    <p class="ocr_par">
      <span class="ocr_line" title="bbox 100 100 900 140">
        <span class="ocrx_word" title="bbox 100 100 260 140; x_wconf 95">Domestic</span>
        <span class="ocrx_word" title="bbox 280 100 420 140; x_wconf 93">cats</span>
      </span>
      <span class="ocr_line" title="bbox 100 160 900 200">
        <span class="ocrx_word" title="bbox 100 160 300 200; x_wconf 91">purring</span>
      </span>
    </p>
  </div>
</body>
</html>`

const altoSample = `<?xml version="1.0" encoding="UTF-8"?>
<alto xmlns="http://www.loc.gov/standards/alto/ns-v3#">
  <Layout>
    <Page ID="P2" WIDTH="1000" HEIGHT="1500">
      <PrintSpace>
        <TextBlock>
          <TextLine>
            <String CONTENT="Domestic" HPOS="50" VPOS="60" WIDTH="160" HEIGHT="40"/>
            <String CONTENT="cats" HPOS="220" VPOS="60" WIDTH="90" HEIGHT="40"/>
          </TextLine>
        </TextBlock>
      </PrintSpace>
    </Page>
  </Layout>
</alto>`

const miniSample = `<ocr>
  <p xml:id="page_9" wh="1200 1800">
    <b>
      <l><w x="50 50 100 30">Domestic</w> <w x="160 50 80 30">cats</w></l>
      <l><w x="50 90 120 30">purring</w></l>
    </b>
  </p>
</ocr>`

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Format
	}{
		{"hocr", hocrSample, FormatHOCR},
		{"alto", altoSample, FormatALTO},
		{"miniocr", miniSample, FormatMiniOCR},
		{"plain", "just some plain text", FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect([]byte(tt.content)); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseHOCR(t *testing.T) {
	doc, err := ParseHOCR([]byte(hocrSample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
	page := doc.Pages[0]
	if page.ID != "page_1" || page.Width != 1200 || page.Height != 1800 {
		t.Errorf("unexpected page %+v", page)
	}
	if len(page.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(page.Lines))
	}
	w := page.Lines[0].Words[0]
	if w.Text != "Domestic" || w.ULX != 100 || w.ULY != 100 || w.LRX != 260 || w.LRY != 140 {
		t.Errorf("unexpected word %+v", w)
	}
}

func TestParseHOCR_noPages(t *testing.T) {
	if _, err := ParseHOCR([]byte("<html><body></body></html>")); err == nil {
		t.Error("hOCR without pages should fail")
	}
}

func TestParseALTO(t *testing.T) {
	doc, err := ParseALTO([]byte(altoSample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	page := doc.Pages[0]
	if page.ID != "P2" || page.Width != 1000 || page.Height != 1500 {
		t.Errorf("unexpected page %+v", page)
	}
	if len(page.Lines) != 1 || len(page.Lines[0].Words) != 2 {
		t.Fatalf("unexpected line structure %+v", page.Lines)
	}
	w := page.Lines[0].Words[1]
	if w.Text != "cats" || w.ULX != 220 || w.LRX != 310 || w.LRY != 100 {
		t.Errorf("unexpected word %+v", w)
	}
}

func TestParseMiniOCR(t *testing.T) {
	doc, err := ParseMiniOCR([]byte(miniSample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	page := doc.Pages[0]
	if page.ID != "page_9" || page.Width != 1200 || page.Height != 1800 {
		t.Errorf("unexpected page %+v", page)
	}
	if len(page.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(page.Lines))
	}
	w := page.Lines[0].Words[0]
	if w.Text != "Domestic" || w.ULX != 50 || w.LRX != 150 || w.LRY != 80 {
		t.Errorf("unexpected word %+v", w)
	}
}

func TestParseMiniOCR_mixedBlocksAndLines(t *testing.T) {
	src := `<ocr><p xml:id="p" wh="1000 1000">
<l><w x="10 10 50 20">first</w></l>
<b><l><w x="10 40 50 20">second</w></l></b>
<l><w x="10 70 50 20">third</w></l>
</p></ocr>`
	doc, err := ParseMiniOCR([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	lines := doc.Pages[0].Lines
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	// Loose lines and block lines keep their order in the source.
	for i, want := range []string{"first", "second", "third"} {
		if got := lines[i].Words[0].Text; got != want {
			t.Errorf("line %d = %q, want %q", i, got, want)
		}
	}
}

func TestParseMiniOCR_fractional(t *testing.T) {
	src := `<ocr><p xml:id="p" wh="1000 2000"><l><w x="0.1 0.2 0.3 0.05">hi</w></l></p></ocr>`
	doc, err := ParseMiniOCR([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	w := doc.Pages[0].Lines[0].Words[0]
	if w.ULX != 100 || w.ULY != 400 || w.LRX != 400 || w.LRY != 500 {
		t.Errorf("fractional coords not scaled: %+v", w)
	}
}

func TestParse_dispatch(t *testing.T) {
	for _, src := range []string{hocrSample, altoSample, miniSample} {
		if _, err := Parse([]byte(src)); err != nil {
			t.Errorf("Parse failed: %v", err)
		}
	}
	if _, err := Parse([]byte("plain text")); err == nil {
		t.Error("plain text should not parse as OCR")
	}
}

func TestPlainText(t *testing.T) {
	doc, err := Parse([]byte(hocrSample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := "Domestic cats\npurring"
	if got := doc.PlainText(); got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}
