package sheets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naderabdullah/cardforge/catalog"
	"github.com/naderabdullah/cardforge/contacts"
	"github.com/naderabdullah/cardforge/layout"
	"github.com/naderabdullah/cardforge/pdfs"
	fpdfcanvas "github.com/naderabdullah/cardforge/pdfs/impls/fpdf"
	"github.com/naderabdullah/cardforge/zones"
)

func testAssembler() *Assembler {
	return NewAssembler(func() (pdfs.Canvas, error) {
		return fpdfcanvas.NewCanvas(pdfs.LetterSize), nil
	})
}

func testFace() *zones.CardFace {
	return &zones.CardFace{
		Width:  layout.CardWidth,
		Height: layout.CardHeight,
		Border: "#000000",
		Zones: []zones.Zone{
			{ID: "company", Type: zones.ZoneCompanyName, X: 5, Y: 5, Width: 78, Height: 8},
			{ID: "person", Type: zones.ZonePersonalInfo, X: 5, Y: 15, Width: 78, Height: 12},
			{
				ID: "contact", Type: zones.ZoneContactBlock, X: 5, Y: 30, Width: 78, Height: 16,
				Include: []string{"phones", "emails"}, Overflow: zones.OverflowWrap,
			},
		},
	}
}

func testDesign() *catalog.Design {
	return &catalog.Design{
		ID:      "classic-01",
		Theme:   "classic",
		Width:   layout.CardWidth,
		Height:  layout.CardHeight,
		Palette: []string{"#000000"},
		Fonts:   []string{"Helvetica"},
		Front:   testFace(),
	}
}

func testContact() *contacts.Record {
	return &contacts.Record{
		CompanyName: "Acme Corp",
		PersonName:  "Jane Doe",
		Title:       "CEO",
		Phones:      []contacts.Entry{{Value: "5551234567", Primary: true}},
		Emails:      []contacts.Entry{{Value: "jane@acme.example"}},
	}
}

func TestGenerateDocumentFullSheet(t *testing.T) {
	out, stats, err := testAssembler().GenerateDocument(testDesign(), testContact(), 10)
	require.NoError(t, err)

	assert.Equal(t, 10, stats.Requested)
	assert.Equal(t, 10, stats.Rendered)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 1, stats.Pages)
	assert.NotEmpty(t, stats.JobID)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output is not a PDF")
}

func TestGenerateDocumentSpillsToSecondSheet(t *testing.T) {
	rc := &recordingCanvas{}
	asm := NewAssembler(func() (pdfs.Canvas, error) { return rc, nil })

	_, stats, err := asm.GenerateDocument(testDesign(), testContact(), 15)
	require.NoError(t, err)

	assert.Equal(t, 15, stats.Rendered)
	assert.Equal(t, 2, stats.Pages)

	// the second sheet's five cards occupy slots 1-5 of the grid, in
	// order, at the same origins a full sheet would use
	slots := layout.ComputeSheetPositions()
	second := rc.cardsOnPage(2)
	require.Len(t, second, 5)
	for i, got := range second {
		assert.Equal(t, slots[i].X, got.x, "card %d x", i+1)
		assert.Equal(t, slots[i].Y, got.y, "card %d y", i+1)
	}
	require.Len(t, rc.cardsOnPage(1), 10)
}

// recordingCanvas notes the page and origin of every card-sized rect
// so placement can be asserted without decoding a PDF.
type recordingCanvas struct {
	pages int
	cards []cardMark
}

type cardMark struct {
	page int
	x, y float64
}

func (c *recordingCanvas) Rect(x, y, w, h float64, style string) {
	if w != layout.CardWidth || h != layout.CardHeight {
		return
	}
	// background fill and border report the same origin once
	for _, m := range c.cards {
		if m.page == c.pages && m.x == x && m.y == y {
			return
		}
	}
	c.cards = append(c.cards, cardMark{page: c.pages, x: x, y: y})
}

func (c *recordingCanvas) cardsOnPage(page int) []cardMark {
	var out []cardMark
	for _, m := range c.cards {
		if m.page == page {
			out = append(out, m)
		}
	}
	return out
}

func (c *recordingCanvas) PaperSize() pdfs.PaperSize            { return pdfs.LetterSize }
func (c *recordingCanvas) Orientation() string                  { return "P" }
func (c *recordingCanvas) AddPage()                             { c.pages++ }
func (c *recordingCanvas) PageCount() int                       { return c.pages }
func (c *recordingCanvas) SetFont(string, string, float64)      {}
func (c *recordingCanvas) FontHeight() float64                  { return 3.5 }
func (c *recordingCanvas) StringWidth(text string) float64      { return float64(len(text)) }
func (c *recordingCanvas) SetTextColor(int, int, int)           {}
func (c *recordingCanvas) SetDrawColor(int, int, int)           {}
func (c *recordingCanvas) SetFillColor(int, int, int)           {}
func (c *recordingCanvas) SetLineWidth(float64)                 {}
func (c *recordingCanvas) Text(float64, float64, string)        {}
func (c *recordingCanvas) Line(float64, float64, float64, float64) {}
func (c *recordingCanvas) ClipRect(float64, float64, float64, float64) {}
func (c *recordingCanvas) ClipEnd()                             {}
func (c *recordingCanvas) RegisterImage(string, string, io.Reader) error { return nil }
func (c *recordingCanvas) ImageSize(string) (float64, float64, bool)     { return 0, 0, false }
func (c *recordingCanvas) Image(string, float64, float64, float64, float64) error { return nil }
func (c *recordingCanvas) Err() error                           { return nil }
func (c *recordingCanvas) WriteTo(io.Writer) (int64, error)     { return 0, nil }
func (c *recordingCanvas) WriteToFile(string) error             { return nil }
func (c *recordingCanvas) ProduceBytes() ([]byte, error)        { return []byte("%PDF stub"), nil }

var _ pdfs.Canvas = (*recordingCanvas)(nil)

func TestGenerateDocumentBackFace(t *testing.T) {
	design := testDesign()
	design.Back = &zones.CardFace{
		Width:  layout.CardWidth,
		Height: layout.CardHeight,
		Zones: []zones.Zone{
			{ID: "slogan", Type: zones.ZoneCustomText, X: 10, Y: 20, Width: 68, Height: 10, Text: "Edge to edge"},
		},
	}

	_, stats, err := testAssembler().GenerateDocument(design, testContact(), 10)
	require.NoError(t, err)

	// back pages mirror the front pages but count neither cards nor
	// skips twice
	assert.Equal(t, 10, stats.Rendered)
	assert.Equal(t, 2, stats.Pages)
}

func TestGenerateDocumentRejectsNilInputs(t *testing.T) {
	asm := testAssembler()

	_, _, err := asm.GenerateDocument(nil, testContact(), 1)
	assert.ErrorIs(t, err, ErrNilDesign)

	_, _, err = asm.GenerateDocument(testDesign(), nil, 1)
	assert.ErrorIs(t, err, ErrNilRecord)
}

func TestGenerateDocumentMarkupDesign(t *testing.T) {
	design := &catalog.Design{ID: "fancy-02", Markup: `<div class="name">x</div>`}
	_, _, err := testAssembler().GenerateDocument(design, testContact(), 1)
	assert.ErrorIs(t, err, ErrMarkupNeedsCapture)
}

func TestGenerateDocumentBadLogoStillRenders(t *testing.T) {
	design := testDesign()
	design.Front.Zones = append(design.Front.Zones, zones.Zone{
		ID: "logo", Type: zones.ZoneLogo, X: 60, Y: 5, Width: 20, Height: 20,
	})
	rec := testContact()
	rec.Logo = &contacts.Logo{ID: "l1", Data: []byte("not an image")}

	_, stats, err := testAssembler().GenerateDocument(design, rec, 5)
	require.NoError(t, err)
	// undecodable logo degrades to the placeholder box, never kills cards
	assert.Equal(t, 5, stats.Rendered)
}

func TestGenerateSingleSheetClamps(t *testing.T) {
	tests := []struct {
		name      string
		cardCount int
		want      int
	}{
		{name: "zero becomes one", cardCount: 0, want: 1},
		{name: "negative becomes one", cardCount: -3, want: 1},
		{name: "in range untouched", cardCount: 4, want: 4},
		{name: "over capacity capped", cardCount: 50, want: layout.CardsPerSheet},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, stats, err := testAssembler().GenerateSingleSheet(testDesign(), testContact(), tc.cardCount)
			require.NoError(t, err)
			assert.Equal(t, tc.want, stats.Rendered)
			assert.Equal(t, 1, stats.Pages)
		})
	}
}

func TestGenerateDocumentOffSheetAdjustSkips(t *testing.T) {
	asm := testAssembler()
	// nudge the left column clean off the page: its five slots fail
	// validation and are skipped, the right column still renders
	asm.Adjust = &layout.ColumnAdjust{LeftX: 100}

	_, stats, err := asm.GenerateDocument(testDesign(), testContact(), 10)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Rendered)
	assert.Equal(t, 5, stats.Skipped)
}

func TestGenerateStamped(t *testing.T) {
	stamp := encodeTestPNG(t, 210, 120)

	out, stats, err := testAssembler().GenerateStamped(stamp, "png", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Rendered)
	assert.Equal(t, 1, stats.Pages)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateStampedEmpty(t *testing.T) {
	_, _, err := testAssembler().GenerateStamped(nil, "png", 10)
	assert.True(t, errors.Is(err, ErrEmptyStamp))
}

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
