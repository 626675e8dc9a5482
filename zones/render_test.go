package zones

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naderabdullah/cardforge/contacts"
	"github.com/naderabdullah/cardforge/pdfs"
	fpdfcanvas "github.com/naderabdullah/cardforge/pdfs/impls/fpdf"
)

func TestZoneValidate(t *testing.T) {
	valid := Zone{ID: "z", Type: ZoneCustomText, X: 1, Y: 1, Width: 10, Height: 5, Text: "hi"}

	tests := []struct {
		name    string
		mutate  func(*Zone)
		wantErr string
	}{
		{name: "valid", mutate: func(z *Zone) {}, wantErr: ""},
		{name: "unknown type", mutate: func(z *Zone) { z.Type = "banner" }, wantErr: "unknown type"},
		{name: "zero width", mutate: func(z *Zone) { z.Width = 0 }, wantErr: "non-positive size"},
		{name: "negative height", mutate: func(z *Zone) { z.Height = -2 }, wantErr: "non-positive size"},
		{name: "negative origin", mutate: func(z *Zone) { z.X = -1 }, wantErr: "negative origin"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			z := valid
			tc.mutate(&z)
			err := z.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b int
	}{
		{in: "#FF0000", r: 255},
		{in: "00ff00", g: 255},
		{in: "#000080", b: 128},
		{in: " #102030 ", r: 16, g: 32, b: 48},
		{in: "nonsense", r: 0, g: 0, b: 0},
		{in: "#FFF", r: 0, g: 0, b: 0}, // short form unsupported, black fallback
		{in: "", r: 0, g: 0, b: 0},
	}
	for _, tc := range tests {
		r, g, b := parseHexColor(tc.in)
		if r != tc.r || g != tc.g || b != tc.b {
			t.Errorf("parseHexColor(%q) = (%d,%d,%d), want (%d,%d,%d)", tc.in, r, g, b, tc.r, tc.g, tc.b)
		}
	}
}

func renderTestFace(t *testing.T, face *CardFace, rec *contacts.Record) []byte {
	t.Helper()
	canvas := fpdfcanvas.NewCanvas(pdfs.LetterSize)
	canvas.AddPage()
	require.NoError(t, RenderCard(canvas, face, rec, 12.7, 12.7))
	out, err := canvas.ProduceBytes()
	require.NoError(t, err)
	return out
}

func TestRenderCardAllZoneTypes(t *testing.T) {
	face := &CardFace{
		Width:      88.9,
		Height:     50.8,
		Background: "#F5F5F5",
		Border:     "#333333",
		Zones: []Zone{
			{ID: "company", Type: ZoneCompanyName, X: 5, Y: 4, Width: 78, Height: 8, Style: Style{FontSize: 12, Bold: true}},
			{ID: "person", Type: ZonePersonalInfo, X: 5, Y: 14, Width: 78, Height: 12},
			{ID: "tag", Type: ZoneCustomText, X: 5, Y: 27, Width: 78, Height: 5, Text: "Quality since 1990", Align: "C"},
			{
				ID: "contact", Type: ZoneContactBlock, X: 5, Y: 33, Width: 78, Height: 14,
				Include: []string{"phones", "emails", "websites"}, Overflow: OverflowWrap,
			},
		},
	}
	rec := &contacts.Record{
		CompanyName: "Acme Corp",
		PersonName:  "Jane Doe",
		Title:       "CEO",
		Phones:      []contacts.Entry{{Value: "5551234567", Primary: true}},
		Emails:      []contacts.Entry{{Value: "jane@acme.example"}},
		Websites:    []contacts.Entry{{Value: "acme.example"}},
	}

	out := renderTestFace(t, face, rec)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestRenderCardSkipsInvalidZones(t *testing.T) {
	face := &CardFace{
		Width:  88.9,
		Height: 50.8,
		Zones: []Zone{
			{ID: "broken", Type: "confetti", X: 5, Y: 5, Width: 10, Height: 10},
			{ID: "ok", Type: ZoneCustomText, X: 5, Y: 20, Width: 40, Height: 5, Text: "still here"},
		},
	}
	rec := &contacts.Record{CompanyName: "Acme", PersonName: "Jane"}

	// a broken zone is dropped, the card still renders
	out := renderTestFace(t, face, rec)
	assert.NotEmpty(t, out)
}

func TestRenderCardBadLogoFallsBack(t *testing.T) {
	face := &CardFace{
		Width:  88.9,
		Height: 50.8,
		Zones: []Zone{
			{ID: "logo", Type: ZoneLogo, X: 60, Y: 5, Width: 22, Height: 22},
		},
	}
	rec := &contacts.Record{
		CompanyName: "Acme",
		PersonName:  "Jane",
		Logo:        &contacts.Logo{ID: "bad", Data: []byte("garbage")},
	}

	out := renderTestFace(t, face, rec)
	assert.NotEmpty(t, out)
}

func TestSniffImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 256, 128))))

	imageType, w, h, err := SniffImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "png", imageType)
	assert.Equal(t, 256, w)
	assert.Equal(t, 128, h)

	_, _, _, err = SniffImage([]byte("garbage"))
	assert.Error(t, err)
}
