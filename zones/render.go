package zones

import (
	"log"
	"strings"

	"github.com/naderabdullah/cardforge/contacts"
	"github.com/naderabdullah/cardforge/inject"
	"github.com/naderabdullah/cardforge/pdfs"
)

// Renderer defaults
const (
	defaultFontFamily = "Helvetica"
	defaultFontSize   = 8.0 // pt
	defaultLineHeight = 1.2
	minScaledFontSize = 4.0 // pt, floor for the "scale" overflow policy

	logoFillRatio = 0.9 // logo occupies 90% of its zone box, centered
)

// RenderCard draws a complete card at (originX, originY) on the shared
// canvas: background and border first, then every zone in declaration
// order. Zone-level problems (bad logo bytes, unknown include kind) are
// logged and degrade to placeholders; only a sticky canvas error is
// returned, as that poisons the whole document.
//
// The canvas is shared mutable state of the whole print job - callers
// must not invoke RenderCard concurrently on the same canvas.
func RenderCard(canvas pdfs.Canvas, face *CardFace, rec *contacts.Record, originX, originY float64) error {
	// background + border
	if face.Background != "" {
		canvas.SetFillColor(parseHexColor(face.Background))
		canvas.Rect(originX, originY, face.Width, face.Height, "F")
	}
	if face.Border != "" {
		canvas.SetDrawColor(parseHexColor(face.Border))
		canvas.SetLineWidth(0.2)
		canvas.Rect(originX, originY, face.Width, face.Height, "D")
	}

	for i := range face.Zones {
		z := &face.Zones[i]
		if err := z.Validate(); err != nil {
			log.Printf("[WARN][zones] skipping zone: %v", err)
			continue
		}
		drawZone(canvas, z, rec, originX+z.X, originY+z.Y)
	}
	return canvas.Err()
}

func drawZone(canvas pdfs.Canvas, z *Zone, rec *contacts.Record, x, y float64) {
	switch z.Type {
	case ZoneLogo:
		drawLogoZone(canvas, z, rec, x, y)
	case ZoneCompanyName:
		drawTextZone(canvas, z, rec.CompanyName, x, y)
	case ZonePersonalInfo:
		drawPersonalInfoZone(canvas, z, rec, x, y)
	case ZoneCustomText:
		drawTextZone(canvas, z, z.Text, x, y)
	case ZoneContactBlock:
		drawContactBlock(canvas, z, rec, x, y)
	}
}

// applyStyle sets font and text color for a zone and returns the line
// advance in mm.
func applyStyle(canvas pdfs.Canvas, s Style) float64 {
	family := s.FontFamily
	if family == "" {
		family = defaultFontFamily
	}
	size := s.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	style := ""
	if s.Bold {
		style = "B"
	}
	canvas.SetFont(family, style, size)
	if s.Color != "" {
		canvas.SetTextColor(parseHexColor(s.Color))
	} else {
		canvas.SetTextColor(0, 0, 0)
	}
	lh := s.LineHeight
	if lh <= 0 {
		lh = defaultLineHeight
	}
	return canvas.FontHeight() * lh
}

// drawTextZone draws a single field clipped to the zone width.
func drawTextZone(canvas pdfs.Canvas, z *Zone, text string, x, y float64) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	lineH := applyStyle(canvas, z.Style)
	canvas.ClipRect(x, y, z.Width, z.Height)
	canvas.Text(alignedX(canvas, z, text, x), y+lineH, text)
	canvas.ClipEnd()
}

// drawPersonalInfoZone stacks the person name over the title.
func drawPersonalInfoZone(canvas pdfs.Canvas, z *Zone, rec *contacts.Record, x, y float64) {
	nameStyle := z.Style
	nameStyle.Bold = true
	lineH := applyStyle(canvas, nameStyle)

	canvas.ClipRect(x, y, z.Width, z.Height)
	baseline := y + lineH
	if name := strings.TrimSpace(rec.PersonName); name != "" {
		canvas.Text(alignedX(canvas, z, name, x), baseline, name)
		baseline += lineH
	}
	if title := strings.TrimSpace(rec.Title); title != "" && baseline <= y+z.Height {
		applyStyle(canvas, z.Style)
		canvas.Text(alignedX(canvas, z, title, x), baseline, title)
	}
	canvas.ClipEnd()
}

// drawContactBlock composes the included contact kinds into successive
// lines: phones, then emails, then websites - always in that field order
// regardless of the include order. Lines beyond the declared max-line
// count or the zone height are simply not drawn.
func drawContactBlock(canvas pdfs.Canvas, z *Zone, rec *contacts.Record, x, y float64) {
	lines := contactBlockLines(z, rec)
	if len(lines) == 0 {
		return
	}
	if z.MaxLines > 0 && len(lines) > z.MaxLines {
		lines = lines[:z.MaxLines]
	}

	style := z.Style
	lineH := applyStyle(canvas, style)

	switch z.Overflow {
	case OverflowScale:
		// shrink until every line fits the height and width
		size := style.FontSize
		if size <= 0 {
			size = defaultFontSize
		}
		for size > minScaledFontSize {
			if float64(len(lines))*lineH <= z.Height && widestLine(canvas, lines) <= z.Width {
				break
			}
			size -= 0.5
			style.FontSize = size
			lineH = applyStyle(canvas, style)
		}
	case OverflowWrap:
		lines = wrapLines(canvas, lines, z.Width)
	}

	canvas.ClipRect(x, y, z.Width, z.Height)
	baseline := y + lineH
	for _, line := range lines {
		if baseline > y+z.Height {
			break // out of vertical room, not an error
		}
		canvas.Text(alignedX(canvas, z, line, x), baseline, line)
		baseline += lineH
	}
	canvas.ClipEnd()
}

// contactBlockLines builds the text lines of a contact block. Each line
// is the entry value prefixed by its label joined with the zone
// separator (default ": ").
func contactBlockLines(z *Zone, rec *contacts.Record) []string {
	sep := z.Separator
	if sep == "" {
		sep = ": "
	}
	include := z.Include
	if len(include) == 0 {
		include = []string{"phones", "emails", "websites"}
	}
	included := func(kind string) bool {
		for _, k := range include {
			if strings.EqualFold(k, kind) {
				return true
			}
		}
		return false
	}

	var lines []string
	appendEntries := func(entries []contacts.Entry, phone bool) {
		for _, e := range contacts.NonBlank(entries) {
			value := e.Value
			if phone {
				value = inject.FormatPhoneNumber(value)
			}
			if e.Label != "" {
				lines = append(lines, e.Label+sep+value)
			} else {
				lines = append(lines, value)
			}
		}
	}
	// fixed field order: phones, emails, websites
	if included("phones") {
		appendEntries(rec.Phones, true)
	}
	if included("emails") {
		appendEntries(rec.Emails, false)
	}
	if included("websites") {
		appendEntries(rec.Websites, false)
	}
	for _, k := range include {
		switch strings.ToLower(k) {
		case "phones", "emails", "websites":
		default:
			log.Printf("[WARN][zones] contact block %q: unknown include kind %q ignored", z.ID, k)
		}
	}
	return lines
}

func widestLine(canvas pdfs.Canvas, lines []string) float64 {
	max := 0.0
	for _, l := range lines {
		if w := canvas.StringWidth(l); w > max {
			max = w
		}
	}
	return max
}

// wrapLines splits lines wider than the zone on word boundaries. Words
// longer than the zone width stay on their own overlong line and get
// clipped by the zone rectangle instead.
func wrapLines(canvas pdfs.Canvas, lines []string, width float64) []string {
	var out []string
	for _, line := range lines {
		if canvas.StringWidth(line) <= width {
			out = append(out, line)
			continue
		}
		words := strings.Fields(line)
		current := ""
		for _, w := range words {
			candidate := w
			if current != "" {
				candidate = current + " " + w
			}
			if canvas.StringWidth(candidate) <= width || current == "" {
				current = candidate
				continue
			}
			out = append(out, current)
			current = w
		}
		if current != "" {
			out = append(out, current)
		}
	}
	return out
}

func alignedX(canvas pdfs.Canvas, z *Zone, text string, x float64) float64 {
	switch strings.ToUpper(z.Align) {
	case "C":
		return x + (z.Width-canvas.StringWidth(text))/2
	case "R":
		return x + z.Width - canvas.StringWidth(text)
	default:
		return x
	}
}
