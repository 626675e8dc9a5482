package zones

import (
	"bytes"
	"image"
	"log"

	// raster decoders for logo validation
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/naderabdullah/cardforge/contacts"
	"github.com/naderabdullah/cardforge/pdfs"
)

// drawLogoZone places the contact's logo raster at 90% of the zone box,
// centered, preserving its aspect ratio. Missing or undecodable image
// data degrades to a labeled placeholder box - a card-level recoverable
// condition, never an abort.
func drawLogoZone(canvas pdfs.Canvas, z *Zone, rec *contacts.Record, x, y float64) {
	logo := rec.Logo
	if logo == nil || len(logo.Data) == 0 {
		drawLogoPlaceholder(canvas, z, x, y)
		return
	}
	imageType, pxW, pxH, err := SniffImage(logo.Data)
	if err != nil {
		log.Printf("[WARN][zones] logo %q undecodable: %v. drawing placeholder", logo.ID, err)
		drawLogoPlaceholder(canvas, z, x, y)
		return
	}

	name := "logo-" + logo.ID
	if err := canvas.RegisterImage(name, imageType, bytes.NewReader(logo.Data)); err != nil {
		log.Printf("[WARN][zones] logo %q rejected by canvas: %v. drawing placeholder", logo.ID, err)
		drawLogoPlaceholder(canvas, z, x, y)
		return
	}

	// fit into 90% of the zone box, centered, aspect preserved
	boxW := z.Width * logoFillRatio
	boxH := z.Height * logoFillRatio
	drawW, drawH := fitBox(float64(pxW), float64(pxH), boxW, boxH)
	drawX := x + (z.Width-drawW)/2
	drawY := y + (z.Height-drawH)/2
	if err := canvas.Image(name, drawX, drawY, drawW, drawH); err != nil {
		log.Printf("[WARN][zones] placing logo %q failed: %v", logo.ID, err)
	}
}

// drawLogoPlaceholder draws the fallback box with a centered LOGO label.
func drawLogoPlaceholder(canvas pdfs.Canvas, z *Zone, x, y float64) {
	canvas.SetDrawColor(160, 160, 160)
	canvas.SetFillColor(235, 235, 235)
	canvas.SetLineWidth(0.2)
	canvas.Rect(x, y, z.Width, z.Height, "FD")

	canvas.SetFont(defaultFontFamily, "", defaultFontSize)
	canvas.SetTextColor(120, 120, 120)
	const label = "LOGO"
	tx := x + (z.Width-canvas.StringWidth(label))/2
	ty := y + z.Height/2 + canvas.FontHeight()/2
	canvas.Text(tx, ty, label)
}

// fitBox scales (w, h) down (or up) to the largest size fitting inside
// (maxW, maxH) while preserving aspect ratio.
func fitBox(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scale := maxW / w
	if s := maxH / h; s < scale {
		scale = s
	}
	return w * scale, h * scale
}

// SniffImage validates raster bytes and reports the decoder format plus
// pixel dimensions without decoding the full image.
func SniffImage(data []byte) (imageType string, w, h int, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", 0, 0, err
	}
	if format == "jpeg" {
		format = "jpg"
	}
	return format, cfg.Width, cfg.Height, nil
}
