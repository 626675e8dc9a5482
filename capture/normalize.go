package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/naderabdullah/cardforge/layout"

	"github.com/nfnt/resize"
)

// printDPI is the raster density the print shop expects.
const printDPI = 300

const mmPerInch = 25.4

// pixels converts a millimeter length to pixels at print density,
// rounded to the nearest whole pixel.
func pixels(mm float64) int {
	return int(mm/mmPerInch*printDPI + 0.5)
}

// CardPixelWidth and CardPixelHeight are the exact raster dimensions
// of one card at print density.
var (
	CardPixelWidth  = pixels(layout.CardWidth)
	CardPixelHeight = pixels(layout.CardHeight)
)

// NormalizeToCard fits a captured screenshot into the exact card pixel
// dimensions: scaled preserving aspect ratio, centered on white. The
// result is always a PNG of CardPixelWidth x CardPixelHeight.
func NormalizeToCard(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding capture: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("capture has zero size")
	}

	scaleW := float64(CardPixelWidth) / float64(bounds.Dx())
	scaleH := float64(CardPixelHeight) / float64(bounds.Dy())
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	fitW := uint(float64(bounds.Dx())*scale + 0.5)
	fitH := uint(float64(bounds.Dy())*scale + 0.5)
	fitted := resize.Resize(fitW, fitH, src, resize.Lanczos3)

	out := image.NewRGBA(image.Rect(0, 0, CardPixelWidth, CardPixelHeight))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	offset := image.Pt(
		(CardPixelWidth-fitted.Bounds().Dx())/2,
		(CardPixelHeight-fitted.Bounds().Dy())/2,
	)
	draw.Draw(out, fitted.Bounds().Add(offset), fitted, image.Point{}, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encoding card raster: %w", err)
	}
	return buf.Bytes(), nil
}
