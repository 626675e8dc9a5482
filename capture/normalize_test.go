package capture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, fill color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestCardPixelDimensions(t *testing.T) {
	// 88.9mm x 50.8mm at 300dpi
	assert.Equal(t, 1050, CardPixelWidth)
	assert.Equal(t, 600, CardPixelHeight)
}

func TestNormalizeToCardExactAspect(t *testing.T) {
	// capture at 2x card aspect scales cleanly with no letterbox
	in := encodePNG(t, 2100, 1200, color.RGBA{R: 200, A: 255})

	out, err := NormalizeToCard(in)
	require.NoError(t, err)

	img := decodePNG(t, out)
	assert.Equal(t, CardPixelWidth, img.Bounds().Dx())
	assert.Equal(t, CardPixelHeight, img.Bounds().Dy())
}

func TestNormalizeToCardLetterboxesTallCapture(t *testing.T) {
	// much taller than a card: white bars appear left and right
	in := encodePNG(t, 300, 600, color.RGBA{B: 200, A: 255})

	out, err := NormalizeToCard(in)
	require.NoError(t, err)

	img := decodePNG(t, out)
	assert.Equal(t, CardPixelWidth, img.Bounds().Dx())
	assert.Equal(t, CardPixelHeight, img.Bounds().Dy())

	// left edge should be the white backing, center the source color
	r, g, b, _ := img.At(2, CardPixelHeight/2).RGBA()
	assert.True(t, r > 0xF000 && g > 0xF000 && b > 0xF000, "expected white letterbox at the edge")

	_, _, b, _ = img.At(CardPixelWidth/2, CardPixelHeight/2).RGBA()
	assert.True(t, b > 0x9000, "expected source pixels in the center")
}

func TestNormalizeToCardBadInput(t *testing.T) {
	_, err := NormalizeToCard([]byte("not an image"))
	assert.Error(t, err)

	_, err = NormalizeToCard(nil)
	assert.Error(t, err)
}

func TestConfDefaults(t *testing.T) {
	c := &Conf{}
	assert.Equal(t, float64(2), c.scaleFactor())
	assert.Equal(t, 15*time.Second, c.navTimeout())
	assert.Equal(t, 150*time.Millisecond, c.settleDelay())
	w, h := c.viewport()
	assert.Equal(t, 1280, w)
	assert.Equal(t, 900, h)

	c = &Conf{NavTimeoutSec: 30, ScaleFactor: 3, ViewportWidth: 800, ViewportHeight: 600}
	assert.Equal(t, float64(3), c.scaleFactor())
	assert.Equal(t, 30*time.Second, c.navTimeout())
	w, h = c.viewport()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}
