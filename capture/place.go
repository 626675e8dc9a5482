package capture

import (
	"context"
	"fmt"
	"log"

	"github.com/naderabdullah/cardforge/sheets"
)

// CaptureAndPlace screenshots the card preview once, normalizes it to
// print dimensions and stamps it cardCount times through the
// assembler. One capture serves every slot.
func (c *Capturer) CaptureAndPlace(ctx context.Context, asm *sheets.Assembler, previewURL string, selector string, cardCount int) ([]byte, *sheets.Stats, error) {
	shot, err := c.CaptureCard(ctx, previewURL, selector)
	if err != nil {
		return nil, nil, fmt.Errorf("capture: %w", err)
	}
	card, err := NormalizeToCard(shot)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize: %w", err)
	}
	log.Printf("[INFO][capture] card raster ready, %d bytes at %dx%d", len(card), CardPixelWidth, CardPixelHeight)
	return asm.GenerateStamped(card, "png", cardCount)
}
