package sheets

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/naderabdullah/cardforge/layout"

	"github.com/google/uuid"
)

var ErrEmptyStamp = errors.New("empty stamp image")

// GenerateStamped lays cardCount copies of one pre-rendered card image
// onto sheets. This is the capture path: the image is already at exact
// card proportions, so every slot gets the same stamp. The image data
// is embedded once regardless of copy count.
func (a *Assembler) GenerateStamped(stamp []byte, imageType string, cardCount int) ([]byte, *Stats, error) {
	if len(stamp) == 0 {
		return nil, nil, ErrEmptyStamp
	}
	if cardCount < 1 {
		cardCount = 1
	}

	stats := &Stats{JobID: uuid.NewString(), Requested: cardCount}
	log.Printf("[INFO][sheets] job %s: stamping %d cards", stats.JobID, cardCount)

	canvas, err := a.NewCanvas()
	if err != nil {
		return nil, nil, err
	}
	if err := canvas.RegisterImage("stamp", imageType, bytes.NewReader(stamp)); err != nil {
		return nil, nil, fmt.Errorf("job %s: registering stamp: %w", stats.JobID, err)
	}

	remaining := cardCount
	for remaining > 0 {
		onThisSheet := remaining
		if onThisSheet > layout.CardsPerSheet {
			onThisSheet = layout.CardsPerSheet
		}
		canvas.AddPage()
		stats.Pages++

		for _, pos := range a.positions()[:onThisSheet] {
			if !layout.ValidatePosition(pos) {
				log.Printf("[WARN][sheets] job %s: card %d position off-sheet, skipping", stats.JobID, pos.CardNumber)
				stats.Skipped++
				continue
			}
			if err := canvas.Image("stamp", pos.X, pos.Y, layout.CardWidth, layout.CardHeight); err != nil {
				log.Printf("[WARN][sheets] job %s: card %d stamp failed: %v. skipping", stats.JobID, pos.CardNumber, err)
				stats.Skipped++
				continue
			}
			stats.Rendered++
		}
		remaining -= onThisSheet
	}

	if stats.Rendered == 0 {
		return nil, stats, fmt.Errorf("job %s: %w", stats.JobID, ErrNoCardsRendered)
	}
	out, err := canvas.ProduceBytes()
	if err != nil {
		return nil, stats, fmt.Errorf("job %s: %w", stats.JobID, err)
	}
	if len(out) == 0 {
		return nil, stats, fmt.Errorf("job %s: empty document", stats.JobID)
	}
	log.Printf("[INFO][sheets] job %s: %d/%d cards on %d pages", stats.JobID, stats.Rendered, stats.Requested, stats.Pages)
	return out, stats, nil
}
