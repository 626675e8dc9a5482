package sheets

import (
	"errors"
	"fmt"
	"log"

	"github.com/naderabdullah/cardforge/catalog"
	"github.com/naderabdullah/cardforge/contacts"
	"github.com/naderabdullah/cardforge/layout"
	"github.com/naderabdullah/cardforge/pdfs"
	"github.com/naderabdullah/cardforge/zones"

	"github.com/google/uuid"
)

var (
	ErrNilDesign          = errors.New("nil design")
	ErrNilRecord          = errors.New("nil contact record")
	ErrNoCardsRendered    = errors.New("no cards rendered")
	ErrMarkupNeedsCapture = errors.New("markup design has no zone faces, use the capture path")
)

// Stats reports what one assembly job actually produced.
type Stats struct {
	JobID     string `json:"job_id"`
	Requested int    `json:"requested"`
	Rendered  int    `json:"rendered"`
	Skipped   int    `json:"skipped"`
	Pages     int    `json:"pages"`
}

// Assembler places rendered cards on letter sheets. The canvas factory
// is injected; the canvas an assembly job creates is mutated only by
// that job, one card at a time.
type Assembler struct {
	NewCanvas func() (pdfs.Canvas, error)
	// Adjust nudges columns to correct print-registration offset.
	// Adjusted positions still have to validate.
	Adjust *layout.ColumnAdjust
}

func NewAssembler(newCanvas func() (pdfs.Canvas, error)) *Assembler {
	return &Assembler{NewCanvas: newCanvas}
}

// GenerateDocument lays cardCount copies of the design onto as many
// sheets as needed, ten per sheet. A card that fails validation or
// rendering is skipped with a warning; the job fails only when the
// design or record is unusable or nothing rendered at all.
func (a *Assembler) GenerateDocument(design *catalog.Design, rec *contacts.Record, cardCount int) ([]byte, *Stats, error) {
	if design == nil {
		return nil, nil, ErrNilDesign
	}
	if rec == nil {
		return nil, nil, ErrNilRecord
	}
	if design.Front == nil {
		if design.HasMarkup() {
			return nil, nil, fmt.Errorf("design %q: %w", design.ID, ErrMarkupNeedsCapture)
		}
		return nil, nil, fmt.Errorf("design %q: %w", design.ID, ErrNilDesign)
	}
	if cardCount < 1 {
		cardCount = 1
	}

	stats := &Stats{JobID: uuid.NewString(), Requested: cardCount}
	log.Printf("[INFO][sheets] job %s: design %q, %d cards", stats.JobID, design.ID, cardCount)

	canvas, err := a.NewCanvas()
	if err != nil {
		return nil, nil, err
	}

	a.renderFacePages(canvas, design.Front, rec, cardCount, stats, false)
	if design.Back != nil {
		a.renderFacePages(canvas, design.Back, rec, cardCount, stats, true)
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
	log.Printf("[INFO][sheets] job %s: %d/%d cards on %d pages, %d bytes",
		stats.JobID, stats.Rendered, stats.Requested, stats.Pages, len(out))
	return out, stats, nil
}

// GenerateSingleSheet is the one-page entry point. cardCount is
// clamped into [1, 10]: this path always emits exactly one sheet, so
// requests outside the sheet's capacity are coerced rather than
// rejected.
func (a *Assembler) GenerateSingleSheet(design *catalog.Design, rec *contacts.Record, cardCount int) ([]byte, *Stats, error) {
	if cardCount < 1 {
		cardCount = 1
	}
	if cardCount > layout.CardsPerSheet {
		cardCount = layout.CardsPerSheet
	}
	return a.GenerateDocument(design, rec, cardCount)
}

// renderFacePages emits the pages of one card face. Back faces are
// mirrored across the vertical page axis so duplex printing lines the
// two faces up.
func (a *Assembler) renderFacePages(canvas pdfs.Canvas, face *zones.CardFace, rec *contacts.Record, cardCount int, stats *Stats, mirror bool) {
	remaining := cardCount
	for remaining > 0 {
		onThisSheet := remaining
		if onThisSheet > layout.CardsPerSheet {
			onThisSheet = layout.CardsPerSheet
		}
		canvas.AddPage()
		stats.Pages++

		positions := a.positions()
		for i := 0; i < onThisSheet; i++ {
			pos := positions[i]
			if mirror {
				pos.X = layout.PageWidth - layout.CardWidth - pos.X
			}
			if !layout.ValidatePosition(pos) {
				log.Printf("[WARN][sheets] job %s: card %d position off-sheet (%.1f, %.1f), skipping",
					stats.JobID, pos.CardNumber, pos.X, pos.Y)
				if !mirror {
					stats.Skipped++
				}
				continue
			}
			if a.renderOneCard(canvas, face, rec, pos, stats.JobID) {
				if !mirror {
					stats.Rendered++
				}
			} else if !mirror {
				stats.Skipped++
			}
		}
		remaining -= onThisSheet
	}
}

// renderOneCard isolates a single card render. A panicking template is
// fatal to its card only.
func (a *Assembler) renderOneCard(canvas pdfs.Canvas, face *zones.CardFace, rec *contacts.Record, pos layout.CardPosition, jobID string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN][sheets] job %s: card %d render panicked: %v. skipping", jobID, pos.CardNumber, r)
			ok = false
		}
	}()
	if err := zones.RenderCard(canvas, face, rec, pos.X, pos.Y); err != nil {
		log.Printf("[WARN][sheets] job %s: card %d render failed: %v. skipping", jobID, pos.CardNumber, err)
		return false
	}
	return true
}

func (a *Assembler) positions() []layout.CardPosition {
	if a.Adjust != nil {
		return layout.ComputeAdjustedSheetPositions(*a.Adjust)
	}
	return layout.ComputeSheetPositions()
}
