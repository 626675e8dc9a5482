// Package layout computes the fixed placement of business cards on a
// physical label sheet. All values are millimeters matching the Avery-style
// 2x5 perforated card stock the print shop uses, so these constants must
// stay in sync with ValidatePosition for print registration.
package layout

// Physical geometry (mm)
const (
	CardWidth  = 88.9 // 3.5"
	CardHeight = 50.8 // 2"

	PageWidth  = 215.9 // US Letter 8.5"
	PageHeight = 279.4 // US Letter 11"

	MarginTop  = 12.7
	MarginLeft = 12.7

	// Gap between the two columns and between rows. The row gap is the
	// sheet perforation strip only.
	ColumnGap = 12.7
	RowGap    = 1.6

	Columns       = 2
	Rows          = 5
	CardsPerSheet = Columns * Rows
)

// CardPosition - placement of one card slot on a physical sheet
type CardPosition struct {
	X          float64 `json:"x"` // mm from the left page edge
	Y          float64 `json:"y"` // mm from the top page edge
	CardNumber int     `json:"card_number"`
}

// ColumnAdjust - per-column registration nudge (mm). Positive X moves the
// left column further left and the right column further right. Calibrated
// against print tests; adjusted positions still have to pass
// ValidatePosition or the card slot is skipped.
type ColumnAdjust struct {
	LeftX  float64 `json:"left_x"`
	RightX float64 `json:"right_x"`
}

// ComputeSheetPositions returns the 10 card slots of one sheet in row-major
// order: row 0 -> cards 1-2, row 1 -> cards 3-4, ... Always returns exactly
// CardsPerSheet positions. The geometry is a pure function of the constants
// above, so positions are recomputed per job, never cached.
func ComputeSheetPositions() []CardPosition {
	positions := make([]CardPosition, 0, CardsPerSheet)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			positions = append(positions, CardPosition{
				X:          MarginLeft + float64(col)*(CardWidth+ColumnGap),
				Y:          MarginTop + float64(row)*(CardHeight+RowGap),
				CardNumber: row*Columns + col + 1,
			})
		}
	}
	return positions
}

// ComputeAdjustedSheetPositions applies a per-column registration nudge on
// top of ComputeSheetPositions. Callers must still run every returned
// position through ValidatePosition before placing a card.
func ComputeAdjustedSheetPositions(adj ColumnAdjust) []CardPosition {
	positions := ComputeSheetPositions()
	for i := range positions {
		if (positions[i].CardNumber-1)%Columns == 0 {
			positions[i].X -= adj.LeftX
		} else {
			positions[i].X += adj.RightX
		}
	}
	return positions
}

// ValidatePosition - the single source of truth for "is this placement
// physically printable". Every placement, including externally adjusted
// ones, goes through this check. Positions failing it are rejected, never
// silently clamped.
func ValidatePosition(pos CardPosition) bool {
	if pos.X < 0 || pos.Y < 0 {
		return false
	}
	if pos.X+CardWidth > PageWidth {
		return false
	}
	if pos.Y+CardHeight > PageHeight {
		return false
	}
	return true
}
