package layout

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestComputeSheetPositions(t *testing.T) {
	positions := ComputeSheetPositions()
	if len(positions) != CardsPerSheet {
		t.Fatalf("got %d positions, want %d", len(positions), CardsPerSheet)
	}

	// Row-major numbering: 1..10
	for i, pos := range positions {
		if pos.CardNumber != i+1 {
			t.Errorf("position %d has card number %d, want %d", i, pos.CardNumber, i+1)
		}
	}

	// First card sits at the page margins
	if math.Abs(positions[0].X-MarginLeft) > eps || math.Abs(positions[0].Y-MarginTop) > eps {
		t.Errorf("card 1 at (%v, %v), want (%v, %v)", positions[0].X, positions[0].Y, MarginLeft, MarginTop)
	}

	// Second column is one card width plus the column gap over
	wantX := MarginLeft + CardWidth + ColumnGap
	if math.Abs(positions[1].X-wantX) > eps {
		t.Errorf("card 2 X = %v, want %v", positions[1].X, wantX)
	}

	// Last row
	wantY := MarginTop + 4*(CardHeight+RowGap)
	if math.Abs(positions[9].Y-wantY) > eps {
		t.Errorf("card 10 Y = %v, want %v", positions[9].Y, wantY)
	}
}

func TestAllStandardPositionsPrintable(t *testing.T) {
	for _, pos := range ComputeSheetPositions() {
		if !ValidatePosition(pos) {
			t.Errorf("standard card %d at (%v, %v) failed validation", pos.CardNumber, pos.X, pos.Y)
		}
	}
}

func TestValidatePosition(t *testing.T) {
	tests := []struct {
		name string
		pos  CardPosition
		want bool
	}{
		{name: "origin", pos: CardPosition{X: 0, Y: 0}, want: true},
		{name: "negative X", pos: CardPosition{X: -0.1, Y: 10}, want: false},
		{name: "negative Y", pos: CardPosition{X: 10, Y: -0.1}, want: false},
		{name: "right edge exact fit", pos: CardPosition{X: PageWidth - CardWidth, Y: 0}, want: true},
		{name: "overflows right edge", pos: CardPosition{X: PageWidth - CardWidth + 0.1, Y: 0}, want: false},
		{name: "bottom edge exact fit", pos: CardPosition{X: 0, Y: PageHeight - CardHeight}, want: true},
		{name: "overflows bottom edge", pos: CardPosition{X: 0, Y: PageHeight - CardHeight + 0.1}, want: false},
		{name: "far off sheet", pos: CardPosition{X: 500, Y: 500}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidatePosition(tc.pos); got != tc.want {
				t.Errorf("ValidatePosition(%+v) = %v, want %v", tc.pos, got, tc.want)
			}
		})
	}
}

func TestComputeAdjustedSheetPositions(t *testing.T) {
	adj := ColumnAdjust{LeftX: 0.5, RightX: 0.3}
	base := ComputeSheetPositions()
	adjusted := ComputeAdjustedSheetPositions(adj)

	for i := range adjusted {
		var wantX float64
		if (adjusted[i].CardNumber-1)%Columns == 0 {
			wantX = base[i].X - adj.LeftX
		} else {
			wantX = base[i].X + adj.RightX
		}
		if math.Abs(adjusted[i].X-wantX) > eps {
			t.Errorf("card %d adjusted X = %v, want %v", adjusted[i].CardNumber, adjusted[i].X, wantX)
		}
		if adjusted[i].Y != base[i].Y {
			t.Errorf("card %d Y changed by column adjust", adjusted[i].CardNumber)
		}
	}
}

func TestAdjustedPositionCanFailValidation(t *testing.T) {
	// A huge nudge pushes the left column off the page. The positions are
	// still returned; rejection is the validator's job.
	adjusted := ComputeAdjustedSheetPositions(ColumnAdjust{LeftX: 50})
	if ValidatePosition(adjusted[0]) {
		t.Errorf("card 1 at X=%v should fail validation", adjusted[0].X)
	}
	// Right column untouched
	if !ValidatePosition(adjusted[1]) {
		t.Errorf("card 2 at X=%v should stay valid", adjusted[1].X)
	}
}

func TestBackFaceMirrorSymmetry(t *testing.T) {
	// Mirrored slots must stay printable: x' = PageWidth - CardWidth - x
	for _, pos := range ComputeSheetPositions() {
		mirrored := pos
		mirrored.X = PageWidth - CardWidth - pos.X
		if !ValidatePosition(mirrored) {
			t.Errorf("mirrored card %d at (%v, %v) failed validation", pos.CardNumber, mirrored.X, mirrored.Y)
		}
	}
	// Columns swap under mirroring
	positions := ComputeSheetPositions()
	left, right := positions[0], positions[1]
	if math.Abs((PageWidth-CardWidth-left.X)-right.X) > eps {
		t.Errorf("mirrored left column X = %v, want right column X = %v", PageWidth-CardWidth-left.X, right.X)
	}
}
