package pdfs

// PaperSize in mm. The drawing surface and the sheet layout both work in
// millimeters so print-registration constants carry over unconverted.
type PaperSize struct {
	Name   string
	Width  float64 // in mm
	Height float64 // in mm
}

var (
	LetterSize = PaperSize{Name: "Letter", Width: 215.9, Height: 279.4} // 8.5" x 11"
	A4Size     = PaperSize{Name: "A4", Width: 210, Height: 297}
)
