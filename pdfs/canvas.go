package pdfs

import "io"

// Canvas - buffered multi-page drawing surface for card production.
// All coordinates are mm from the top-left page corner. A Canvas is the
// one shared mutable object of a print job and is NOT safe for concurrent
// use: only the single active render call may draw on it at a time.
type Canvas interface {
	PaperSize() PaperSize
	Orientation() string

	AddPage()
	PageCount() int

	SetFont(family string, style string, size float64)
	FontHeight() float64 // current font height in mm
	StringWidth(text string) float64

	SetTextColor(r, g, b int)
	SetDrawColor(r, g, b int)
	SetFillColor(r, g, b int)
	SetLineWidth(width float64)

	Text(x float64, y float64, text string) // y = baseline
	Rect(x, y, w, h float64, style string)  // style: "D" draw, "F" fill, "FD" both
	Line(x1, y1, x2, y2 float64)

	// ClipRect starts a rectangular clipping region; drawing outside it is
	// discarded until ClipEnd. Regions must not be nested.
	ClipRect(x, y, w, h float64)
	ClipEnd()

	// RegisterImage decodes and registers a raster once under a name.
	// imageType: "png", "jpg", "jpeg" or "gif".
	RegisterImage(name string, imageType string, r io.Reader) error
	// ImageSize returns the intrinsic size of a registered image scaled to mm.
	ImageSize(name string) (w float64, h float64, ok bool)
	// Image places a registered raster. Placing the same name repeatedly
	// embeds the pixel data only once.
	Image(name string, x, y, w, h float64) error

	// Err reports the surface's sticky drawing error, if any.
	Err() error

	WriteTo(w io.Writer) (int64, error)
	WriteToFile(filepath string) error
	ProduceBytes() ([]byte, error)
}
