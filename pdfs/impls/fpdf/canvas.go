// Package fpdf implements pdfs.Canvas on top of github.com/go-pdf/fpdf.
package fpdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/naderabdullah/cardforge/pdfs"
	"github.com/naderabdullah/cardforge/rw"

	lowimpl "github.com/go-pdf/fpdf"
)

type Canvas struct {
	paper       pdfs.PaperSize
	orientation string

	// implementation details, not exported
	internal *lowimpl.Fpdf
	images   *pdfs.TemplateStore[*lowimpl.ImageInfoType]
}

// Ensure fpdf.Canvas implements pdfs.Canvas interface
var _ pdfs.Canvas = (*Canvas)(nil)

// NewCanvas builds an empty portrait canvas with no pages yet.
// Margins and auto page breaks are disabled: card production places
// everything at absolute sheet coordinates.
func NewCanvas(paper pdfs.PaperSize) *Canvas {
	internal := lowimpl.NewCustom(&lowimpl.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           lowimpl.SizeType{Wd: paper.Width, Ht: paper.Height},
	})
	internal.SetMargins(0, 0, 0)
	internal.SetAutoPageBreak(false, 0)
	return &Canvas{
		paper:       paper,
		orientation: "P",
		internal:    internal,
		images:      pdfs.NewTemplateStore[*lowimpl.ImageInfoType](),
	}
}

// RegisterFontDir loads every .ttf in dir as a UTF-8 font. The family
// name is the file name without extension, so designs reference fonts
// the same way they are shipped.
func (c *Canvas) RegisterFontDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".ttf" {
			continue
		}
		family := strings.TrimSuffix(name, ".ttf")
		c.internal.AddUTF8Font(family, "", filepath.Join(dir, name))
		if err := c.internal.Error(); err != nil {
			return fmt.Errorf("font %q: %w", name, err)
		}
	}
	return nil
}

func (c *Canvas) PaperSize() pdfs.PaperSize { return c.paper }
func (c *Canvas) Orientation() string       { return c.orientation }

func (c *Canvas) AddPage()       { c.internal.AddPage() }
func (c *Canvas) PageCount() int { return c.internal.PageCount() }

func (c *Canvas) SetFont(family string, style string, size float64) {
	c.internal.SetFont(family, style, size)
}

func (c *Canvas) FontHeight() float64 {
	_, unitSize := c.internal.GetFontSize()
	return unitSize
}

func (c *Canvas) StringWidth(text string) float64 {
	return c.internal.GetStringWidth(text)
}

func (c *Canvas) SetTextColor(r, g, b int)     { c.internal.SetTextColor(r, g, b) }
func (c *Canvas) SetDrawColor(r, g, b int)     { c.internal.SetDrawColor(r, g, b) }
func (c *Canvas) SetFillColor(r, g, b int)     { c.internal.SetFillColor(r, g, b) }
func (c *Canvas) SetLineWidth(width float64)   { c.internal.SetLineWidth(width) }
func (c *Canvas) Text(x, y float64, t string)  { c.internal.Text(x, y, t) }
func (c *Canvas) Rect(x, y, w, h float64, s string) {
	c.internal.Rect(x, y, w, h, s)
}
func (c *Canvas) Line(x1, y1, x2, y2 float64) { c.internal.Line(x1, y1, x2, y2) }

func (c *Canvas) ClipRect(x, y, w, h float64) { c.internal.ClipRect(x, y, w, h, false) }
func (c *Canvas) ClipEnd()                    { c.internal.ClipEnd() }

func (c *Canvas) RegisterImage(name string, imageType string, r io.Reader) error {
	if _, exists := c.images.Get(name); exists {
		return nil // already embedded, reuse
	}
	info := c.internal.RegisterImageOptionsReader(name, lowimpl.ImageOptions{ImageType: imageType}, r)
	if err := c.internal.Error(); err != nil {
		return fmt.Errorf("register image %q: %w", name, err)
	}
	c.images.Store(name, info)
	return nil
}

func (c *Canvas) ImageSize(name string) (float64, float64, bool) {
	info, ok := c.images.Get(name)
	if !ok || info == nil {
		return 0, 0, false
	}
	return info.Width(), info.Height(), true
}

func (c *Canvas) Image(name string, x, y, w, h float64) error {
	if _, ok := c.images.Get(name); !ok {
		return fmt.Errorf("image %q not registered", name)
	}
	c.internal.ImageOptions(name, x, y, w, h, false, lowimpl.ImageOptions{}, 0, "")
	return c.internal.Error()
}

func (c *Canvas) Err() error { return c.internal.Error() }

func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	cw := rw.NewCountWriter(w)
	if err := c.internal.Output(cw); err != nil {
		return cw.BytesWritten(), err
	}
	return cw.BytesWritten(), nil
}

func (c *Canvas) WriteToFile(filepath string) (err error) {
	f, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	_, err = c.WriteTo(f)
	return err
}

func (c *Canvas) ProduceBytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
