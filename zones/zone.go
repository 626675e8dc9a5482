// Package zones renders declarative card templates: an ordered list of
// typed rectangular regions drawn directly onto a page canvas. It is the
// structured-data alternative to markup injection; a design carries either
// markup or a zone list, never both.
package zones

import (
	"fmt"
	"strconv"
	"strings"
)

type ZoneType string

const (
	ZoneLogo         ZoneType = "logo"
	ZoneCompanyName  ZoneType = "company-name"
	ZonePersonalInfo ZoneType = "personal-info"
	ZoneContactBlock ZoneType = "contact-block"
	ZoneCustomText   ZoneType = "custom-text"
)

// Overflow policy of a contact-block zone
const (
	OverflowWrap     = "wrap"     // wrap long lines to the zone width
	OverflowTruncate = "truncate" // drop what does not fit
	OverflowScale    = "scale"    // shrink the font until everything fits
)

// Style - text styling of a zone. Zero values fall back to the renderer
// defaults (Helvetica, 8pt, black, 1.2 line height).
type Style struct {
	FontFamily string  `toml:"font_family" json:"font_family,omitzero"`
	FontSize   float64 `toml:"font_size" json:"font_size,omitzero"` // pt
	Bold       bool    `toml:"bold" json:"bold,omitzero"`
	Color      string  `toml:"color" json:"color,omitzero"`             // "#RRGGBB"
	LineHeight float64 `toml:"line_height" json:"line_height,omitzero"` // multiplier
}

// Zone - one rectangular region of a declarative template. Position and
// size are mm relative to the card origin. Zones draw in declaration
// order; later zones draw over earlier ones at the same coordinates,
// template authors rely on this for layered effects.
type Zone struct {
	ID     string   `toml:"id" json:"id"`
	Type   ZoneType `toml:"type" json:"type"`
	X      float64  `toml:"x" json:"x"`
	Y      float64  `toml:"y" json:"y"`
	Width  float64  `toml:"width" json:"width"`
	Height float64  `toml:"height" json:"height"`
	Align  string   `toml:"align" json:"align,omitzero"` // "L" (default), "C", "R"
	Style  Style    `toml:"style" json:"style,omitzero"`

	// custom-text zones
	Text string `toml:"text" json:"text,omitzero"`

	// contact-block zones
	Include   []string `toml:"include" json:"include,omitzero"` // of: phones, emails, websites
	Separator string   `toml:"separator" json:"separator,omitzero"`
	MaxLines  int      `toml:"max_lines" json:"max_lines,omitzero"`
	Overflow  string   `toml:"overflow" json:"overflow,omitzero"`
}

// CardFace - everything the renderer needs to draw one card: physical
// size, background/border styling and the zone list.
type CardFace struct {
	Width      float64 `toml:"width" json:"width"`   // mm
	Height     float64 `toml:"height" json:"height"` // mm
	Background string  `toml:"background" json:"background,omitzero"` // "#RRGGBB", "" = white
	Border     string  `toml:"border" json:"border,omitzero"`         // "" = no border
	Zones      []Zone  `toml:"zone" json:"zones"`
}

// Validate rejects zones the renderer cannot place.
func (z *Zone) Validate() error {
	switch z.Type {
	case ZoneLogo, ZoneCompanyName, ZonePersonalInfo, ZoneContactBlock, ZoneCustomText:
	default:
		return fmt.Errorf("zone %q: unknown type %q", z.ID, z.Type)
	}
	if z.Width <= 0 || z.Height <= 0 {
		return fmt.Errorf("zone %q: non-positive size %gx%g", z.ID, z.Width, z.Height)
	}
	if z.X < 0 || z.Y < 0 {
		return fmt.Errorf("zone %q: negative origin", z.ID)
	}
	return nil
}

// parseHexColor parses "#RRGGBB" (or "RRGGBB"). Unparsable values fall
// back to black rather than failing the zone.
func parseHexColor(s string) (r, g, b int) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}
