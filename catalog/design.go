package catalog

import (
	"errors"
	"fmt"

	"github.com/naderabdullah/cardforge/nullable"
	"github.com/naderabdullah/cardforge/zones"
)

var ErrDesignNotFound = errors.New("design not found")

// Design is a read-only card template. Exactly one of Markup or Front
// is expected to be set: markup designs go through the injection
// engine, zone designs through the zone renderer.
type Design struct {
	ID    string `json:"id"`
	Theme string `json:"theme,omitzero"`

	Markup string          `json:"markup,omitzero"`
	Front  *zones.CardFace `json:"front,omitzero"`
	Back   *zones.CardFace `json:"back,omitzero"`

	Width  float64 `json:"width,omitzero"`  // mm
	Height float64 `json:"height,omitzero"` // mm

	Palette  []string `json:"palette,omitzero"`
	Fonts    []string `json:"fonts,omitzero"`
	Features []string `json:"features,omitzero"`

	Description nullable.String `json:"description,omitzero"`

	// Backend bookkeeping, only populated by stores that track it.
	Revision  nullable.Int  `json:"revision,omitzero"`
	UpdatedAt nullable.Time `json:"updated_at,omitzero"`
}

// GetID implements orm.Identifiable
func (d *Design) GetID() string {
	return d.ID
}

// HasMarkup reports whether the design renders through the injection
// engine rather than the zone renderer.
func (d *Design) HasMarkup() bool {
	return d.Markup != ""
}

// CheckSchema reports the required-field problems of a design. Loading
// keeps designs with problems (callers log them); only render time
// treats a broken template as fatal for its card.
func (d *Design) CheckSchema() []string {
	var problems []string
	if d.ID == "" {
		problems = append(problems, "missing id")
	}
	if d.Theme == "" {
		problems = append(problems, "missing theme")
	}
	if d.Markup == "" && d.Front == nil {
		problems = append(problems, "neither markup nor zones present")
	}
	if d.Markup != "" && d.Front != nil {
		problems = append(problems, "both markup and zones present")
	}
	if d.Width <= 0 || d.Height <= 0 {
		problems = append(problems, "missing physical dimensions")
	}
	if len(d.Palette) == 0 {
		problems = append(problems, "missing palette")
	}
	if len(d.Fonts) == 0 {
		problems = append(problems, "missing font list")
	}
	for _, face := range []*zones.CardFace{d.Front, d.Back} {
		if face == nil {
			continue
		}
		for i := range face.Zones {
			if err := face.Zones[i].Validate(); err != nil {
				problems = append(problems, fmt.Sprintf("zone %d: %v", i, err))
			}
		}
	}
	return problems
}
