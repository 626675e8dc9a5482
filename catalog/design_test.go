package catalog

import (
	"strings"
	"testing"

	"github.com/naderabdullah/cardforge/zones"
)

func completeZoneDesign() *Design {
	return &Design{
		ID:      "classic-01",
		Theme:   "classic",
		Width:   88.9,
		Height:  50.8,
		Palette: []string{"#000000", "#FFFFFF"},
		Fonts:   []string{"Helvetica"},
		Front: &zones.CardFace{
			Width:  88.9,
			Height: 50.8,
			Zones: []zones.Zone{
				{ID: "company", Type: zones.ZoneCompanyName, X: 5, Y: 5, Width: 78, Height: 10},
			},
		},
	}
}

func TestCheckSchemaComplete(t *testing.T) {
	if problems := completeZoneDesign().CheckSchema(); len(problems) != 0 {
		t.Errorf("complete design reported problems: %v", problems)
	}
}

func TestCheckSchema(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Design)
		want   string
	}{
		{name: "missing id", mutate: func(d *Design) { d.ID = "" }, want: "missing id"},
		{name: "missing theme", mutate: func(d *Design) { d.Theme = "" }, want: "missing theme"},
		{name: "no content", mutate: func(d *Design) { d.Front = nil }, want: "neither markup nor zones present"},
		{name: "both contents", mutate: func(d *Design) { d.Markup = "<div/>" }, want: "both markup and zones present"},
		{name: "zero width", mutate: func(d *Design) { d.Width = 0 }, want: "missing physical dimensions"},
		{name: "no palette", mutate: func(d *Design) { d.Palette = nil }, want: "missing palette"},
		{name: "no fonts", mutate: func(d *Design) { d.Fonts = nil }, want: "missing font list"},
		{
			name: "bad zone type",
			mutate: func(d *Design) {
				d.Front.Zones[0].Type = "watermark"
			},
			want: "unknown type",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := completeZoneDesign()
			tc.mutate(d)
			problems := d.CheckSchema()
			for _, p := range problems {
				if strings.Contains(p, tc.want) {
					return
				}
			}
			t.Errorf("problems %v do not mention %q", problems, tc.want)
		})
	}
}

func TestHasMarkup(t *testing.T) {
	d := &Design{Markup: "<div class=\"name\"></div>"}
	if !d.HasMarkup() {
		t.Error("markup design not detected")
	}
	if completeZoneDesign().HasMarkup() {
		t.Error("zone design claims markup")
	}
}
