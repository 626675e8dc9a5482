package contacts

import (
	"errors"
	"testing"
)

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		rec     *Record
		wantErr error
	}{
		{name: "nil record", rec: nil, wantErr: ErrNoRecord},
		{name: "missing company", rec: &Record{PersonName: "Jane"}, wantErr: ErrMissingCompany},
		{name: "blank company", rec: &Record{CompanyName: "  ", PersonName: "Jane"}, wantErr: ErrMissingCompany},
		{name: "missing person", rec: &Record{CompanyName: "Acme"}, wantErr: ErrMissingPerson},
		{name: "valid", rec: &Record{CompanyName: "Acme", PersonName: "Jane"}, wantErr: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNonBlank(t *testing.T) {
	entries := []Entry{
		{Value: "a"},
		{Value: "   "},
		{Value: ""},
		{Value: "b", Label: "work"},
	}
	kept := NonBlank(entries)
	if len(kept) != 2 {
		t.Fatalf("got %d entries, want 2", len(kept))
	}
	if kept[0].Value != "a" || kept[1].Value != "b" {
		t.Errorf("order not preserved: %+v", kept)
	}
}

func TestFindByLabel(t *testing.T) {
	entries := []Entry{
		{Value: "", Label: "twitter"}, // blank value never matches
		{Value: "@acme", Label: "Twitter"},
		{Value: "acme-co", Label: "linkedin"},
	}

	e, ok := FindByLabel(entries, "twitter")
	if !ok || e.Value != "@acme" {
		t.Errorf("FindByLabel(twitter) = (%+v, %v)", e, ok)
	}
	if _, ok = FindByLabel(entries, "github"); ok {
		t.Error("unexpected match for unknown label")
	}
}

func TestPrimary(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    string
		wantOK  bool
	}{
		{
			name:    "flagged entry wins",
			entries: []Entry{{Value: "a"}, {Value: "b", Primary: true}},
			want:    "b", wantOK: true,
		},
		{
			name:    "fallback to first non-blank",
			entries: []Entry{{Value: "  "}, {Value: "c"}},
			want:    "c", wantOK: true,
		},
		{
			name:    "blank primary skipped",
			entries: []Entry{{Value: " ", Primary: true}, {Value: "d"}},
			want:    "d", wantOK: true,
		},
		{name: "nothing usable", entries: []Entry{{Value: ""}}, wantOK: false},
		{name: "empty list", entries: nil, wantOK: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, ok := Primary(tc.entries)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && e.Value != tc.want {
				t.Errorf("Primary() = %q, want %q", e.Value, tc.want)
			}
		})
	}
}
