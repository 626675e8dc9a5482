// Package contacts holds the contact data model supplied with each print
// request. Records are request-scoped input and never mutated by the
// pipeline.
package contacts

import (
	"errors"
	"strings"
)

// Entry - one value of a list-typed contact field.
// List order is significant: slot i of a design binds to entry i by
// default. A non-empty Label enables attribute-based binding instead
// (e.g. a phone slot tagged "mobile" prefers the entry labeled "mobile").
type Entry struct {
	Value   string `json:"value"`
	Label   string `json:"label,omitzero"`
	Primary bool   `json:"is_primary,omitzero"`
}

// Logo - reference to the uploaded logo plus its embedded raster/vector
// bytes. Data is base64 over the wire.
type Logo struct {
	ID   string `json:"id"`
	MIME string `json:"mime,omitzero"` // e.g. image/png
	Data []byte `json:"data,omitzero"`
}

// Record - structured contact data for one card job
type Record struct {
	CompanyName     string `json:"company_name"`
	PersonName      string `json:"person_name"`
	Title           string `json:"title,omitzero"`
	Subtitle        string `json:"subtitle,omitzero"`
	Slogan          string `json:"slogan,omitzero"`
	Descriptor      string `json:"descriptor,omitzero"`
	YearEstablished string `json:"year_established,omitzero"`

	Logo *Logo `json:"logo,omitzero"`

	Phones    []Entry `json:"phones,omitzero"`
	Emails    []Entry `json:"emails,omitzero"`
	Websites  []Entry `json:"websites,omitzero"`
	Addresses []Entry `json:"addresses,omitzero"`
	Social    []Entry `json:"social_media,omitzero"`
}

var (
	ErrNoRecord       = errors.New("no contact record supplied")
	ErrMissingCompany = errors.New("contact record missing company name")
	ErrMissingPerson  = errors.New("contact record missing person name")
)

// Validate checks the fields every generation entry point requires.
func (r *Record) Validate() error {
	if r == nil {
		return ErrNoRecord
	}
	if strings.TrimSpace(r.CompanyName) == "" {
		return ErrMissingCompany
	}
	if strings.TrimSpace(r.PersonName) == "" {
		return ErrMissingPerson
	}
	return nil
}

// NonBlank filters a list down to entries with a non-blank value,
// preserving order. Sequential slot binding counts only these.
func NonBlank(entries []Entry) []Entry {
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Value) != "" {
			kept = append(kept, e)
		}
	}
	return kept
}

// FindByLabel returns the first non-blank entry whose label matches
// (case-insensitive). ok = false when no entry matches.
func FindByLabel(entries []Entry, label string) (Entry, bool) {
	for _, e := range entries {
		if strings.TrimSpace(e.Value) == "" {
			continue
		}
		if strings.EqualFold(e.Label, label) {
			return e, true
		}
	}
	return Entry{}, false
}

// Primary returns the entry flagged is_primary, falling back to the first
// non-blank entry.
func Primary(entries []Entry) (Entry, bool) {
	for _, e := range entries {
		if e.Primary && strings.TrimSpace(e.Value) != "" {
			return e, true
		}
	}
	nb := NonBlank(entries)
	if len(nb) == 0 {
		return Entry{}, false
	}
	return nb[0], true
}
