// Package inject fills pre-authored card markup with contact data.
// Injection is best-effort: a failure while processing one slot class
// falls back to the untouched markup for that class and never aborts the
// card (field-level recovery).
package inject

import (
	"log"
	"sort"
	"strings"

	"github.com/naderabdullah/cardforge/contacts"
)

// SlotKind - capability of a slot class
type SlotKind int

const (
	SlotText     SlotKind = iota // single hideable value
	SlotRequired                 // single value, left untouched when blank
	SlotList                     // ordered list binding with optional tag override
	SlotSocial                   // platform-attribute binding only
)

// SlotSpec declares one recognized slot class and how to bind it.
// The engine iterates this table; designs using other markers simply
// receive no injected content.
type SlotSpec struct {
	Class   string
	Kind    SlotKind
	TagAttr string // attribute enabling tagged binding ("data-type", "data-platform")
	Phone   bool   // run values through FormatPhoneNumber

	Value   func(*contacts.Record) string
	Entries func(*contacts.Record) []contacts.Entry
}

// DefaultSlotTable - the markup slot contract consumed from the static
// design catalog. Order only affects processing order, not binding.
var DefaultSlotTable = []SlotSpec{
	{Class: "name", Kind: SlotRequired, Value: func(r *contacts.Record) string { return r.PersonName }},
	{Class: "company", Kind: SlotRequired, Value: func(r *contacts.Record) string { return r.CompanyName }},
	{Class: "title", Kind: SlotText, Value: func(r *contacts.Record) string { return r.Title }},
	{Class: "subtitle", Kind: SlotText, Value: func(r *contacts.Record) string { return r.Subtitle }},
	{Class: "slogan", Kind: SlotText, Value: func(r *contacts.Record) string { return r.Slogan }},
	{Class: "descriptor", Kind: SlotText, Value: func(r *contacts.Record) string { return r.Descriptor }},
	{Class: "year-established", Kind: SlotText, Value: func(r *contacts.Record) string { return r.YearEstablished }},
	{Class: "phone", Kind: SlotList, TagAttr: "data-type", Phone: true, Entries: func(r *contacts.Record) []contacts.Entry { return r.Phones }},
	{Class: "email", Kind: SlotList, TagAttr: "data-type", Entries: func(r *contacts.Record) []contacts.Entry { return r.Emails }},
	{Class: "website", Kind: SlotList, TagAttr: "data-type", Entries: func(r *contacts.Record) []contacts.Entry { return r.Websites }},
	{Class: "address", Kind: SlotList, TagAttr: "data-type", Entries: func(r *contacts.Record) []contacts.Entry { return r.Addresses }},
	{Class: "social", Kind: SlotSocial, TagAttr: "data-platform", Entries: func(r *contacts.Record) []contacts.Entry { return r.Social }},
}

// InjectContactInfo substitutes contact data into the labeled slots of a
// card markup string. The markup is edited as an opaque string; anything
// outside recognized slot elements passes through byte for byte.
// Re-running on already-injected markup is a no-op beyond re-formatting.
func InjectContactInfo(markup string, rec *contacts.Record) string {
	if rec == nil {
		return markup
	}
	out := markup
	for _, spec := range DefaultSlotTable {
		out = injectSlotClass(out, spec, rec)
	}
	return out
}

// injectSlotClass processes every element of one slot class. Any panic is
// contained here so a single broken field cannot take the card down.
func injectSlotClass(markup string, spec SlotSpec, rec *contacts.Record) (result string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN][inject] slot class %q failed: %v. keeping original markup for this field", spec.Class, r)
			result = markup
		}
	}()

	matches := findSlotElements(markup, spec.Class)
	if len(matches) == 0 {
		return markup
	}

	var edits []edit
	switch spec.Kind {
	case SlotText, SlotRequired:
		edits = textSlotEdits(markup, matches, spec, rec)
	case SlotList:
		edits = listSlotEdits(markup, matches, spec, rec)
	case SlotSocial:
		edits = socialSlotEdits(markup, matches, spec, rec)
	}
	return applyEdits(markup, edits)
}

type edit struct {
	start, end int
	repl       string
}

// applyEdits rewrites the markup right to left so earlier offsets stay
// valid. Edits never overlap: each targets a distinct slot element.
func applyEdits(markup string, edits []edit) string {
	if len(edits) == 0 {
		return markup
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	out := markup
	for _, e := range edits {
		out = out[:e.start] + e.repl + out[e.end:]
	}
	return out
}

func textSlotEdits(markup string, matches []slotMatch, spec SlotSpec, rec *contacts.Record) []edit {
	value := strings.TrimSpace(spec.Value(rec))
	var edits []edit
	for _, m := range matches {
		if value == "" {
			if spec.Kind == SlotRequired {
				// a card without its name/company element is worse than a
				// stale placeholder, leave it alone
				continue
			}
			edits = append(edits, edit{start: m.outerStart, end: m.outerEnd})
			continue
		}
		if e, ok := fillEdit(markup, m, value); ok {
			edits = append(edits, e)
		}
	}
	return edits
}

// listSlotEdits binds list-typed slots. Tagged slots (carrying the
// TagAttr attribute) are filled first by label match, then the untagged
// slots take the remaining unused entries in order. Slots beyond the
// populated-entry count are removed.
func listSlotEdits(markup string, matches []slotMatch, spec SlotSpec, rec *contacts.Record) []edit {
	entries := contacts.NonBlank(spec.Entries(rec))
	used := make([]bool, len(entries))
	bound := make([]*contacts.Entry, len(matches))

	// pass 1: tagged slots
	for i, m := range matches {
		tag := attrValue(m.attrs, spec.TagAttr)
		if tag == "" {
			continue
		}
		if idx := matchTagged(entries, used, tag); idx >= 0 {
			used[idx] = true
			bound[i] = &entries[idx]
		} else {
			bound[i] = nil // tagged but unmatched -> removed below
		}
	}
	// pass 2: untagged slots, sequentially from remaining entries
	next := 0
	for i, m := range matches {
		if attrValue(m.attrs, spec.TagAttr) != "" {
			continue
		}
		for next < len(entries) && used[next] {
			next++
		}
		if next < len(entries) {
			used[next] = true
			bound[i] = &entries[next]
		}
	}

	var edits []edit
	for i, m := range matches {
		if bound[i] == nil {
			edits = append(edits, edit{start: m.outerStart, end: m.outerEnd})
			continue
		}
		value := bound[i].Value
		if spec.Phone {
			value = FormatPhoneNumber(value)
		}
		if e, ok := fillEdit(markup, m, value); ok {
			edits = append(edits, e)
		}
	}
	return edits
}

// matchTagged finds the unused entry bound by a slot tag: "primary" picks
// the entry flagged is_primary, anything else matches the entry label
// case-insensitively.
func matchTagged(entries []contacts.Entry, used []bool, tag string) int {
	for i, e := range entries {
		if used[i] {
			continue
		}
		if strings.EqualFold(tag, "primary") {
			if e.Primary {
				return i
			}
			continue
		}
		if strings.EqualFold(e.Label, tag) {
			return i
		}
	}
	return -1
}

// socialSlotEdits binds social slots by their platform attribute only.
// A slot whose platform has no matching entry is left as-is but logged,
// the design may show a default handle on purpose.
func socialSlotEdits(markup string, matches []slotMatch, spec SlotSpec, rec *contacts.Record) []edit {
	entries := spec.Entries(rec)
	var edits []edit
	for _, m := range matches {
		platform := attrValue(m.attrs, spec.TagAttr)
		if platform == "" {
			log.Printf("[WARN][inject] social slot missing %s attribute, skipping", spec.TagAttr)
			continue
		}
		entry, ok := contacts.FindByLabel(entries, platform)
		if !ok {
			log.Printf("[WARN][inject] no social entry for platform %q, slot left as-is", platform)
			continue
		}
		if e, ok := fillEdit(markup, m, entry.Value); ok {
			edits = append(edits, e)
		}
	}
	return edits
}

// fillEdit builds the replacement for one slot element: the first textual
// occurrence of the placeholder is swapped for prefix + value, where the
// prefix is whatever decoration the placeholder already carried.
func fillEdit(markup string, m slotMatch, value string) (edit, bool) {
	inner := m.inner(markup)
	placeholder, segStart, segEnd, found := firstTextSegment(inner)
	if !found {
		// element holds no text at all (icon-only), write into it directly
		return edit{start: m.innerStart, end: m.innerEnd, repl: inner + value}, true
	}
	prefix, _ := SplitDecorativePrefix(placeholder)
	return edit{
		start: m.innerStart + segStart,
		end:   m.innerStart + segEnd,
		repl:  prefix + value,
	}, true
}
