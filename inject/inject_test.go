package inject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naderabdullah/cardforge/contacts"
)

func testRecord() *contacts.Record {
	return &contacts.Record{
		CompanyName: "Acme Corp",
		PersonName:  "Jane Doe",
		Title:       "CEO",
		Phones: []contacts.Entry{
			{Value: "5551234567", Label: "office"},
			{Value: "5559876543", Label: "mobile", Primary: true},
		},
		Emails: []contacts.Entry{
			{Value: "jane@acme.example", Label: "work"},
		},
		Social: []contacts.Entry{
			{Value: "@acme", Label: "twitter"},
		},
	}
}

func TestInjectTextSlots(t *testing.T) {
	markup := `<div class="name">Your Name</div><div class="company">Company</div><div class="title">Job Title</div>`
	out := InjectContactInfo(markup, testRecord())

	assert.Contains(t, out, ">Jane Doe<")
	assert.Contains(t, out, ">Acme Corp<")
	assert.Contains(t, out, ">CEO<")
	assert.NotContains(t, out, "Your Name")
}

func TestInjectRequiredSlotKeepsPlaceholderWhenBlank(t *testing.T) {
	rec := testRecord()
	rec.PersonName = "   "
	markup := `<div class="name">Your Name</div>`
	out := InjectContactInfo(markup, rec)
	// name/company are never removed, a stale placeholder beats a hole
	assert.Equal(t, markup, out)
}

func TestInjectOptionalSlotRemovedWhenBlank(t *testing.T) {
	rec := testRecord()
	rec.Title = ""
	markup := `<p>keep</p><div class="title">Job Title</div><p>also keep</p>`
	out := InjectContactInfo(markup, rec)
	assert.Equal(t, `<p>keep</p><p>also keep</p>`, out)
}

func TestInjectExcessListSlotsRemoved(t *testing.T) {
	rec := testRecord()
	rec.Phones = []contacts.Entry{{Value: "5551234567"}}
	markup := `<span class="phone">(555) 000-0001</span>` +
		`<span class="phone">(555) 000-0002</span>` +
		`<span class="phone">(555) 000-0003</span>`
	out := InjectContactInfo(markup, rec)

	if got := strings.Count(out, `class="phone"`); got != 1 {
		t.Fatalf("got %d phone slots, want 1 (output %q)", got, out)
	}
	assert.Contains(t, out, "(555) 123-4567")
	assert.NotContains(t, out, "000-0002")
	assert.NotContains(t, out, "000-0003")
}

func TestInjectPhoneFormatting(t *testing.T) {
	markup := `<span class="phone">placeholder</span>`
	out := InjectContactInfo(markup, testRecord())
	assert.Contains(t, out, "(555) 123-4567")
	assert.NotContains(t, out, "5551234567")
}

func TestInjectTaggedSlotsBindFirst(t *testing.T) {
	// The untagged slot appears first in the markup but the tagged one
	// still claims the primary entry.
	markup := `<span class="phone">a</span><span class="phone" data-type="primary">b</span>`
	out := InjectContactInfo(markup, testRecord())

	// primary -> mobile number, untagged gets the remaining office number
	assert.Contains(t, out, `data-type="primary">(555) 987-6543`)
	assert.Contains(t, out, ">(555) 123-4567<")
}

func TestInjectTaggedByLabel(t *testing.T) {
	markup := `<span class="phone" data-type="office">x</span>`
	out := InjectContactInfo(markup, testRecord())
	assert.Contains(t, out, "(555) 123-4567")
}

func TestInjectUnmatchedTaggedSlotRemoved(t *testing.T) {
	markup := `<span class="phone" data-type="fax">x</span><span class="phone">y</span>`
	out := InjectContactInfo(markup, testRecord())
	assert.NotContains(t, out, "fax")
	// sequential slot still binds
	assert.Contains(t, out, "(555) 123-4567")
}

func TestInjectPreservesDecorativePrefix(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name:   "bracket label",
			markup: `<span class="phone">[MOBILE] (555) 000-0000</span>`,
			want:   "[MOBILE] (555) 123-4567",
		},
		{
			name:   "symbol",
			markup: `<span class="phone">☎ (555) 000-0000</span>`,
			want:   "☎ (555) 123-4567",
		},
		{
			name:   "colon label",
			markup: `<span class="phone">Tel: (555) 000-0000</span>`,
			want:   "Tel: (555) 123-4567",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := InjectContactInfo(tc.markup, testRecord())
			assert.Contains(t, out, tc.want)
		})
	}
}

func TestInjectWebsiteKeepsSchemePlaceholderIntact(t *testing.T) {
	// "http:" must not be treated as a decorative label prefix.
	rec := testRecord()
	rec.Websites = []contacts.Entry{{Value: "www.acme.example"}}
	markup := `<span class="website">http://www.yourcompany.com</span>`
	out := InjectContactInfo(markup, rec)

	assert.Contains(t, out, ">www.acme.example<")
	assert.NotContains(t, out, "http:www.acme.example")
}

func TestInjectSocialByPlatform(t *testing.T) {
	markup := `<span class="social" data-platform="twitter">@handle</span>` +
		`<span class="social" data-platform="linkedin">@other</span>`
	out := InjectContactInfo(markup, testRecord())

	assert.Contains(t, out, "@acme")
	// No linkedin entry: the slot stays untouched rather than removed
	assert.Contains(t, out, "@other")
}

func TestInjectIdempotent(t *testing.T) {
	markup := `<div class="name">Your Name</div>` +
		`<span class="phone">[MOBILE] (555) 000-0000</span>` +
		`<span class="email">mail@example.com</span>`
	rec := testRecord()
	rec.Phones = rec.Phones[:1]

	once := InjectContactInfo(markup, rec)
	twice := InjectContactInfo(once, rec)
	assert.Equal(t, once, twice)
}

func TestInjectNilRecord(t *testing.T) {
	markup := `<div class="name">Your Name</div>`
	assert.Equal(t, markup, InjectContactInfo(markup, nil))
}

func TestInjectUnknownClassesUntouched(t *testing.T) {
	markup := `<div class="banner">Hello</div><div class="footer">Bye</div>`
	assert.Equal(t, markup, InjectContactInfo(markup, testRecord()))
}

func TestInjectBlankEntriesSkipped(t *testing.T) {
	rec := testRecord()
	rec.Emails = []contacts.Entry{{Value: "   "}, {Value: "jane@acme.example"}}
	markup := `<span class="email">mail@example.com</span>`
	out := InjectContactInfo(markup, rec)
	assert.Contains(t, out, "jane@acme.example")
}
