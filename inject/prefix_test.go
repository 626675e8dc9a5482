package inject

import "testing"

func TestSplitDecorativePrefix(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantPrefix string
		wantRest   string
	}{
		{name: "bracket label", in: "[MOBILE] (555) 000-0000", wantPrefix: "[MOBILE] ", wantRest: "(555) 000-0000"},
		{name: "bracket no space", in: "[FAX]555-0000", wantPrefix: "[FAX]", wantRest: "555-0000"},
		{name: "phone symbol", in: "☎ 555-0000", wantPrefix: "☎ ", wantRest: "555-0000"},
		{name: "emoji", in: "📞 555-0000", wantPrefix: "📞 ", wantRest: "555-0000"},
		{name: "colon label", in: "Tel: 555-0000", wantPrefix: "Tel: ", wantRest: "555-0000"},
		// Colon without whitespace is not a label: URL schemes must
		// survive intact.
		{name: "colon no space ignored", in: "Fax:555-0000", wantPrefix: "", wantRest: "Fax:555-0000"},
		{name: "url scheme kept whole", in: "http://www.yourcompany.com", wantPrefix: "", wantRest: "http://www.yourcompany.com"},
		{name: "mailto kept whole", in: "mailto:info@yourcompany.com", wantPrefix: "", wantRest: "mailto:info@yourcompany.com"},
		{name: "no prefix", in: "(555) 000-0000", wantPrefix: "", wantRest: "(555) 000-0000"},
		{name: "empty", in: "", wantPrefix: "", wantRest: ""},
		// Priority: a bracket label wins even when a symbol or colon
		// candidate follows it.
		{name: "bracket beats symbol", in: "[MOBILE] ☎ 555-0000", wantPrefix: "[MOBILE] ", wantRest: "☎ 555-0000"},
		{name: "symbol beats colon", in: "☎ Tel: 555-0000", wantPrefix: "☎ ", wantRest: "Tel: 555-0000"},
		// Lowercase brackets are not a bracket label, colon rule does not
		// reach past them either.
		{name: "lowercase bracket ignored", in: "[mobile] 555-0000", wantPrefix: "", wantRest: "[mobile] 555-0000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prefix, rest := SplitDecorativePrefix(tc.in)
			if prefix != tc.wantPrefix || rest != tc.wantRest {
				t.Errorf("SplitDecorativePrefix(%q) = (%q, %q), want (%q, %q)",
					tc.in, prefix, rest, tc.wantPrefix, tc.wantRest)
			}
		})
	}
}

func TestSplitDecorativePrefixRoundTrip(t *testing.T) {
	for _, in := range []string{"[MOBILE] x", "☎ x", "Tel: x", "x"} {
		prefix, rest := SplitDecorativePrefix(in)
		if prefix+rest != in {
			t.Errorf("prefix+rest = %q, want original %q", prefix+rest, in)
		}
	}
}
