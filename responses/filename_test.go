package responses

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Acme", want: "Acme"},
		{name: "spaces to underscore", in: "Acme Corp Inc", want: "Acme_Corp_Inc"},
		{name: "diacritics folded", in: "Café Müller", want: "Cafe_Muller"},
		{name: "punctuation dropped", in: "Smith & Sons, LLC", want: "Smith__Sons_LLC"},
		{name: "kept chars survive", in: "a-b_c.d9", want: "a-b_c.d9"},
		{name: "leading dot trimmed", in: ".hidden", want: "hidden"},
		{name: "trailing underscore trimmed", in: "x_", want: "x"},
		{name: "nothing survives", in: "株式会社", want: "cards"},
		{name: "empty", in: "", want: "cards"},
		{name: "only symbols", in: "!!!", want: "cards"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeFilename(tc.in, "cards"); got != tc.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
