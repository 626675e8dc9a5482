package inject

import "testing"

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "10 digits bare", in: "5551234567", want: "(555) 123-4567"},
		{name: "10 digits with punctuation", in: "555.123.4567", want: "(555) 123-4567"},
		{name: "10 digits already formatted", in: "(555) 123-4567", want: "(555) 123-4567"},
		{name: "11 digits leading 1", in: "15551234567", want: "+1 (555) 123-4567"},
		{name: "11 digits with country punctuation", in: "+1-555-123-4567", want: "+1 (555) 123-4567"},
		{name: "7 digits", in: "1234567", want: "123-4567"},
		{name: "7 digits with dash", in: "123-4567", want: "123-4567"},
		{name: "11 digits not leading 1", in: "25551234567", want: "25551234567"},
		{name: "too short passes through", in: "12345", want: "12345"},
		{name: "ten digits with country prefix still format", in: "+49 30 901820", want: "(493) 090-1820"},
		{name: "international passes through", in: "+49 30 90182000", want: "+49 30 90182000"},
		{name: "non-ascii digits pass through", in: "٥٥٥١٢٣٤٥٦٧", want: "٥٥٥١٢٣٤٥٦٧"},
		{name: "empty", in: "", want: ""},
		{name: "letters stripped before counting", in: "call 555 123 4567", want: "(555) 123-4567"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatPhoneNumber(tc.in); got != tc.want {
				t.Errorf("FormatPhoneNumber(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatPhoneNumberIdempotent(t *testing.T) {
	once := FormatPhoneNumber("5551234567")
	twice := FormatPhoneNumber(once)
	if once != twice {
		t.Errorf("formatting is not idempotent: %q -> %q", once, twice)
	}
}
