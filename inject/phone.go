package inject

import (
	"fmt"
	"strings"
)

// FormatPhoneNumber formats a phone value deterministically by digit count
// after stripping all non-digits:
//
//	10 digits            -> (XXX) XXX-XXXX
//	11 digits, leading 1 -> +1 (XXX) XXX-XXXX
//	7 digits             -> XXX-XXXX
//
// Any other length is returned unformatted. Never errors.
func FormatPhoneNumber(raw string) string {
	// ASCII digits only: other scripts' digits fall through unformatted
	// rather than being byte-sliced into invalid UTF-8.
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case len(d) == 10:
		return fmt.Sprintf("(%s) %s-%s", d[0:3], d[3:6], d[6:10])
	case len(d) == 11 && d[0] == '1':
		return fmt.Sprintf("+1 (%s) %s-%s", d[1:4], d[4:7], d[7:11])
	case len(d) == 7:
		return fmt.Sprintf("%s-%s", d[0:3], d[3:7])
	default:
		return raw
	}
}
