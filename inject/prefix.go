package inject

import (
	"regexp"
	"unicode"
)

// Placeholder text in the pre-authored designs often bakes a decorative
// prefix into the slot: "[MOBILE] (555) 000-0000", "☎ 555-0000",
// "Tel: 555-0000". The prefix must survive injection, so it is split off
// the placeholder and reattached in front of the new value.

var (
	bracketPrefixRe = regexp.MustCompile(`^\[[A-Z]+\]\s*`)
	// whitespace after the colon is mandatory so URL schemes
	// ("http://...", "mailto:...") are never mistaken for labels
	colonPrefixRe = regexp.MustCompile(`^[A-Za-z]+:\s+`)
)

// SplitDecorativePrefix splits a placeholder into (prefix, rest).
// Detection runs in strict priority order, first match wins:
//  1. a bracketed uppercase label: "[MOBILE] "
//  2. a leading run of emoji/symbol code points
//  3. a trailing-colon text label: "Tel: "
//
// Once a rule matches, later rules are not tried. No match -> ("", text).
func SplitDecorativePrefix(text string) (string, string) {
	if loc := bracketPrefixRe.FindStringIndex(text); loc != nil {
		return text[:loc[1]], text[loc[1]:]
	}
	if end := symbolRunEnd(text); end > 0 {
		return text[:end], text[end:]
	}
	if loc := colonPrefixRe.FindStringIndex(text); loc != nil {
		return text[:loc[1]], text[loc[1]:]
	}
	return "", text
}

// symbolRunEnd returns the byte length of a leading run of symbol/emoji
// runes plus any whitespace directly after it. 0 = no symbol run.
func symbolRunEnd(text string) int {
	end := 0
	for i, r := range text {
		if isDecorativeSymbol(r) {
			end = i + len(string(r))
			continue
		}
		if end > 0 && unicode.IsSpace(r) {
			end = i + len(string(r))
			continue
		}
		break
	}
	return end
}

func isDecorativeSymbol(r rune) bool {
	if unicode.IsSymbol(r) {
		return true
	}
	// Emoji blocks outside the Unicode Symbol categories
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, extended
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols + dingbats
		return true
	case r == 0xFE0F || r == 0x200D: // variation selector, ZWJ
		return true
	}
	return false
}
