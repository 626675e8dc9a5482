package inject

import (
	"strings"
	"unicode"
)

// The design catalog supplies card faces as opaque HTML-ish markup. The
// engine never builds a DOM; it scans for elements whose class list
// contains a recognized slot class and edits the string in place
// (spec'd slot markers only - anything else passes through untouched).

// slotMatch - one located slot element inside the markup
type slotMatch struct {
	outerStart int    // index of '<'
	outerEnd   int    // index just past the closing tag
	innerStart int    // index just past the opening tag's '>'
	innerEnd   int    // index of the matching '</'
	attrs      string // raw attribute text of the opening tag
}

func (m slotMatch) inner(markup string) string {
	return markup[m.innerStart:m.innerEnd]
}

// findSlotElements locates every element whose class attribute contains
// the given class token, in document order. Nested same-name tags are
// balanced by depth counting; elements whose closing tag cannot be found
// are skipped rather than guessed at.
func findSlotElements(markup, class string) []slotMatch {
	var matches []slotMatch
	i := 0
	for i < len(markup) {
		open := strings.IndexByte(markup[i:], '<')
		if open < 0 {
			break
		}
		start := i + open
		name, attrs, contentStart, selfClosed, ok := parseOpenTag(markup, start)
		if !ok {
			i = start + 1
			continue
		}
		if selfClosed || !hasClassToken(attrs, class) {
			i = contentStart
			continue
		}
		end := findClosingTag(markup, name, contentStart)
		if end < 0 {
			i = contentStart
			continue
		}
		closeLen := len("</"+name) + 1
		matches = append(matches, slotMatch{
			outerStart: start,
			outerEnd:   end + closeLen,
			innerStart: contentStart,
			innerEnd:   end,
			attrs:      attrs,
		})
		i = end + closeLen
	}
	return matches
}

// parseOpenTag parses "<name attrs>" starting at markup[start] == '<'.
// Returns the tag name, raw attrs, index past '>', and whether the tag is
// self-closing. ok = false for closing tags, comments and stray '<'.
func parseOpenTag(markup string, start int) (name, attrs string, after int, selfClosed, ok bool) {
	j := start + 1
	if j >= len(markup) || !isTagNameStart(rune(markup[j])) {
		return "", "", 0, false, false
	}
	nameEnd := j
	for nameEnd < len(markup) && isTagNameRune(rune(markup[nameEnd])) {
		nameEnd++
	}
	gt := strings.IndexByte(markup[nameEnd:], '>')
	if gt < 0 {
		return "", "", 0, false, false
	}
	gt += nameEnd
	attrs = markup[nameEnd:gt]
	selfClosed = strings.HasSuffix(strings.TrimSpace(attrs), "/")
	if isVoidTag(markup[j:nameEnd]) {
		selfClosed = true
	}
	return strings.ToLower(markup[j:nameEnd]), attrs, gt + 1, selfClosed, true
}

// findClosingTag returns the index of the "</name>" matching an open tag
// whose content starts at from, balancing nested same-name tags.
// Returns -1 when the markup never closes the element.
func findClosingTag(markup, name string, from int) int {
	depth := 1
	i := from
	for i < len(markup) {
		lt := strings.IndexByte(markup[i:], '<')
		if lt < 0 {
			return -1
		}
		i += lt
		if strings.HasPrefix(markup[i:], "</") {
			rest := markup[i+2:]
			if tagNameAt(rest) == name {
				depth--
				if depth == 0 {
					return i
				}
			}
			i += 2
			continue
		}
		n, _, after, selfClosed, ok := parseOpenTag(markup, i)
		if ok {
			if n == name && !selfClosed {
				depth++
			}
			i = after
			continue
		}
		i++
	}
	return -1
}

func tagNameAt(s string) string {
	end := 0
	for end < len(s) && isTagNameRune(rune(s[end])) {
		end++
	}
	return strings.ToLower(s[:end])
}

func isTagNameStart(r rune) bool {
	return unicode.IsLetter(r)
}

func isTagNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-'
}

func isVoidTag(name string) bool {
	switch strings.ToLower(name) {
	case "br", "hr", "img", "input", "meta", "link":
		return true
	}
	return false
}

// hasClassToken reports whether the class attribute inside attrs contains
// the given whitespace-separated token.
func hasClassToken(attrs, token string) bool {
	for _, t := range strings.Fields(attrValue(attrs, "class")) {
		if t == token {
			return true
		}
	}
	return false
}

// attrValue extracts a double- or single-quoted attribute value from raw
// attribute text. Missing attribute -> "".
func attrValue(attrs, name string) string {
	lower := strings.ToLower(attrs)
	needle := name + "="
	from := 0
	for {
		idx := strings.Index(lower[from:], needle)
		if idx < 0 {
			return ""
		}
		idx += from
		// must be the start of an attribute name, not a suffix of one
		if idx > 0 && (isTagNameRune(rune(lower[idx-1])) || lower[idx-1] == '_') {
			from = idx + len(needle)
			continue
		}
		rest := attrs[idx+len(needle):]
		if len(rest) == 0 {
			return ""
		}
		quote := rest[0]
		if quote != '"' && quote != '\'' {
			// unquoted value, read till whitespace
			end := strings.IndexFunc(rest, unicode.IsSpace)
			if end < 0 {
				return rest
			}
			return rest[:end]
		}
		end := strings.IndexByte(rest[1:], quote)
		if end < 0 {
			return ""
		}
		return rest[1 : 1+end]
	}
}

// firstTextSegment finds the first non-blank text run inside inner markup,
// skipping over any nested decorative elements (icons etc). Returns the
// segment and its [start,end) offsets within inner. found = false when the
// element holds no text at all.
func firstTextSegment(inner string) (string, int, int, bool) {
	i := 0
	for i < len(inner) {
		lt := strings.IndexByte(inner[i:], '<')
		var seg string
		var segStart int
		if lt < 0 {
			seg, segStart = inner[i:], i
			i = len(inner)
		} else {
			seg, segStart = inner[i:i+lt], i
			gt := strings.IndexByte(inner[i+lt:], '>')
			if gt < 0 {
				i = len(inner)
			} else {
				i = i + lt + gt + 1
			}
		}
		trimmed := strings.TrimSpace(seg)
		if trimmed != "" {
			lead := strings.Index(seg, trimmed)
			return trimmed, segStart + lead, segStart + lead + len(trimmed), true
		}
		if lt < 0 {
			break
		}
	}
	return "", 0, 0, false
}
