package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Unknown is the segment produced for input with no usable characters.
const Unknown = "unknown"

var lower = cases.Lower(language.Und)

// NormalizeSegment converts a name into a lowercase path segment. The input is
// NFC-normalized, characters other than letters, digits, underscores and
// whitespace are dropped, runs of whitespace become a single underscore and
// leading or trailing underscores are trimmed. Returns Unknown for empty
// results.
func NormalizeSegment(value string) string {
	value = norm.NFC.String(strings.TrimSpace(value))
	if value == "" {
		return Unknown
	}
	var b strings.Builder
	pendingSpace := false
	for _, r := range value {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingSpace && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
	}
	out := strings.Trim(lower.String(b.String()), "_")
	if out == "" {
		return Unknown
	}
	return out
}
