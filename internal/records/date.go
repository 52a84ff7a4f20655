package records

import (
	"regexp"
	"strings"
)

const (
	dateCore   = `(?:(?:\d{1,2}\s+)?(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\s+)?\d{1,4}(?:/\d{2})?(?:\s*B\.?C\.?)?`
	datePhrase = `\([^()]*\)`
)

// datePattern accepts the GEDCOM 5.5 date value grammar: exact dates,
// approximations, ranges, periods, and interpreted phrases.
var datePattern = regexp.MustCompile(`^(?:` +
	`(?:(?:ABT|CAL|EST|BEF|AFT)\s+)?` + dateCore +
	`|BET\s+` + dateCore + `\s+AND\s+` + dateCore +
	`|FROM\s+` + dateCore + `(?:\s+TO\s+` + dateCore + `)?` +
	`|TO\s+` + dateCore +
	`|INT\s+` + dateCore + `\s+` + datePhrase +
	`|` + datePhrase +
	`)$`)

// Date is a GEDCOM date value kept verbatim.
type Date struct {
	Raw string
}

// NewDate trims and collapses whitespace in a raw date value.
func NewDate(raw string) Date {
	return Date{Raw: strings.Join(strings.Fields(raw), " ")}
}

// IsZero reports whether no date was recorded.
func (d Date) IsZero() bool {
	return strings.TrimSpace(d.Raw) == ""
}

// Valid reports whether the value follows the GEDCOM date grammar.
func (d Date) Valid() bool {
	if d.IsZero() {
		return false
	}
	return datePattern.MatchString(strings.ToUpper(d.Raw))
}

// String returns the display form: empty for a missing date, the raw value
// for a readable date, and UnknownMarker for anything else.
func (d Date) String() string {
	switch {
	case d.IsZero():
		return ""
	case d.Valid():
		return d.Raw
	default:
		return UnknownMarker
	}
}
