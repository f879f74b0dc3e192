// Package arinc provides the fixed-width record model shared by every
// record type: 132-column lines, 1-indexed inclusive column slicing,
// type code derivation, and continuation-line classification.
package arinc

import (
	"regexp"
	"strings"
)

const (
	// Width is the fixed record width in characters
	Width = 132
	// MinRecordLen is the minimum line length for a line to count as a record
	MinRecordLen = 70
	// PayloadEnd is the last column that participates in structural
	// comparison; trailing columns (file record number, cycle date) are
	// excluded
	PayloadEnd = 123
	// DefaultContColumn is the continuation-number column used when a
	// type code has no registered layout
	DefaultContColumn = 22
)

// Header and end-of-file markers: HDR or EOF followed by a digit at the
// start of the trimmed line, case-insensitive.
var headerRe = regexp.MustCompile(`(?i)^(HDR|EOF)\d`)

// typeCodeAliases remaps raw section+subsection combinations to their
// canonical two-character type codes. VHF navaid records carry a blank
// subsection column.
var typeCodeAliases = map[string]string{
	"D ": "DV",
}

// Normalize strips the trailing newline and pads or truncates the line
// to exactly Width characters.
func Normalize(raw string) string {
	s := strings.TrimRight(raw, "\r\n")
	if len(s) < Width {
		return s + strings.Repeat(" ", Width-len(s))
	}
	return s[:Width]
}

// IsRecord reports whether the line is long enough to be a data record
func IsRecord(raw string) bool {
	return len(strings.TrimRight(raw, "\r\n")) >= MinRecordLen
}

// IsHeaderOrFooter reports whether the line is a file header or
// end-of-file marker rather than a data record
func IsHeaderOrFooter(raw string) bool {
	return headerRe.MatchString(strings.TrimSpace(raw))
}

// Slice returns the 1-indexed inclusive column range a..b. Out-of-range
// columns yield the empty string rather than panicking on short input.
func Slice(line string, a, b int) string {
	if a < 1 {
		a = 1
	}
	if b > len(line) {
		b = len(line)
	}
	if a > b {
		return ""
	}
	return line[a-1 : b]
}

// TypeTuple identifies a record type by its section and subsection columns
type TypeTuple struct {
	Section    string
	Subsection string
}

// TupleOf extracts the raw (section, subsection) tuple from columns 5 and 13
func TupleOf(line string) TypeTuple {
	return TypeTuple{Section: Slice(line, 5, 5), Subsection: Slice(line, 13, 13)}
}

// TypeCode returns the canonical two-character type code for a line,
// applying the alias table to the raw section+subsection combination
func TypeCode(line string) string {
	t := TupleOf(line)
	raw := t.Section + t.Subsection
	if canonical, ok := typeCodeAliases[raw]; ok {
		return canonical
	}
	return raw
}

// ContinuationNumber returns the continuation sequence identifier at the
// given column, or "" when the line is a primary record. Empty, blank,
// "0", and "1" all mean primary.
func ContinuationNumber(line string, column int) string {
	c := Slice(line, column, column)
	switch c {
	case "", "0", "1", " ":
		return ""
	}
	return c
}

// ApplicationType returns the continuation application type at the given
// column, trimmed and uppercased. A zero column means the record type has
// no application-type column.
func ApplicationType(line string, column int) string {
	if column <= 0 {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(Slice(line, column, column)))
}

// Payload returns columns 1..123, the portion of a line that participates
// in structural equality
func Payload(line string) string {
	return Slice(line, 1, PayloadEnd)
}

// ICAO returns the airport identifier from columns 7..10, trimmed and uppercased
func ICAO(line string) string {
	return strings.ToUpper(strings.TrimSpace(Slice(line, 7, 10)))
}

// AreaCode returns the geographic area code from columns 2..4, trimmed
// and uppercased
func AreaCode(line string) string {
	return strings.ToUpper(strings.TrimSpace(Slice(line, 2, 4)))
}

// IdentKey returns the raw identifier substring, columns 1..21, shared by
// a primary line and all of its continuations
func IdentKey(line string) string {
	return Slice(line, 1, 21)
}
