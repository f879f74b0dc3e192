package arinc

import "strings"

// Filter is the line-level allow-set applied while reading a snapshot.
// A nil ICAOs or Areas map means "accept all" for that dimension.
type Filter struct {
	Types map[TypeTuple]bool
	ICAOs map[string]bool
	Areas map[string]bool
}

// ParseList splits a comma-separated filter argument into an allow-set.
// Empty input yields nil, meaning the filter is absent.
func ParseList(arg string) map[string]bool {
	if arg == "" {
		return nil
	}
	set := make(map[string]bool)
	for _, v := range strings.Split(arg, ",") {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// SetOf builds an allow-set from a slice of values. Empty input yields nil.
func SetOf(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// Matches reports whether a normalized line passes the type, ICAO, and
// area allow-sets
func (f Filter) Matches(line string) bool {
	if f.Types != nil && !f.Types[TupleOf(line)] {
		return false
	}
	if f.ICAOs != nil && !f.ICAOs[ICAO(line)] {
		return false
	}
	if f.Areas != nil && !f.Areas[AreaCode(line)] {
		return false
	}
	return true
}
