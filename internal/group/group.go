// Package group combines primary and continuation lines into logical
// entities keyed by type code plus identifier substring, and detects
// airports whose record set contains continuations with no primary.
package group

import (
	"sort"

	"github.com/ozguraltinkurt/GSD-Compare/internal/arinc"
	"github.com/ozguraltinkurt/GSD-Compare/internal/schema"
)

// Key is the identity of an entity: canonical type code plus the raw
// columns 1..21 shared by a primary line and all of its continuations.
// Identity never changes after creation.
type Key struct {
	Type string
	ID   string
}

// Less orders keys by type code then identifier, the deterministic order
// for all delta output
func (k Key) Less(other Key) bool {
	if k.Type != other.Type {
		return k.Type < other.Type
	}
	return k.ID < other.ID
}

// KeyOf computes the entity key for a normalized line
func KeyOf(line string) Key {
	return Key{Type: arinc.TypeCode(line), ID: arinc.IdentKey(line)}
}

// Continuation is one continuation line with its application type
type Continuation struct {
	Line string
	Appl string
}

// Entity is the logical record formed by a primary line and its
// continuations. Primary is "" when no primary was seen; Sample is the
// first line seen for the key and serves as the fallback reference.
type Entity struct {
	Type       string
	Section    string
	Subsection string
	Primary    string
	Conts      map[string]Continuation
	Sample     string
}

// HasPrimary reports whether a primary line was seen for this entity
func (e *Entity) HasPrimary() bool {
	return e.Primary != ""
}

// ContNumbers returns the continuation numbers in (length, value) order
func (e *Entity) ContNumbers() []string {
	numbers := make([]string, 0, len(e.Conts))
	for n := range e.Conts {
		numbers = append(numbers, n)
	}
	schema.SortContNumbers(numbers)
	return numbers
}

// Reference returns the line used for field extraction: the primary when
// present, else the first continuation in (length, value) order, else "".
// Note the asymmetry with orphan detection, which falls back to Sample.
func (e *Entity) Reference() string {
	if e.HasPrimary() {
		return e.Primary
	}
	numbers := e.ContNumbers()
	if len(numbers) > 0 {
		return e.Conts[numbers[0]].Line
	}
	return ""
}

// orphanReference is the line orphan detection reads the ICAO from:
// primary when present, else the first line seen for the key
func (e *Entity) orphanReference() string {
	if e.HasPrimary() {
		return e.Primary
	}
	return e.Sample
}

// Combine builds the entity mapping for one snapshot in a single pass.
// The first primary for a key wins and later primaries are dropped;
// a duplicate continuation number overwrites the earlier entry.
func Combine(lines []string, reg *schema.Registry) map[Key]*Entity {
	entities := make(map[Key]*Entity)
	for _, line := range lines {
		key := KeyOf(line)
		e, ok := entities[key]
		if !ok {
			tuple := arinc.TupleOf(line)
			e = &Entity{
				Type:       key.Type,
				Section:    tuple.Section,
				Subsection: tuple.Subsection,
				Conts:      make(map[string]Continuation),
				Sample:     line,
			}
			entities[key] = e
		}

		contNo := arinc.ContinuationNumber(line, reg.ContColumn(key.Type))
		if contNo == "" {
			if !e.HasPrimary() {
				e.Primary = line
			}
			continue
		}
		appl := arinc.ApplicationType(line, reg.ApplColumn(key.Type))
		e.Conts[contNo] = Continuation{Line: line, Appl: appl}
	}
	return entities
}

// OrphanICAOs returns the airports whose record set contains at least one
// continuation-bearing entity but not a single primary-bearing one. A
// continuation with no primary anywhere under an airport indicates a data
// quality anomaly; the whole airport is discarded to avoid misleading
// partial deltas.
func OrphanICAOs(lines []string, reg *schema.Registry) map[string]bool {
	entities := Combine(lines, reg)

	primaryCount := make(map[string]int)
	contCount := make(map[string]int)
	for _, e := range entities {
		icao := arinc.ICAO(e.orphanReference())
		if icao == "" {
			continue
		}
		if e.HasPrimary() {
			primaryCount[icao]++
		}
		if len(e.Conts) > 0 {
			contCount[icao]++
		}
	}

	orphans := make(map[string]bool)
	for icao, n := range contCount {
		if n > 0 && primaryCount[icao] == 0 {
			orphans[icao] = true
		}
	}
	return orphans
}

// DiscardICAOs filters out every line belonging to one of the given airports
func DiscardICAOs(lines []string, icaos map[string]bool) []string {
	if len(icaos) == 0 {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if icaos[arinc.ICAO(line)] {
			continue
		}
		out = append(out, line)
	}
	return out
}

// SortedKeys returns the entity keys in deterministic order
func SortedKeys(entities map[Key]*Entity) []Key {
	keys := make([]Key, 0, len(entities))
	for k := range entities {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
