// Package delta matches entity keys across two snapshots and classifies
// each entity as added, removed, or modified. Equality is defined at the
// canonical payload level, not at the projected row level.
package delta

import (
	"sort"
	"strings"

	"github.com/ozguraltinkurt/GSD-Compare/internal/arinc"
	"github.com/ozguraltinkurt/GSD-Compare/internal/group"
)

// Result classifies the keys of two entity mappings. All three slices are
// in sorted-key order so output is reproducible given identical inputs.
type Result struct {
	Added    []group.Key
	Removed  []group.Key
	Modified []group.Key
}

// CanonicalPayload derives the comparison string for an entity: the
// primary's 1..123 payload, then each continuation's payload tagged with
// its number and application type, in (length, value) continuation order.
// Two entities are structurally equal iff these strings are identical.
func CanonicalPayload(e *group.Entity) string {
	var parts []string
	if e.HasPrimary() {
		parts = append(parts, arinc.Payload(e.Primary))
	}
	for _, n := range e.ContNumbers() {
		cont := e.Conts[n]
		appl := cont.Appl
		if appl == "" {
			appl = "_"
		}
		parts = append(parts, "[C"+n+":"+appl+"]"+arinc.Payload(cont.Line))
	}
	return strings.Join(parts, "|")
}

// Compute classifies every key of the old and new entity mappings.
// Neither mapping is mutated.
func Compute(oldEntities, newEntities map[group.Key]*group.Entity) Result {
	var result Result

	for k := range newEntities {
		if _, exists := oldEntities[k]; !exists {
			result.Added = append(result.Added, k)
		}
	}
	for k, oldEntity := range oldEntities {
		newEntity, exists := newEntities[k]
		if !exists {
			result.Removed = append(result.Removed, k)
			continue
		}
		if CanonicalPayload(oldEntity) != CanonicalPayload(newEntity) {
			result.Modified = append(result.Modified, k)
		}
	}

	// Sort for deterministic output
	sortKeys(result.Added)
	sortKeys(result.Removed)
	sortKeys(result.Modified)
	return result
}

func sortKeys(keys []group.Key) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
}
