// Package rows flattens entities into ordered field→string mappings for
// tabular export: schema-declared primary fields, the raw primary payload,
// and per-continuation-number triplets.
package rows

import (
	"strings"

	"github.com/ozguraltinkurt/GSD-Compare/internal/arinc"
	"github.com/ozguraltinkurt/GSD-Compare/internal/group"
	"github.com/ozguraltinkurt/GSD-Compare/internal/schema"
)

// ContNumbersAcross collects every continuation number observed in any of
// the given entity mappings, in (length, value) order. The header must
// cover both snapshots so old and new rows stay field-compatible.
func ContNumbersAcross(mappings ...map[group.Key]*group.Entity) []string {
	seen := make(map[string]bool)
	for _, m := range mappings {
		for _, e := range m {
			for n := range e.Conts {
				seen[n] = true
			}
		}
	}
	numbers := make([]string, 0, len(seen))
	for n := range seen {
		numbers = append(numbers, n)
	}
	schema.SortContNumbers(numbers)
	return numbers
}

// BuildHeader returns the ordered field names for a type: the declared
// columns followed by three synthetic fields per observed continuation number
func BuildHeader(spec *schema.TypeSpec, contNumbers []string) []string {
	header := make([]string, 0, len(spec.Columns)+3*len(contNumbers))
	for _, col := range spec.Columns {
		header = append(header, col.Name)
	}
	for _, n := range contNumbers {
		prefix := "cont#" + n
		header = append(header, prefix+"_appl_code", prefix+"_appl_label", prefix+"_1_123")
	}
	return header
}

// ModifiedHeader extends a base header with the changed-field annotations
func ModifiedHeader(base []string) []string {
	out := make([]string, 0, len(base)+2)
	out = append(out, base...)
	return append(out, schema.ChangedCountField, schema.ChangedFieldsField)
}

// BuildRow flattens one entity against a header. The reference line is
// the primary when present, else the first continuation; with no reference
// line at all every header field defaults to "". When a primary exists it
// is privileged: the raw payload field holds the primary's payload even if
// a raw column was first filled from a continuation reference.
func BuildRow(spec *schema.TypeSpec, e *group.Entity, header []string) map[string]string {
	row := make(map[string]string, len(header))

	ref := e.Reference()
	if ref != "" {
		for _, col := range spec.Columns {
			if col.Raw() {
				row[col.Name] = arinc.Payload(ref)
			} else {
				row[col.Name] = strings.TrimSpace(arinc.Slice(ref, col.Start, col.End))
			}
		}
		if e.HasPrimary() {
			row[schema.RawPayloadField] = arinc.Payload(e.Primary)
		}
	}

	inHeader := make(map[string]bool, len(header))
	for _, h := range header {
		inHeader[h] = true
	}
	for _, n := range e.ContNumbers() {
		cont := e.Conts[n]
		prefix := "cont#" + n
		if inHeader[prefix+"_appl_code"] {
			row[prefix+"_appl_code"] = cont.Appl
		}
		if inHeader[prefix+"_appl_label"] {
			row[prefix+"_appl_label"] = schema.ApplicationTypeLabel(cont.Appl)
		}
		if inHeader[prefix+"_1_123"] {
			row[prefix+"_1_123"] = arinc.Payload(cont.Line)
		}
	}

	if spec.Postprocess != nil {
		spec.Postprocess(row)
	}

	// Backfill any still-unset header field
	for _, h := range header {
		if _, ok := row[h]; !ok {
			row[h] = ""
		}
	}
	return row
}

// ChangedFields compares two projected rows field-by-field in header
// order and returns the names whose string values differ. Raw-payload
// columns are not reported: they mirror the payload-level comparison that
// already classified the entity as modified, and listing them would mask
// the case where no named field covers the differing bytes. A modified
// entity can therefore legitimately report zero changed visible fields.
func ChangedFields(spec *schema.TypeSpec, oldRow, newRow map[string]string, header []string) []string {
	rawFields := make(map[string]bool)
	for _, col := range spec.Columns {
		if col.Raw() {
			rawFields[col.Name] = true
		}
	}

	var changed []string
	for _, field := range header {
		if rawFields[field] {
			continue
		}
		if oldRow[field] != newRow[field] {
			changed = append(changed, field)
		}
	}
	return changed
}
