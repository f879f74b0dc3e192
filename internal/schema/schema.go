// Package schema is the registry of record-type layouts. Each supported
// type is declared as data: its section/subsection tuple, ordered column
// list, continuation and application-type columns, and optional hooks.
// New record types are added here (or via TOML overlays) without touching
// the grouping or delta engines.
package schema

import (
	"fmt"
	"sort"

	"github.com/ozguraltinkurt/GSD-Compare/internal/arinc"
)

// Field names shared between projection and type-specific hooks.
const (
	// RawPayloadField holds the untouched 1..123 payload of the primary line
	RawPayloadField = "primary_1_123"
	// ChangedCountField holds the number of changed fields on a modified row
	ChangedCountField = "changed_field_count"
	// ChangedFieldsField holds the comma-joined changed field names
	ChangedFieldsField = "changed_fields"
)

// Column declares one output field of a record type. A zero Start means
// the field holds the entire 1..123 raw payload verbatim.
type Column struct {
	Name  string
	Start int
	End   int
}

// Raw reports whether the column holds the raw payload rather than a slice
func (c Column) Raw() bool {
	return c.Start == 0
}

// PostprocessFunc mutates a built row in place for type-specific cleanup
type PostprocessFunc func(row map[string]string)

// ViewInput carries the four already-built row sets of one type into an
// extra-view handler
type ViewInput struct {
	Code            string
	RegionRequested bool
	BaseHeader      []string
	ModifiedHeader  []string
	Current         []map[string]string
	Added           []map[string]string
	Removed         []map[string]string
	Modified        []map[string]string
}

// DerivedSet is one additional tabular output produced by an extra view
type DerivedSet struct {
	Kind   string // "current", "added", "removed", or "modified"
	Suffix string // output name suffix, e.g. "dv_ils_dme"
	Header []string
	Rows   []map[string]string
}

// ViewResult describes the derived outputs of an extra view.
// ReplaceDefaults drops the type's four default files; RemoveSuffixes
// lists derived slices whose previously-produced files must be removed
// because the view is not applicable for this run.
type ViewResult struct {
	Sets            []DerivedSet
	ReplaceDefaults bool
	RemoveSuffixes  []string
}

// ExtraViewFunc produces type-specific derived output subsets
type ExtraViewFunc func(in ViewInput) ViewResult

// TypeSpec declares one record type as pure data plus optional hooks
type TypeSpec struct {
	Code        string
	Section     string
	Subsection  string
	ContColumn  int
	ApplColumn  int
	Columns     []Column
	Postprocess PostprocessFunc
	ExtraView   ExtraViewFunc
}

// Tuple returns the (section, subsection) pair used for line filtering
func (s *TypeSpec) Tuple() arinc.TypeTuple {
	return arinc.TypeTuple{Section: s.Section, Subsection: s.Subsection}
}

// Registry holds the known record types in registration order
type Registry struct {
	specs map[string]*TypeSpec
	order []string
}

// NewRegistry returns a registry populated with the built-in types
func NewRegistry() *Registry {
	r := &Registry{specs: make(map[string]*TypeSpec)}
	for _, spec := range builtinSpecs() {
		// Built-ins are declared statically and cannot collide
		_ = r.Register(spec)
	}
	return r
}

// Register adds a type spec. Redefining an existing code is an error.
func (r *Registry) Register(spec *TypeSpec) error {
	if spec.Code == "" {
		return fmt.Errorf("type spec has empty code")
	}
	if _, exists := r.specs[spec.Code]; exists {
		return fmt.Errorf("type %q is already registered", spec.Code)
	}
	if spec.ContColumn == 0 {
		spec.ContColumn = arinc.DefaultContColumn
	}
	r.specs[spec.Code] = spec
	r.order = append(r.order, spec.Code)
	return nil
}

// Lookup returns the spec for a canonical type code
func (r *Registry) Lookup(code string) (*TypeSpec, bool) {
	spec, ok := r.specs[code]
	return spec, ok
}

// Codes returns the registered type codes in registration order
func (r *Registry) Codes() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ContColumn returns the continuation-number column for a type code,
// falling back to the default column for unknown types
func (r *Registry) ContColumn(code string) int {
	if spec, ok := r.specs[code]; ok {
		return spec.ContColumn
	}
	return arinc.DefaultContColumn
}

// ApplColumn returns the application-type column for a type code, or 0
// when the type has no such column configured
func (r *Registry) ApplColumn(code string) int {
	if spec, ok := r.specs[code]; ok {
		return spec.ApplColumn
	}
	return 0
}

// SortContNumbers orders continuation numbers by (length, value), the
// natural numeric-like order for single and double character identifiers
func SortContNumbers(numbers []string) {
	sort.Slice(numbers, func(i, j int) bool {
		return LessContNumber(numbers[i], numbers[j])
	})
}

// LessContNumber is the (length, value) comparison for continuation numbers
func LessContNumber(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
