package group

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ozguraltinkurt/GSD-Compare/internal/arinc"
	"github.com/ozguraltinkurt/GSD-Compare/internal/schema"
)

// pgLine builds a PG record for the given airport with optional
// continuation number and application type and a distinguishing marker
// in the payload
func pgLine(icao, contNo, appl, marker string) string {
	buf := []byte(strings.Repeat(" ", arinc.Width))
	copy(buf[1:], "EUR")
	buf[4] = 'P'
	copy(buf[6:], icao)
	buf[12] = 'G'
	copy(buf[13:], "RW18L")
	if contNo != "" {
		copy(buf[21:], contNo)
	}
	if appl != "" {
		copy(buf[22:], appl)
	}
	copy(buf[30:], marker)
	return string(buf)
}

func TestKeyLess(t *testing.T) {
	tests := []struct {
		name string
		a, b Key
		want bool
	}{
		{"type orders first", Key{Type: "PG", ID: "z"}, Key{Type: "PI", ID: "a"}, true},
		{"id breaks ties", Key{Type: "PG", ID: "a"}, Key{Type: "PG", ID: "b"}, true},
		{"equal is not less", Key{Type: "PG", ID: "a"}, Key{Type: "PG", ID: "a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Less(tt.b); got != tt.want {
				t.Errorf("Less = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCombine(t *testing.T) {
	reg := schema.NewRegistry()
	primary := pgLine("LTAC", "", "", "FIRST")
	latePrimary := pgLine("LTAC", "0", "", "SECOND")
	cont2a := pgLine("LTAC", "2", "A", "NOTE1")
	cont2b := pgLine("LTAC", "2", "N", "NOTE2")
	cont3 := pgLine("LTAC", "3", "T", "TIME")

	entities := Combine([]string{primary, latePrimary, cont2a, cont2b, cont3}, reg)
	if len(entities) != 1 {
		t.Fatalf("Combine produced %d entities, want 1", len(entities))
	}

	var e *Entity
	for _, v := range entities {
		e = v
	}
	// first primary wins
	if e.Primary != primary {
		t.Errorf("Primary = %q marker, want the first primary line", arinc.Slice(e.Primary, 31, 36))
	}
	// last continuation at a number wins
	if e.Conts["2"].Line != cont2b {
		t.Errorf("cont 2 line marker = %q, want NOTE2", arinc.Slice(e.Conts["2"].Line, 31, 36))
	}
	if e.Conts["2"].Appl != "N" {
		t.Errorf("cont 2 appl = %q, want N", e.Conts["2"].Appl)
	}
	if e.Conts["3"].Appl != "T" {
		t.Errorf("cont 3 appl = %q, want T", e.Conts["3"].Appl)
	}
	if got := e.ContNumbers(); !reflect.DeepEqual(got, []string{"2", "3"}) {
		t.Errorf("ContNumbers = %v, want [2 3]", got)
	}
	if e.Sample != primary {
		t.Error("Sample should be the first line seen")
	}
}

func TestCombineIdempotent(t *testing.T) {
	reg := schema.NewRegistry()
	lines := []string{
		pgLine("LTAC", "", "", "P"),
		pgLine("LTAC", "2", "A", "C"),
		pgLine("LTFM", "", "", "P"),
	}

	once := Combine(lines, reg)
	twice := Combine(lines, reg)
	if !reflect.DeepEqual(SortedKeys(once), SortedKeys(twice)) {
		t.Error("Combine is not deterministic across runs")
	}
	if len(once) != 2 {
		t.Errorf("Combine produced %d entities, want 2", len(once))
	}
}

func TestReference(t *testing.T) {
	reg := schema.NewRegistry()

	t.Run("primary preferred", func(t *testing.T) {
		primary := pgLine("LTAC", "", "", "P")
		entities := Combine([]string{pgLine("LTAC", "2", "A", "C"), primary}, reg)
		for _, e := range entities {
			if e.Reference() != primary {
				t.Error("Reference should be the primary line")
			}
		}
	})

	t.Run("first continuation fallback", func(t *testing.T) {
		cont2 := pgLine("LTAC", "2", "A", "C2")
		entities := Combine([]string{pgLine("LTAC", "3", "A", "C3"), cont2}, reg)
		for _, e := range entities {
			if e.HasPrimary() {
				t.Fatal("entity should have no primary")
			}
			if e.Reference() != cont2 {
				t.Error("Reference should fall back to the lowest continuation")
			}
		}
	})
}

func TestOrphanICAOs(t *testing.T) {
	reg := schema.NewRegistry()

	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			"continuation only airport",
			[]string{pgLine("LTAC", "2", "A", "C")},
			[]string{"LTAC"},
		},
		{
			"primary elsewhere under same airport keeps it",
			[]string{
				pgLine("LTAC", "2", "A", "C"),
				piLine("LTAC", ""),
			},
			nil,
		},
		{
			"healthy airport",
			[]string{pgLine("LTAC", "", "", "P"), pgLine("LTAC", "2", "A", "C")},
			nil,
		},
		{
			"mixed snapshot",
			[]string{
				pgLine("LTAC", "", "", "P"),
				pgLine("LTFM", "2", "A", "C"),
			},
			[]string{"LTFM"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrphanICAOs(tt.lines, reg)
			if len(got) != len(tt.want) {
				t.Fatalf("OrphanICAOs = %v, want %v", got, tt.want)
			}
			for _, icao := range tt.want {
				if !got[icao] {
					t.Errorf("OrphanICAOs missing %s", icao)
				}
			}
		})
	}
}

// piLine builds a PI record for orphan tests; a primary of any type
// under an airport clears the orphan flag
func piLine(icao, contNo string) string {
	buf := []byte(strings.Repeat(" ", arinc.Width))
	copy(buf[1:], "EUR")
	buf[4] = 'P'
	copy(buf[6:], icao)
	buf[12] = 'I'
	copy(buf[13:], "IANK")
	if contNo != "" {
		copy(buf[21:], contNo)
	}
	return string(buf)
}

func TestDiscardICAOs(t *testing.T) {
	keep := pgLine("LTFM", "", "", "P")
	drop := pgLine("LTAC", "", "", "P")

	got := DiscardICAOs([]string{keep, drop}, map[string]bool{"LTAC": true})
	if len(got) != 1 || got[0] != keep {
		t.Errorf("DiscardICAOs kept %d lines, want only LTFM", len(got))
	}

	// empty set is a no-op
	lines := []string{keep, drop}
	if got := DiscardICAOs(lines, nil); len(got) != 2 {
		t.Errorf("DiscardICAOs(nil) dropped lines")
	}
}

func TestSortedKeys(t *testing.T) {
	entities := map[Key]*Entity{
		{Type: "PI", ID: "b"}: {},
		{Type: "PG", ID: "z"}: {},
		{Type: "PG", ID: "a"}: {},
	}

	want := []Key{
		{Type: "PG", ID: "a"},
		{Type: "PG", ID: "z"},
		{Type: "PI", ID: "b"},
	}
	if got := SortedKeys(entities); !reflect.DeepEqual(got, want) {
		t.Errorf("SortedKeys = %v, want %v", got, want)
	}
}
