package rows

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ozguraltinkurt/GSD-Compare/internal/arinc"
	"github.com/ozguraltinkurt/GSD-Compare/internal/group"
	"github.com/ozguraltinkurt/GSD-Compare/internal/schema"
)

func pgSpec(t *testing.T) *schema.TypeSpec {
	t.Helper()
	spec, ok := schema.NewRegistry().Lookup("PG")
	if !ok {
		t.Fatal("PG spec missing")
	}
	return spec
}

// runwayLine builds a PG record with the given runway id and length
func runwayLine(icao, runway, lengthFt, contNo string) string {
	buf := []byte(strings.Repeat(" ", arinc.Width))
	copy(buf[1:], "EUR")
	buf[4] = 'P'
	copy(buf[6:], icao)
	buf[12] = 'G'
	copy(buf[13:], runway)
	if contNo != "" {
		copy(buf[21:], contNo)
	}
	copy(buf[22:], lengthFt)
	return string(buf)
}

func entityOf(t *testing.T, lines ...string) *group.Entity {
	t.Helper()
	entities := group.Combine(lines, schema.NewRegistry())
	if len(entities) != 1 {
		t.Fatalf("lines form %d entities, want 1", len(entities))
	}
	for _, e := range entities {
		return e
	}
	return nil
}

func TestContNumbersAcross(t *testing.T) {
	oldEntities := map[group.Key]*group.Entity{
		{Type: "PG", ID: "a"}: {Conts: map[string]group.Continuation{"3": {}, "10": {}}},
	}
	newEntities := map[group.Key]*group.Entity{
		{Type: "PG", ID: "a"}: {Conts: map[string]group.Continuation{"2": {}}},
	}

	got := ContNumbersAcross(oldEntities, newEntities)
	if !reflect.DeepEqual(got, []string{"2", "3", "10"}) {
		t.Errorf("ContNumbersAcross = %v, want [2 3 10]", got)
	}
}

func TestBuildHeader(t *testing.T) {
	spec := pgSpec(t)
	header := BuildHeader(spec, []string{"2", "10"})

	if header[0] != "area_code" {
		t.Errorf("header starts with %q, want area_code", header[0])
	}

	wantTail := []string{
		"cont#2_appl_code", "cont#2_appl_label", "cont#2_1_123",
		"cont#10_appl_code", "cont#10_appl_label", "cont#10_1_123",
	}
	tail := header[len(header)-len(wantTail):]
	if !reflect.DeepEqual(tail, wantTail) {
		t.Errorf("header tail = %v, want %v", tail, wantTail)
	}

	mod := ModifiedHeader(header)
	if len(mod) != len(header)+2 {
		t.Fatalf("ModifiedHeader length = %d, want %d", len(mod), len(header)+2)
	}
	if mod[len(mod)-2] != schema.ChangedCountField || mod[len(mod)-1] != schema.ChangedFieldsField {
		t.Errorf("ModifiedHeader tail = %v", mod[len(mod)-2:])
	}
}

func TestBuildRow(t *testing.T) {
	spec := pgSpec(t)
	primary := runwayLine("LTAC", "RW03R", "09000", "")
	cont := runwayLine("LTAC", "RW03R", "", "2")
	e := entityOf(t, primary, cont)

	header := BuildHeader(spec, []string{"2"})
	row := BuildRow(spec, e, header)

	if row["icao"] != "LTAC" {
		t.Errorf("icao = %q, want LTAC", row["icao"])
	}
	if row["runway_id"] != "RW03R" {
		t.Errorf("runway_id = %q, want RW03R", row["runway_id"])
	}
	if row["rwy_length_ft"] != "09000" {
		t.Errorf("rwy_length_ft = %q, want 09000", row["rwy_length_ft"])
	}
	if row[schema.RawPayloadField] != arinc.Payload(primary) {
		t.Error("raw payload should come from the primary line")
	}
	if row["cont#2_1_123"] != arinc.Payload(cont) {
		t.Error("continuation payload missing from the row")
	}

	// every header field is present
	for _, h := range header {
		if _, ok := row[h]; !ok {
			t.Errorf("row missing header field %q", h)
		}
	}
}

func TestBuildRowPrimaryPrivileged(t *testing.T) {
	spec := pgSpec(t)
	primary := runwayLine("LTAC", "RW03R", "09000", "")
	cont := runwayLine("LTAC", "RW03R", "", "2")
	e := entityOf(t, primary, cont)

	header := BuildHeader(spec, []string{"2"})
	row := BuildRow(spec, e, header)
	if row[schema.RawPayloadField] != arinc.Payload(primary) {
		t.Error("raw payload must hold the primary payload when a primary exists")
	}
}

func TestBuildRowContinuationReference(t *testing.T) {
	spec := pgSpec(t)
	cont := runwayLine("LTAC", "RW03R", "", "2")
	e := entityOf(t, cont)

	header := BuildHeader(spec, []string{"2"})
	row := BuildRow(spec, e, header)
	// fields are sliced from the continuation when no primary exists
	if row["icao"] != "LTAC" {
		t.Errorf("icao = %q, want LTAC from continuation reference", row["icao"])
	}
	if row[schema.RawPayloadField] != arinc.Payload(cont) {
		t.Error("raw payload should fall back to the continuation reference")
	}
}

func TestBuildRowEmptyEntity(t *testing.T) {
	spec := pgSpec(t)
	e := &group.Entity{Type: "PG", Conts: map[string]group.Continuation{}}

	header := BuildHeader(spec, nil)
	row := BuildRow(spec, e, header)
	for _, h := range header {
		if row[h] != "" {
			t.Errorf("field %q = %q, want empty", h, row[h])
		}
	}
}

func TestChangedFields(t *testing.T) {
	spec := pgSpec(t)
	header := BuildHeader(spec, nil)

	oldRow := BuildRow(spec, entityOf(t, runwayLine("LTAC", "RW03R", "09000", "")), header)
	newRow := BuildRow(spec, entityOf(t, runwayLine("LTAC", "RW03R", "09500", "")), header)

	got := ChangedFields(spec, oldRow, newRow, header)
	if !reflect.DeepEqual(got, []string{"rwy_length_ft"}) {
		t.Errorf("ChangedFields = %v, want [rwy_length_ft]", got)
	}
}

func TestChangedFieldsSkipsRawColumns(t *testing.T) {
	spec := pgSpec(t)
	header := BuildHeader(spec, nil)

	// the differing byte sits in a column no declared field covers
	base := runwayLine("LTAC", "RW03R", "09000", "")
	buf := []byte(base)
	buf[120] = 'X'
	shifted := string(buf)

	oldRow := BuildRow(spec, entityOf(t, base), header)
	newRow := BuildRow(spec, entityOf(t, shifted), header)

	if got := ChangedFields(spec, oldRow, newRow, header); len(got) != 0 {
		t.Errorf("ChangedFields = %v, want none for a raw-only difference", got)
	}
}

func TestChangedFieldsIdentical(t *testing.T) {
	spec := pgSpec(t)
	header := BuildHeader(spec, nil)
	row := BuildRow(spec, entityOf(t, runwayLine("LTAC", "RW03R", "09000", "")), header)

	if got := ChangedFields(spec, row, row, header); got != nil {
		t.Errorf("ChangedFields of identical rows = %v, want nil", got)
	}
}
