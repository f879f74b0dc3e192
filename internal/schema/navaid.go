package schema

import "strings"

// vhfNavaidSpec covers DV VHF navaid records. The raw subsection column
// is blank for this section; the alias table canonicalizes "D " to "DV".
// DV output is split into derived ILS/DME and VOR views instead of the
// default four files.
func vhfNavaidSpec() *TypeSpec {
	return &TypeSpec{
		Code:       "DV",
		Section:    "D",
		Subsection: " ",
		ContColumn: 22,
		ApplColumn: 23,
		Columns: []Column{
			{Name: "area_code", Start: 2, End: 4},
			{Name: "subsection_code", Start: 6, End: 6},
			{Name: "airport_icao", Start: 7, End: 10},
			{Name: "icao_code", Start: 11, End: 12},
			{Name: "ils_ident", Start: 14, End: 17},
			{Name: "navaid_icao_code", Start: 20, End: 21},
			{Name: "vor_frequency", Start: 23, End: 27},
			{Name: "navaid_class", Start: 28, End: 32},
			{Name: "vor_latitude", Start: 33, End: 41},
			{Name: "vor_longitude", Start: 42, End: 51},
			{Name: "dme_ident", Start: 52, End: 55},
			{Name: "dme_latitude", Start: 56, End: 64},
			{Name: "dme_longitude", Start: 65, End: 74},
			{Name: "station_declination", Start: 75, End: 79},
			{Name: "dme_elevation", Start: 80, End: 84},
			{Name: "figure_of_merit", Start: 85, End: 85},
			{Name: "ils_dme_bias", Start: 86, End: 87},
			{Name: "frequency_protection", Start: 88, End: 90},
			{Name: "datum_code", Start: 91, End: 93},
			{Name: "vor_name", Start: 94, End: 123},
			{Name: RawPayloadField},
		},
		Postprocess: func(row map[string]string) {
			for _, key := range []string{"ils_ident", "vor_name", "airport_icao"} {
				if row[key] != "" {
					row[key] = strings.TrimSpace(row[key])
				}
			}
		},
		ExtraView: vhfExtraView,
	}
}

// isILSDME selects navaids flagged as ILS/DME: byte 29 of the raw primary
// payload is the navaid class "I" marker
func isILSDME(row map[string]string) bool {
	raw := row[RawPayloadField]
	return len(raw) >= 29 && (raw[28] == 'I' || raw[28] == 'i')
}

// isVOR selects navaids whose class field starts with V
func isVOR(row map[string]string) bool {
	return strings.HasPrefix(strings.ToUpper(row["navaid_class"]), "V")
}

// vhfExtraView replaces the default DV outputs with an ILS/DME subset
// plus, when an area/region filter was requested, a VOR subset with the
// ils_ident field renamed to vor_ident. When the VOR view is not
// applicable its previously-produced files must be removed, not left stale.
func vhfExtraView(in ViewInput) ViewResult {
	ilsSuffix := strings.ToLower(in.Code) + "_ils_dme"
	vorSuffix := strings.ToLower(in.Code) + "_vor"

	result := ViewResult{ReplaceDefaults: true}

	result.Sets = append(result.Sets,
		DerivedSet{Kind: "current", Suffix: ilsSuffix, Header: in.BaseHeader, Rows: selectRows(in.Current, isILSDME)},
		DerivedSet{Kind: "added", Suffix: ilsSuffix, Header: in.BaseHeader, Rows: selectRows(in.Added, isILSDME)},
		DerivedSet{Kind: "removed", Suffix: ilsSuffix, Header: in.BaseHeader, Rows: selectRows(in.Removed, isILSDME)},
		DerivedSet{Kind: "modified", Suffix: ilsSuffix, Header: in.ModifiedHeader, Rows: selectRows(in.Modified, isILSDME)},
	)

	if !in.RegionRequested {
		result.RemoveSuffixes = append(result.RemoveSuffixes, vorSuffix)
		return result
	}

	vorBaseHeader := renameHeader(in.BaseHeader, "ils_ident", "vor_ident")
	vorModHeader := renameHeader(in.ModifiedHeader, "ils_ident", "vor_ident")

	result.Sets = append(result.Sets,
		DerivedSet{Kind: "current", Suffix: vorSuffix, Header: vorBaseHeader, Rows: renameIdentField(selectRows(in.Current, isVOR), "ils_ident", "vor_ident")},
		DerivedSet{Kind: "added", Suffix: vorSuffix, Header: vorBaseHeader, Rows: renameIdentField(selectRows(in.Added, isVOR), "ils_ident", "vor_ident")},
		DerivedSet{Kind: "removed", Suffix: vorSuffix, Header: vorBaseHeader, Rows: renameIdentField(selectRows(in.Removed, isVOR), "ils_ident", "vor_ident")},
		DerivedSet{Kind: "modified", Suffix: vorSuffix, Header: vorModHeader, Rows: renameIdentField(selectRows(in.Modified, isVOR), "ils_ident", "vor_ident")},
	)
	return result
}

func selectRows(rows []map[string]string, keep func(map[string]string) bool) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// renameIdentField copies rows with oldKey renamed to newKey, rewriting
// any changed-field list to match
func renameIdentField(rows []map[string]string, oldKey, newKey string) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		renamed := make(map[string]string, len(r))
		for k, v := range r {
			renamed[k] = v
		}
		if v, ok := renamed[oldKey]; ok {
			delete(renamed, oldKey)
			renamed[newKey] = v
		}
		if changed := renamed[ChangedFieldsField]; changed != "" {
			parts := strings.Split(changed, ",")
			for i, p := range parts {
				if p == oldKey {
					parts[i] = newKey
				}
			}
			renamed[ChangedFieldsField] = strings.Join(parts, ",")
		}
		out = append(out, renamed)
	}
	return out
}

func renameHeader(header []string, oldKey, newKey string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if h == oldKey {
			out[i] = newKey
		} else {
			out[i] = h
		}
	}
	return out
}
