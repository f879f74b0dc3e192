package schema

import "strings"

// builtinSpecs declares the four supported record types. Column layouts
// are pure data; only the post-process hooks and the VHF extra view carry
// type-specific logic.
func builtinSpecs() []*TypeSpec {
	return []*TypeSpec{runwaySpec(), localizerSpec(), communicationsSpec(), vhfNavaidSpec()}
}

// runwaySpec covers PG airport runway records
func runwaySpec() *TypeSpec {
	return &TypeSpec{
		Code:       "PG",
		Section:    "P",
		Subsection: "G",
		ContColumn: 22,
		ApplColumn: 23,
		Columns: []Column{
			{Name: "area_code", Start: 2, End: 4},
			{Name: "icao", Start: 7, End: 10},
			{Name: "runway_id", Start: 14, End: 18},
			{Name: "rwy_length_ft", Start: 23, End: 27},
			{Name: "rwy_mag_brg_tenths", Start: 28, End: 31},
			{Name: "lat_raw", Start: 33, End: 41},
			{Name: "lon_raw", Start: 42, End: 51},
			{Name: "rwy_grad_pct100", Start: 52, End: 56},
			{Name: "lthr_elev_ft", Start: 67, End: 71},
			{Name: "dthr_ft", Start: 72, End: 75},
			{Name: "tch_raw", Start: 76, End: 77},
			{Name: "rwy_width_ft", Start: 78, End: 80},
			{Name: "loc_mls_gls_ident", Start: 82, End: 85},
			{Name: RawPayloadField},
		},
		Postprocess: func(row map[string]string) {
			truncateIdent(row, "loc_mls_gls_ident")
		},
	}
}

// localizerSpec covers PI localizer / glide slope records. A missing
// glide slope is normal, not a data error.
func localizerSpec() *TypeSpec {
	return &TypeSpec{
		Code:       "PI",
		Section:    "P",
		Subsection: "I",
		ContColumn: 22,
		ApplColumn: 23,
		Columns: []Column{
			{Name: "record_type", Start: 1, End: 1},
			{Name: "area_code", Start: 2, End: 4},
			{Name: "sec", Start: 5, End: 5},
			{Name: "icao", Start: 7, End: 10},
			{Name: "icao_code", Start: 11, End: 12},
			{Name: "sub", Start: 13, End: 13},
			{Name: "localizer_identifier", Start: 14, End: 17},
			{Name: "ils_category", Start: 18, End: 18},
			{Name: "localizer_frequency", Start: 23, End: 27},
			{Name: "runway_identifier", Start: 28, End: 32},
			{Name: "localizer_latitude", Start: 33, End: 41},
			{Name: "localizer_longitude", Start: 42, End: 51},
			{Name: "localizer_bearing", Start: 52, End: 55},
			{Name: "glide_slope_latitude", Start: 56, End: 64},
			{Name: "glide_slope_longitude", Start: 65, End: 74},
			{Name: "localizer_position", Start: 75, End: 78},
			{Name: "localizer_position_reference", Start: 79, End: 79},
			{Name: "glide_slope_position", Start: 80, End: 83},
			{Name: "localizer_width", Start: 84, End: 87},
			{Name: "glide_slope_angle", Start: 88, End: 90},
			{Name: "station_declination", Start: 91, End: 95},
			{Name: "glide_slope_height_lthr", Start: 96, End: 97},
			{Name: "glide_slope_elevation", Start: 98, End: 102},
			{Name: "supporting_facility_id", Start: 103, End: 106},
			{Name: "supporting_facility_icao", Start: 107, End: 108},
			{Name: "supporting_facility_section", Start: 109, End: 109},
			{Name: "supporting_facility_subsection", Start: 110, End: 110},
			{Name: RawPayloadField},
		},
		Postprocess: func(row map[string]string) {
			truncateIdent(row, "localizer_identifier")
		},
	}
}

// communicationsSpec covers PV airport communications records. Note the
// continuation number sits in column 26 for this type, not 22.
func communicationsSpec() *TypeSpec {
	return &TypeSpec{
		Code:       "PV",
		Section:    "P",
		Subsection: "V",
		ContColumn: 26,
		ApplColumn: 27,
		Columns: []Column{
			{Name: "area_code", Start: 2, End: 4},
			{Name: "blank_6", Start: 6, End: 6},
			{Name: "icao", Start: 7, End: 10},
			{Name: "icao_code", Start: 11, End: 12},
			{Name: "communications_type", Start: 14, End: 16},
			{Name: "communications_frequency", Start: 17, End: 23},
			{Name: "guard_transmit", Start: 24, End: 24},
			{Name: "frequency_units", Start: 25, End: 25},
			{Name: "cont_no_column_26", Start: 26, End: 26},
			{Name: "service_indicator", Start: 27, End: 29},
			{Name: "radar_service", Start: 30, End: 30},
			{Name: "modulation", Start: 31, End: 31},
			{Name: "signal_emission", Start: 32, End: 32},
			{Name: "latitude", Start: 33, End: 41},
			{Name: "longitude", Start: 42, End: 51},
			{Name: "magnetic_variation", Start: 52, End: 56},
			{Name: "facility_elevation", Start: 57, End: 61},
			{Name: "h24_indicator", Start: 62, End: 62},
			{Name: "sectorization", Start: 63, End: 68},
			{Name: "altitude_description", Start: 69, End: 69},
			{Name: "communication_altitude_1", Start: 70, End: 74},
			{Name: "communication_altitude_2", Start: 75, End: 79},
			{Name: "sector_facility", Start: 80, End: 83},
			{Name: "sector_facility_icao", Start: 84, End: 85},
			{Name: "sector_facility_section", Start: 86, End: 86},
			{Name: "sector_facility_subsection", Start: 87, End: 87},
			{Name: "distance_description", Start: 88, End: 88},
			{Name: "communications_distance", Start: 89, End: 90},
			{Name: "remote_facility", Start: 91, End: 94},
			{Name: "remote_facility_icao", Start: 95, End: 96},
			{Name: "remote_facility_section", Start: 97, End: 97},
			{Name: "remote_facility_subsection", Start: 98, End: 98},
			{Name: "call_sign", Start: 99, End: 123},
			{Name: RawPayloadField},
		},
		Postprocess: func(row map[string]string) {
			for _, key := range []string{"communications_type", "communications_frequency", "call_sign"} {
				if row[key] != "" {
					row[key] = strings.TrimSpace(row[key])
				}
			}
		},
	}
}

// truncateIdent pins an identifier field to its first 4 significant characters
func truncateIdent(row map[string]string, key string) {
	v := row[key]
	if v == "" {
		return
	}
	if len(v) > 4 {
		v = v[:4]
	}
	row[key] = strings.TrimSpace(v)
}
