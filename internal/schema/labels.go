package schema

import "strings"

// applicationTypeLabels maps continuation application-type codes to their
// human-readable labels
var applicationTypeLabels = map[string]string{
	"A": "Notes or formatted data continuation",
	"C": "Call sign or controlling agency continuation",
	"E": "Primary record extension",
	"L": "VHF navaid limitation continuation",
	"N": "Sector narrative continuation",
	"T": "Time of operations continuation (formatted data)",
	"U": "Time of operations continuation (narrative data)",
	"V": "Time of operations continuation (alternate narrative)",
	"P": "Flight planning application continuation",
	"Q": "Flight planning primary data continuation",
	"S": "Simulation application continuation",
}

// ApplicationTypeLabel returns the label for a continuation application
// type code. Unknown codes map to "Unknown", the empty code to "".
func ApplicationTypeLabel(code string) string {
	if code == "" {
		return ""
	}
	if label, ok := applicationTypeLabels[strings.ToUpper(code)]; ok {
		return label
	}
	return "Unknown"
}
