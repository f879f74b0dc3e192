package schema

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	cerrors "github.com/ozguraltinkurt/GSD-Compare/internal/errors"
)

// OverlayVersion is the supported schema overlay file version
const OverlayVersion = 1

// FieldDeclaration declares one column of an overlay record type.
// Omitting start and end makes the field hold the raw 1..123 payload.
type FieldDeclaration struct {
	Name  string `toml:"name"`
	Start int    `toml:"start,omitempty"`
	End   int    `toml:"end,omitempty"`
}

// TypeDeclaration declares one record type in an overlay file
type TypeDeclaration struct {
	// Code is the canonical two-character type code
	Code string `toml:"code"`

	// Section and Subsection identify the raw type tuple on each line
	Section    string `toml:"section"`
	Subsection string `toml:"subsection"`

	// ContColumn is the continuation-number column (default 22)
	ContColumn int `toml:"cont_column,omitempty"`

	// ApplColumn is the application-type column (0 = none)
	ApplColumn int `toml:"appl_column,omitempty"`

	// Fields are the ordered output columns
	Fields []FieldDeclaration `toml:"field"`
}

// OverlayFile is the root structure of a schema overlay TOML file
type OverlayFile struct {
	Version int               `toml:"version"`
	Types   []TypeDeclaration `toml:"type"`
}

// LoadOverlay parses a schema overlay file and registers its record types.
// Overlay types carry no post-process hook and no extra view; they exist
// so new fixed-width layouts can be compared without code changes.
func LoadOverlay(path string, reg *Registry) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return cerrors.Wrap(cerrors.SchemaInvalid, err, "reading schema overlay %s", path)
	}

	var file OverlayFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return cerrors.Wrap(cerrors.SchemaInvalid, err, "parsing schema overlay %s", path)
	}
	if file.Version != OverlayVersion {
		return cerrors.New(cerrors.SchemaInvalid, "overlay %s: unsupported version %d (expected %d)", path, file.Version, OverlayVersion)
	}

	for _, decl := range file.Types {
		spec, err := specFromDeclaration(decl)
		if err != nil {
			return cerrors.Wrap(cerrors.SchemaInvalid, err, "overlay %s", path)
		}
		if err := reg.Register(spec); err != nil {
			return cerrors.Wrap(cerrors.SchemaInvalid, err, "overlay %s", path)
		}
	}
	return nil
}

func specFromDeclaration(decl TypeDeclaration) (*TypeSpec, error) {
	if len(decl.Code) != 2 {
		return nil, fmt.Errorf("type code %q must be exactly 2 characters", decl.Code)
	}
	if len(decl.Section) != 1 || len(decl.Subsection) != 1 {
		return nil, fmt.Errorf("type %s: section and subsection must be single characters", decl.Code)
	}
	if len(decl.Fields) == 0 {
		return nil, fmt.Errorf("type %s: at least one field is required", decl.Code)
	}

	columns := make([]Column, 0, len(decl.Fields))
	for _, f := range decl.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("type %s: field with empty name", decl.Code)
		}
		if f.Start == 0 && f.End == 0 {
			columns = append(columns, Column{Name: f.Name})
			continue
		}
		if f.Start < 1 || f.End > 132 || f.Start > f.End {
			return nil, fmt.Errorf("type %s: field %s has invalid range %d..%d", decl.Code, f.Name, f.Start, f.End)
		}
		columns = append(columns, Column{Name: f.Name, Start: f.Start, End: f.End})
	}

	return &TypeSpec{
		Code:       decl.Code,
		Section:    decl.Section,
		Subsection: decl.Subsection,
		ContColumn: decl.ContColumn,
		ApplColumn: decl.ApplColumn,
		Columns:    columns,
	}, nil
}
