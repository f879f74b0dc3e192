package report

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	cerrors "github.com/ozguraltinkurt/GSD-Compare/internal/errors"
)

// Manifest is the machine-readable record of one run, written alongside
// the CSV artifacts as run_manifest.yaml
type Manifest struct {
	RunID           string       `yaml:"runId"`
	GeneratedAt     string       `yaml:"generatedAt"`
	OldSnapshot     string       `yaml:"oldSnapshot"`
	NewSnapshot     string       `yaml:"newSnapshot"`
	Types           []string     `yaml:"types"`
	AirportFilter   []string     `yaml:"airportFilter,omitempty"`
	AreaFilter      []string     `yaml:"areaFilter,omitempty"`
	RegionRequested bool         `yaml:"regionRequested"`
	Gzip            bool         `yaml:"gzip"`
	DiscardedICAOs  []string     `yaml:"discardedIcaos,omitempty"`
	Counts          []TypeCounts `yaml:"counts"`
	DurationMs      int64        `yaml:"durationMs"`
}

// WriteManifest writes the run manifest as YAML
func (w *Writer) WriteManifest(m Manifest) error {
	path := filepath.Join(w.outDir, "run_manifest.yaml")
	data, err := yaml.Marshal(m)
	if err != nil {
		return cerrors.Wrap(cerrors.OutputWrite, err, "marshaling run manifest")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return cerrors.Wrap(cerrors.OutputWrite, err, "writing %s", path)
	}
	return nil
}
