// Package report writes the tabular delta artifacts: per-type CSV files
// (optionally gzip-compressed), the discarded-airports list, the summary
// table, and the machine-readable run manifest.
package report

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/gzip"

	cerrors "github.com/ozguraltinkurt/GSD-Compare/internal/errors"
	"github.com/ozguraltinkurt/GSD-Compare/internal/logging"
)

// TypeCounts is one summary row: the four classification counts for a type
type TypeCounts struct {
	Type     string `yaml:"type"`
	Current  int    `yaml:"current"`
	Added    int    `yaml:"added"`
	Removed  int    `yaml:"removed"`
	Modified int    `yaml:"modified"`
}

// Writer writes run artifacts into a single output directory
type Writer struct {
	outDir string
	gzip   bool
	logger *logging.Logger
}

// NewWriter creates the output directory and returns a writer for it
func NewWriter(outDir string, gzipOutput bool, logger *logging.Logger) (*Writer, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, cerrors.Wrap(cerrors.OutputWrite, err, "creating output directory %s", outDir)
	}
	return &Writer{outDir: outDir, gzip: gzipOutput, logger: logger}, nil
}

// OutDir returns the output directory path
func (w *Writer) OutDir() string {
	return w.outDir
}

// csvPath returns the path for a named tabular output, honoring gzip mode
func (w *Writer) csvPath(name string) string {
	if w.gzip {
		return filepath.Join(w.outDir, name+".csv.gz")
	}
	return filepath.Join(w.outDir, name+".csv")
}

// WriteTable writes one tabular output: header row, then one row per
// entity in the given order, fields taken from the header. The counterpart
// name in the other compression mode is removed so runs never leave a
// stale duplicate behind.
func (w *Writer) WriteTable(name string, header []string, tableRows []map[string]string) error {
	path := w.csvPath(name)

	f, err := os.Create(path)
	if err != nil {
		return cerrors.Wrap(cerrors.OutputWrite, err, "creating %s", path)
	}
	defer func() { _ = f.Close() }()

	var out io.Writer = f
	var gz *gzip.Writer
	if w.gzip {
		gz = gzip.NewWriter(f)
		out = gz
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(header); err != nil {
		return cerrors.Wrap(cerrors.OutputWrite, err, "writing header of %s", path)
	}
	record := make([]string, len(header))
	for _, row := range tableRows {
		for i, field := range header {
			record[i] = row[field]
		}
		if err := cw.Write(record); err != nil {
			return cerrors.Wrap(cerrors.OutputWrite, err, "writing row of %s", path)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return cerrors.Wrap(cerrors.OutputWrite, err, "flushing %s", path)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return cerrors.Wrap(cerrors.OutputWrite, err, "closing gzip stream of %s", path)
		}
	}
	if err := f.Close(); err != nil {
		return cerrors.Wrap(cerrors.OutputWrite, err, "closing %s", path)
	}

	w.removeCounterpart(name)
	return nil
}

// RemoveTables deletes the named tabular outputs in both compression
// modes. Used when a derived view replaces the defaults or is not
// applicable for this run; files from earlier runs must not go stale.
func (w *Writer) RemoveTables(names ...string) {
	for _, name := range names {
		for _, path := range []string{
			filepath.Join(w.outDir, name+".csv"),
			filepath.Join(w.outDir, name+".csv.gz"),
		} {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				w.logger.Warn("Failed to remove stale output", map[string]interface{}{
					"path":  path,
					"error": err.Error(),
				})
			}
		}
	}
}

func (w *Writer) removeCounterpart(name string) {
	var stale string
	if w.gzip {
		stale = filepath.Join(w.outDir, name+".csv")
	} else {
		stale = filepath.Join(w.outDir, name+".csv.gz")
	}
	if err := os.Remove(stale); err != nil && !os.IsNotExist(err) {
		w.logger.Warn("Failed to remove stale output", map[string]interface{}{
			"path":  stale,
			"error": err.Error(),
		})
	}
}

// WriteDiscarded writes the sorted orphan ICAO list, one code per line
func (w *Writer) WriteDiscarded(icaos []string) error {
	path := filepath.Join(w.outDir, "discarded_airports.txt")
	content := ""
	for i, icao := range icaos {
		if i > 0 {
			content += "\n"
		}
		content += icao
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return cerrors.Wrap(cerrors.OutputWrite, err, "writing %s", path)
	}
	return nil
}

// WriteSummary writes summary.csv with one row per requested type
func (w *Writer) WriteSummary(counts []TypeCounts) error {
	path := filepath.Join(w.outDir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return cerrors.Wrap(cerrors.OutputWrite, err, "creating %s", path)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"type", "current", "added", "removed", "modified"}); err != nil {
		return cerrors.Wrap(cerrors.OutputWrite, err, "writing header of %s", path)
	}
	for _, c := range counts {
		record := []string{
			c.Type,
			strconv.Itoa(c.Current),
			strconv.Itoa(c.Added),
			strconv.Itoa(c.Removed),
			strconv.Itoa(c.Modified),
		}
		if err := cw.Write(record); err != nil {
			return cerrors.Wrap(cerrors.OutputWrite, err, "writing row of %s", path)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return cerrors.Wrap(cerrors.OutputWrite, err, "flushing %s", path)
	}
	return nil
}
