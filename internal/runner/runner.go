// Package runner orchestrates one comparison run: read and filter both
// snapshots, discard orphan airports symmetrically, then group, diff,
// project, and write each requested record type. The pipeline is a
// single-threaded pure batch transform; a run either completes or fails.
package runner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ozguraltinkurt/GSD-Compare/internal/arinc"
	"github.com/ozguraltinkurt/GSD-Compare/internal/delta"
	cerrors "github.com/ozguraltinkurt/GSD-Compare/internal/errors"
	"github.com/ozguraltinkurt/GSD-Compare/internal/group"
	"github.com/ozguraltinkurt/GSD-Compare/internal/history"
	"github.com/ozguraltinkurt/GSD-Compare/internal/logging"
	"github.com/ozguraltinkurt/GSD-Compare/internal/report"
	"github.com/ozguraltinkurt/GSD-Compare/internal/rows"
	"github.com/ozguraltinkurt/GSD-Compare/internal/schema"
)

// Options is the immutable per-run configuration
type Options struct {
	OldPath string
	NewPath string
	OutDir  string

	// Types are the requested canonical type codes, in output order
	Types []string

	// ICAOs and Areas are the optional allow-lists; nil means accept all
	ICAOs []string
	Areas []string

	// RegionRequested records whether region tokens were given, which
	// gates the conditional VOR derived view
	RegionRequested bool

	Gzip        bool
	HistoryPath string
}

// Summary is the outcome of a completed run
type Summary struct {
	RunID          string
	DiscardedICAOs []string
	Counts         []report.TypeCounts
	Duration       time.Duration
}

// Run executes one comparison. Requested types are validated before any
// file is read; unknown codes reject the whole run.
func Run(opts Options, reg *schema.Registry, logger *logging.Logger) (*Summary, error) {
	started := time.Now()
	runID := uuid.New().String()

	specs, err := resolveTypes(opts.Types, reg)
	if err != nil {
		return nil, err
	}

	filter := arinc.Filter{
		Types: make(map[arinc.TypeTuple]bool, len(specs)),
		ICAOs: arinc.SetOf(opts.ICAOs),
		Areas: arinc.SetOf(opts.Areas),
	}
	for _, spec := range specs {
		filter.Types[spec.Tuple()] = true
	}

	oldLines, err := arinc.ReadSnapshot(opts.OldPath, filter)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.SnapshotRead, err, "reading old snapshot %s", opts.OldPath)
	}
	newLines, err := arinc.ReadSnapshot(opts.NewPath, filter)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.SnapshotRead, err, "reading new snapshot %s", opts.NewPath)
	}

	logger.Debug("Snapshots read", map[string]interface{}{
		"runId":    runID,
		"oldLines": len(oldLines),
		"newLines": len(newLines),
	})

	// Orphans found in either snapshot are excluded from both, so the
	// comparison stays symmetric
	orphans := group.OrphanICAOs(oldLines, reg)
	for icao := range group.OrphanICAOs(newLines, reg) {
		orphans[icao] = true
	}
	discarded := make([]string, 0, len(orphans))
	for icao := range orphans {
		discarded = append(discarded, icao)
	}
	sort.Strings(discarded)

	writer, err := report.NewWriter(opts.OutDir, opts.Gzip, logger)
	if err != nil {
		return nil, err
	}

	if len(discarded) > 0 {
		if err := writer.WriteDiscarded(discarded); err != nil {
			return nil, err
		}
		oldLines = group.DiscardICAOs(oldLines, orphans)
		newLines = group.DiscardICAOs(newLines, orphans)
		logger.Info("Discarded airports with continuation-only data", map[string]interface{}{
			"icaos": strings.Join(discarded, ","),
		})
	}

	oldBuckets := arinc.BucketByType(oldLines)
	newBuckets := arinc.BucketByType(newLines)

	var counts []report.TypeCounts
	for _, spec := range specs {
		c, err := runType(spec, oldBuckets[spec.Code], newBuckets[spec.Code], opts, reg, writer)
		if err != nil {
			return nil, err
		}
		counts = append(counts, c)
		logger.Debug("Type compared", map[string]interface{}{
			"type":     c.Type,
			"current":  c.Current,
			"added":    c.Added,
			"removed":  c.Removed,
			"modified": c.Modified,
		})
	}

	if err := writer.WriteSummary(counts); err != nil {
		return nil, err
	}

	duration := time.Since(started)
	manifest := report.Manifest{
		RunID:           runID,
		GeneratedAt:     started.UTC().Format(time.RFC3339),
		OldSnapshot:     opts.OldPath,
		NewSnapshot:     opts.NewPath,
		Types:           opts.Types,
		AirportFilter:   opts.ICAOs,
		AreaFilter:      opts.Areas,
		RegionRequested: opts.RegionRequested,
		Gzip:            opts.Gzip,
		DiscardedICAOs:  discarded,
		Counts:          counts,
		DurationMs:      duration.Milliseconds(),
	}
	if err := writer.WriteManifest(manifest); err != nil {
		return nil, err
	}

	if opts.HistoryPath != "" {
		if err := recordHistory(opts, runID, started, discarded, counts, logger); err != nil {
			return nil, err
		}
	}

	return &Summary{
		RunID:          runID,
		DiscardedICAOs: discarded,
		Counts:         counts,
		Duration:       duration,
	}, nil
}

// resolveTypes validates the requested codes against the registry
func resolveTypes(requested []string, reg *schema.Registry) ([]*schema.TypeSpec, error) {
	if len(requested) == 0 {
		return nil, cerrors.New(cerrors.UnknownType, "no record types requested")
	}
	specs := make([]*schema.TypeSpec, 0, len(requested))
	for _, code := range requested {
		spec, ok := reg.Lookup(code)
		if !ok {
			return nil, cerrors.New(cerrors.UnknownType, "unknown type %q (allowed: %s)", code, strings.Join(reg.Codes(), ", "))
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// runType groups, diffs, projects, and writes one record type
func runType(spec *schema.TypeSpec, oldLines, newLines []string, opts Options, reg *schema.Registry, writer *report.Writer) (report.TypeCounts, error) {
	oldEntities := group.Combine(oldLines, reg)
	newEntities := group.Combine(newLines, reg)

	contNumbers := rows.ContNumbersAcross(oldEntities, newEntities)
	baseHeader := rows.BuildHeader(spec, contNumbers)
	modHeader := rows.ModifiedHeader(baseHeader)

	result := delta.Compute(oldEntities, newEntities)

	currentRows := make([]map[string]string, 0, len(newEntities))
	for _, k := range group.SortedKeys(newEntities) {
		currentRows = append(currentRows, rows.BuildRow(spec, newEntities[k], baseHeader))
	}
	addedRows := buildRowsFor(spec, newEntities, result.Added, baseHeader)
	removedRows := buildRowsFor(spec, oldEntities, result.Removed, baseHeader)

	modifiedRows := make([]map[string]string, 0, len(result.Modified))
	for _, k := range result.Modified {
		newRow := rows.BuildRow(spec, newEntities[k], baseHeader)
		oldRow := rows.BuildRow(spec, oldEntities[k], baseHeader)
		changed := rows.ChangedFields(spec, oldRow, newRow, baseHeader)
		newRow[schema.ChangedCountField] = fmt.Sprintf("%d", len(changed))
		newRow[schema.ChangedFieldsField] = strings.Join(changed, ",")
		modifiedRows = append(modifiedRows, newRow)
	}

	counts := report.TypeCounts{
		Type:     spec.Code,
		Current:  len(currentRows),
		Added:    len(addedRows),
		Removed:  len(removedRows),
		Modified: len(modifiedRows),
	}

	defaultNames := []string{
		"current_" + spec.Code,
		"added_" + spec.Code,
		"removed_" + spec.Code,
		"modified_" + spec.Code,
	}

	var view schema.ViewResult
	if spec.ExtraView != nil {
		view = spec.ExtraView(schema.ViewInput{
			Code:            spec.Code,
			RegionRequested: opts.RegionRequested,
			BaseHeader:      baseHeader,
			ModifiedHeader:  modHeader,
			Current:         currentRows,
			Added:           addedRows,
			Removed:         removedRows,
			Modified:        modifiedRows,
		})
	}

	if view.ReplaceDefaults {
		writer.RemoveTables(defaultNames...)
	} else {
		if err := writer.WriteTable(defaultNames[0], baseHeader, currentRows); err != nil {
			return counts, err
		}
		if err := writer.WriteTable(defaultNames[1], baseHeader, addedRows); err != nil {
			return counts, err
		}
		if err := writer.WriteTable(defaultNames[2], baseHeader, removedRows); err != nil {
			return counts, err
		}
		if err := writer.WriteTable(defaultNames[3], modHeader, modifiedRows); err != nil {
			return counts, err
		}
	}

	for _, set := range view.Sets {
		if err := writer.WriteTable(set.Kind+"_"+set.Suffix, set.Header, set.Rows); err != nil {
			return counts, err
		}
	}
	for _, suffix := range view.RemoveSuffixes {
		writer.RemoveTables(
			"current_"+suffix,
			"added_"+suffix,
			"removed_"+suffix,
			"modified_"+suffix,
		)
	}

	return counts, nil
}

func buildRowsFor(spec *schema.TypeSpec, entities map[group.Key]*group.Entity, keys []group.Key, header []string) []map[string]string {
	out := make([]map[string]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, rows.BuildRow(spec, entities[k], header))
	}
	return out
}

func recordHistory(opts Options, runID string, started time.Time, discarded []string, counts []report.TypeCounts, logger *logging.Logger) error {
	store, err := history.Open(opts.HistoryPath, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return store.RecordRun(history.Run{
		ID:             runID,
		StartedAt:      started,
		FinishedAt:     time.Now(),
		OldSnapshot:    opts.OldPath,
		NewSnapshot:    opts.NewPath,
		Filters:        describeFilters(opts),
		DiscardedICAOs: len(discarded),
		Counts:         counts,
	})
}

func describeFilters(opts Options) string {
	var parts []string
	if len(opts.ICAOs) > 0 {
		parts = append(parts, "icao="+strings.Join(opts.ICAOs, ","))
	}
	if len(opts.Areas) > 0 {
		parts = append(parts, "area="+strings.Join(opts.Areas, ","))
	}
	return strings.Join(parts, " ")
}
