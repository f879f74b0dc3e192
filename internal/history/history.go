// Package history persists run summaries into a SQLite database so past
// comparisons stay queryable after the CSV artifacts are archived.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	cerrors "github.com/ozguraltinkurt/GSD-Compare/internal/errors"
	"github.com/ozguraltinkurt/GSD-Compare/internal/logging"
	"github.com/ozguraltinkurt/GSD-Compare/internal/report"
)

// Store is the run-history database
type Store struct {
	conn   *sql.DB
	path   string
	logger *logging.Logger
}

// Run is one recorded comparison
type Run struct {
	ID             string
	StartedAt      time.Time
	FinishedAt     time.Time
	OldSnapshot    string
	NewSnapshot    string
	Filters        string
	DiscardedICAOs int
	Counts         []report.TypeCounts
}

// Open opens or creates the run-history database at the given path
func Open(path string, logger *logging.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, cerrors.Wrap(cerrors.HistoryWrite, err, "creating history directory %s", dir)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.HistoryWrite, err, "opening history database %s", path)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, cerrors.Wrap(cerrors.HistoryWrite, err, "setting pragma on %s", path)
		}
	}

	s := &Store{conn: conn, path: path, logger: logger}
	if err := s.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *Store) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		old_snapshot TEXT NOT NULL,
		new_snapshot TEXT NOT NULL,
		filters TEXT NOT NULL DEFAULT '',
		discarded_icaos INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS run_counts (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		type_code TEXT NOT NULL,
		current INTEGER NOT NULL,
		added INTEGER NOT NULL,
		removed INTEGER NOT NULL,
		modified INTEGER NOT NULL,
		PRIMARY KEY (run_id, type_code)
	);`
	if _, err := s.conn.Exec(schema); err != nil {
		return cerrors.Wrap(cerrors.HistoryWrite, err, "initializing history schema in %s", s.path)
	}
	return nil
}

// RecordRun stores one run and its per-type counts in a single transaction
func (s *Store) RecordRun(run Run) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return cerrors.Wrap(cerrors.HistoryWrite, err, "beginning history transaction")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO runs (id, started_at, finished_at, old_snapshot, new_snapshot, filters, discarded_icaos)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.OldSnapshot,
		run.NewSnapshot,
		run.Filters,
		run.DiscardedICAOs,
	)
	if err != nil {
		return cerrors.Wrap(cerrors.HistoryWrite, err, "inserting run %s", run.ID)
	}

	for _, c := range run.Counts {
		_, err = tx.Exec(`
			INSERT INTO run_counts (run_id, type_code, current, added, removed, modified)
			VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, c.Type, c.Current, c.Added, c.Removed, c.Modified,
		)
		if err != nil {
			return cerrors.Wrap(cerrors.HistoryWrite, err, "inserting counts for run %s type %s", run.ID, c.Type)
		}
	}

	if err := tx.Commit(); err != nil {
		return cerrors.Wrap(cerrors.HistoryWrite, err, "committing run %s", run.ID)
	}

	s.logger.Debug("Run recorded in history", map[string]interface{}{
		"runId": run.ID,
		"path":  s.path,
	})
	return nil
}

// RunCount returns the number of recorded runs
func (s *Store) RunCount() (int, error) {
	var n int
	if err := s.conn.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, cerrors.Wrap(cerrors.HistoryWrite, err, "counting runs")
	}
	return n, nil
}

// CountsForRun returns the per-type counts recorded for a run, ordered by type code
func (s *Store) CountsForRun(runID string) ([]report.TypeCounts, error) {
	rows, err := s.conn.Query(`
		SELECT type_code, current, added, removed, modified
		FROM run_counts WHERE run_id = ? ORDER BY type_code`, runID)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.HistoryWrite, err, "loading counts for run %s", runID)
	}
	defer func() { _ = rows.Close() }()

	var counts []report.TypeCounts
	for rows.Next() {
		var c report.TypeCounts
		if err := rows.Scan(&c.Type, &c.Current, &c.Added, &c.Removed, &c.Modified); err != nil {
			return nil, cerrors.Wrap(cerrors.HistoryWrite, err, "scanning counts for run %s", runID)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
