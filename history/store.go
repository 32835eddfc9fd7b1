package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/corpoml/demandml/pkg/errors"
)

// timeLayout is fixed-width so that created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound is returned by GetRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

// MetricSummary is the cross-fold aggregate of one metric field.
type MetricSummary struct {
	Key    string
	Label  string
	Mean   float64
	StdDev float64
	CI95   float64
	Values []float64 // per fold, in fold order
}

// Run is one recorded evaluation.
type Run struct {
	ID        string
	Trainer   string
	DataPath  string
	Folds     int
	CreatedAt time.Time
	Metrics   []MetricSummary
}

// Metric returns the summary of the field with key, if recorded.
func (r *Run) Metric(key string) (MetricSummary, bool) {
	for _, m := range r.Metrics {
		if m.Key == key {
			return m, true
		}
	}
	return MetricSummary{}, false
}

// Store is a SQLite-backed run history.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the history database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errors.Wrap(err, "create history directory")
		}
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, errors.Wrap(err, "open history database")
	}
	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, path: path}
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "enable WAL mode")
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "enable foreign keys")
	}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create tables")
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		trainer TEXT NOT NULL,
		data_path TEXT,
		folds INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

	-- One row per metric field and run
	CREATE TABLE IF NOT EXISTS run_metrics (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		field TEXT NOT NULL,
		label TEXT NOT NULL,
		mean REAL NOT NULL,
		std_dev REAL NOT NULL,
		ci95 REAL NOT NULL,
		PRIMARY KEY (run_id, field)
	);

	-- Raw per-fold values
	CREATE TABLE IF NOT EXISTS fold_values (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		field TEXT NOT NULL,
		fold INTEGER NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (run_id, field, fold)
	);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveRun stores run in one transaction. An empty ID is filled with a new
// UUID and a zero CreatedAt with the current time; the stored ID is returned.
func (s *Store) SaveRun(ctx context.Context, run *Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, trainer, data_path, folds, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Trainer, run.DataPath, run.Folds, run.CreatedAt.UTC().Format(timeLayout),
	); err != nil {
		return "", errors.Wrapf(err, "insert run %s", run.ID)
	}

	for pos, m := range run.Metrics {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_metrics (run_id, position, field, label, mean, std_dev, ci95) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, pos, m.Key, m.Label, m.Mean, m.StdDev, m.CI95,
		); err != nil {
			return "", errors.Wrapf(err, "insert metric %s", m.Key)
		}
		for fold, v := range m.Values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO fold_values (run_id, field, fold, value) VALUES (?, ?, ?, ?)`,
				run.ID, m.Key, fold+1, v,
			); err != nil {
				return "", errors.Wrapf(err, "insert fold value %s/%d", m.Key, fold+1)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "commit run")
	}
	return run.ID, nil
}

// ListRuns returns the most recent runs first with their aggregates, but
// without per-fold values. A non-positive limit returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, trainer, data_path, folds, created_at FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query runs")
	}
	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate runs")
	}
	_ = rows.Close()

	for i := range runs {
		m, err := s.loadMetrics(ctx, runs[i].ID, false)
		if err != nil {
			return nil, err
		}
		runs[i].Metrics = m
	}
	return runs, nil
}

// GetRun returns one run with its per-fold values.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, trainer, data_path, folds, created_at FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrRunNotFound, "run %s", id)
	}
	if err != nil {
		return nil, err
	}
	run.Metrics, err = s.loadMetrics(ctx, id, true)
	if err != nil {
		return nil, err
	}
	return run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		run      Run
		dataPath sql.NullString
		created  string
	)
	if err := sc.Scan(&run.ID, &run.Trainer, &dataPath, &run.Folds, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "scan run")
	}
	run.DataPath = dataPath.String
	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return nil, errors.Wrapf(err, "parse created_at of run %s", run.ID)
	}
	run.CreatedAt = t
	return &run, nil
}

func (s *Store) loadMetrics(ctx context.Context, runID string, withValues bool) ([]MetricSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT field, label, mean, std_dev, ci95 FROM run_metrics WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "query run metrics")
	}
	var out []MetricSummary
	for rows.Next() {
		var m MetricSummary
		if err := rows.Scan(&m.Key, &m.Label, &m.Mean, &m.StdDev, &m.CI95); err != nil {
			_ = rows.Close()
			return nil, errors.Wrap(err, "scan run metric")
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, errors.Wrap(err, "iterate run metrics")
	}
	_ = rows.Close()

	if !withValues {
		return out, nil
	}
	for i := range out {
		values, err := s.loadFoldValues(ctx, runID, out[i].Key)
		if err != nil {
			return nil, err
		}
		out[i].Values = values
	}
	return out, nil
}

func (s *Store) loadFoldValues(ctx context.Context, runID, field string) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM fold_values WHERE run_id = ? AND field = ? ORDER BY fold`, runID, field)
	if err != nil {
		return nil, errors.Wrap(err, "query fold values")
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, errors.Wrap(err, "scan fold value")
		}
		values = append(values, v)
	}
	return values, errors.Wrap(rows.Err(), "iterate fold values")
}
