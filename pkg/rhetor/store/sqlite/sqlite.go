// Package sqlite implements store.Store on a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/rhetor/pkg/rhetor/internalerr"
	"github.com/cognicore/rhetor/pkg/rhetor/rank"
	"github.com/cognicore/rhetor/pkg/rhetor/stats"
	"github.com/cognicore/rhetor/pkg/rhetor/store"
)

// timeLayout is RFC 3339 with fixed-width nanoseconds so the TEXT
// column sorts chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite archive with WAL mode
// enabled.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist.
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	label_a TEXT NOT NULL,
	label_b TEXT NOT NULL,
	min_frequency INTEGER NOT NULL,
	top_k INTEGER NOT NULL,
	speeches INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS features (
	run_id TEXT NOT NULL,
	filename TEXT NOT NULL,
	speaker TEXT,
	party TEXT,
	country TEXT,
	year TEXT,
	category TEXT,
	features TEXT NOT NULL,
	PRIMARY KEY(run_id, filename),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS comparisons (
	run_id TEXT NOT NULL,
	n INTEGER NOT NULL,
	comparison TEXT NOT NULL,
	PRIMARY KEY(run_id, n),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS ttests (
	run_id TEXT NOT NULL,
	feature TEXT NOT NULL,
	result TEXT NOT NULL,
	PRIMARY KEY(run_id, feature),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a run record.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("save run: empty id: %w", internalerr.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (id, created_at, label_a, label_b, min_frequency, top_k, speeches)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	created_at=excluded.created_at,
	label_a=excluded.label_a,
	label_b=excluded.label_b,
	min_frequency=excluded.min_frequency,
	top_k=excluded.top_k,
	speeches=excluded.speeches;
`, r.ID, r.CreatedAt.UTC().Format(timeLayout), r.LabelA, r.LabelB,
		r.MinFrequency, r.TopK, r.Speeches)
	return err
}

// Run returns a run by ID.
func (s *sqliteStore) Run(ctx context.Context, id string) (store.Run, error) {
	var r store.Run
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
SELECT id, created_at, label_a, label_b, min_frequency, top_k, speeches
FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &createdAt, &r.LabelA, &r.LabelB, &r.MinFrequency, &r.TopK, &r.Speeches)
	if err == sql.ErrNoRows {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	r.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return store.Run{}, fmt.Errorf("parse created_at for run %s: %w", id, err)
	}
	return r, nil
}

// ListRuns returns runs newest first. A limit at or below zero means
// no limit.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at, label_a, label_b, min_frequency, top_k, speeches
FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		var r store.Run
		var createdAt string
		if err := rows.Scan(&r.ID, &createdAt, &r.LabelA, &r.LabelB,
			&r.MinFrequency, &r.TopK, &r.Speeches); err != nil {
			return nil, err
		}
		r.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for run %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveFeatures replaces the feature rows stored for a run.
func (s *sqliteStore) SaveFeatures(ctx context.Context, runID string, rows []store.FeatureRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := runExists(ctx, tx, runID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM features WHERE run_id=?`, runID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO features (run_id, filename, speaker, party, country, year, category, features)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		blob, err := json.Marshal(row.Features)
		if err != nil {
			return fmt.Errorf("encode features for %s: %w", row.Filename, err)
		}
		if _, err := stmt.ExecContext(ctx, runID, row.Filename, row.Speaker,
			row.Party, row.Country, row.Year, row.Category, string(blob)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FeaturesByRun returns the feature rows stored for a run, in the
// order they were saved.
func (s *sqliteStore) FeaturesByRun(ctx context.Context, runID string) ([]store.FeatureRow, error) {
	if err := runExists(ctx, s.db, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT filename, speaker, party, country, year, category, features
FROM features WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.FeatureRow
	for rows.Next() {
		var row store.FeatureRow
		var blob string
		if err := rows.Scan(&row.Filename, &row.Speaker, &row.Party,
			&row.Country, &row.Year, &row.Category, &blob); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(blob), &row.Features); err != nil {
			return nil, fmt.Errorf("decode features for %s: %w", row.Filename, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SaveComparison stores one n-gram comparison for a run, keyed by n.
func (s *sqliteStore) SaveComparison(ctx context.Context, runID string, n int, comp rank.Comparison) error {
	if err := runExists(ctx, s.db, runID); err != nil {
		return err
	}
	blob, err := json.Marshal(comp)
	if err != nil {
		return fmt.Errorf("encode comparison n=%d: %w", n, err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO comparisons (run_id, n, comparison) VALUES (?, ?, ?)
ON CONFLICT(run_id, n) DO UPDATE SET comparison=excluded.comparison;
`, runID, n, string(blob))
	return err
}

// ComparisonsByRun returns all stored comparisons for a run, keyed by n.
func (s *sqliteStore) ComparisonsByRun(ctx context.Context, runID string) (map[int]rank.Comparison, error) {
	if err := runExists(ctx, s.db, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT n, comparison FROM comparisons WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]rank.Comparison)
	for rows.Next() {
		var n int
		var blob string
		if err := rows.Scan(&n, &blob); err != nil {
			return nil, err
		}
		var comp rank.Comparison
		if err := json.Unmarshal([]byte(blob), &comp); err != nil {
			return nil, fmt.Errorf("decode comparison n=%d: %w", n, err)
		}
		out[n] = comp
	}
	return out, rows.Err()
}

// SaveTTests replaces the t-test battery stored for a run.
func (s *sqliteStore) SaveTTests(ctx context.Context, runID string, results []stats.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := runExists(ctx, tx, runID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ttests WHERE run_id=?`, runID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ttests (run_id, feature, result) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range results {
		blob, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode t-test %s: %w", r.Feature, err)
		}
		if _, err := stmt.ExecContext(ctx, runID, r.Feature, string(blob)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// TTestsByRun returns the t-test battery stored for a run, in the
// order it was saved.
func (s *sqliteStore) TTestsByRun(ctx context.Context, runID string) ([]stats.Result, error) {
	if err := runExists(ctx, s.db, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT result FROM ttests WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []stats.Result
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		var r stats.Result
		if err := json.Unmarshal([]byte(blob), &r); err != nil {
			return nil, fmt.Errorf("decode t-test result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func runExists(ctx context.Context, q queryRower, runID string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("run %s: %w", runID, internalerr.ErrNotFound)
	}
	return err
}
