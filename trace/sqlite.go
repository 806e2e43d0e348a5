// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package trace

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"lifsim/bench"
)

// SQLiteStore persists runs and samples in a single SQLite database file.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("trace: sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return errors.Wrap(err, "trace: opening database")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return errors.Wrap(err, "trace: pinging database")
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("trace: store not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			device     TEXT NOT NULL,
			leak       INTEGER NOT NULL,
			threshold  INTEGER NOT NULL,
			baseline   INTEGER NOT NULL,
			refractory INTEGER NOT NULL,
			started_at INTEGER NOT NULL,
			cycles     INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS samples (
			run_id   TEXT NOT NULL,
			cycle    INTEGER NOT NULL,
			membrane INTEGER NOT NULL,
			spike    INTEGER NOT NULL,
			PRIMARY KEY (run_id, cycle)
		);
	`)
	return errors.Wrap(err, "trace: creating tables")
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, device, leak, threshold, baseline, refractory, started_at, cycles)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			device = excluded.device,
			leak = excluded.leak,
			threshold = excluded.threshold,
			baseline = excluded.baseline,
			refractory = excluded.refractory,
			started_at = excluded.started_at,
			cycles = excluded.cycles
	`, run.ID, run.Device, run.Params.Leak, run.Params.Threshold,
		run.Params.Baseline, run.Params.Refractory, run.StartedAt.UnixNano(), run.Cycles)
	return errors.Wrapf(err, "trace: saving run %s", run.ID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Run{}, false, err
	}

	run, err := scanRun(db.QueryRowContext(ctx,
		`SELECT id, device, leak, threshold, baseline, refractory, started_at, cycles
		 FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, errors.Wrapf(err, "trace: loading run %s", id)
	}
	return run, true, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context) ([]Run, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, device, leak, threshold, baseline, refractory, started_at, cycles
		 FROM runs ORDER BY started_at`)
	if err != nil {
		return nil, errors.Wrap(err, "trace: listing runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, errors.Wrap(err, "trace: listing runs")
		}
		runs = append(runs, run)
	}
	return runs, errors.Wrap(rows.Err(), "trace: listing runs")
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var nanos int64
	err := row.Scan(&run.ID, &run.Device, &run.Params.Leak, &run.Params.Threshold,
		&run.Params.Baseline, &run.Params.Refractory, &nanos, &run.Cycles)
	if err != nil {
		return Run{}, err
	}
	run.StartedAt = time.Unix(0, nanos)
	return run, nil
}

func (s *SQLiteStore) AppendSamples(ctx context.Context, runID string, ss []bench.Sample) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "trace: appending samples")
	}
	for _, smp := range ss {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO samples (run_id, cycle, membrane, spike)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(run_id, cycle) DO UPDATE SET
				membrane = excluded.membrane,
				spike = excluded.spike
		`, runID, smp.Cycle, smp.Membrane, smp.Spike)
		if err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "trace: appending sample %d of run %s", smp.Cycle, runID)
		}
	}
	return errors.Wrapf(tx.Commit(), "trace: appending samples of run %s", runID)
}

func (s *SQLiteStore) GetSamples(ctx context.Context, runID string) ([]bench.Sample, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT cycle, membrane, spike FROM samples WHERE run_id = ? ORDER BY cycle`, runID)
	if err != nil {
		return nil, errors.Wrapf(err, "trace: loading samples of run %s", runID)
	}
	defer rows.Close()

	var ss []bench.Sample
	for rows.Next() {
		var smp bench.Sample
		if err := rows.Scan(&smp.Cycle, &smp.Membrane, &smp.Spike); err != nil {
			return nil, errors.Wrapf(err, "trace: loading samples of run %s", runID)
		}
		ss = append(ss, smp)
	}
	return ss, errors.Wrapf(rows.Err(), "trace: loading samples of run %s", runID)
}
