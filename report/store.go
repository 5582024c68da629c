// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/katalvlaran/lvnet/train"
)

// ErrUnknownRun is returned for a run ID the store has never issued.
var ErrUnknownRun = errors.New("report: unknown run")

const schema = `
PRAGMA foreign_keys = ON;
CREATE TABLE IF NOT EXISTS runs(
	id TEXT PRIMARY KEY,
	started_ms INTEGER NOT NULL,
	dims TEXT NOT NULL,
	learning_rate REAL NOT NULL,
	epochs INTEGER NOT NULL,
	samples INTEGER NOT NULL,
	note TEXT,
	eval_loss REAL,
	eval_correct INTEGER,
	eval_total INTEGER
);
CREATE TABLE IF NOT EXISTS epochs(
	run_id TEXT NOT NULL REFERENCES runs(id),
	epoch INTEGER NOT NULL,
	mean_loss REAL NOT NULL,
	correct INTEGER NOT NULL,
	total INTEGER NOT NULL,
	PRIMARY KEY(run_id, epoch)
);`

// RunMeta describes a training run when it starts.
type RunMeta struct {
	Dims         []int
	LearningRate float64
	Epochs       int
	Samples      int
	Note         string
}

// Run is a stored run. Eval is nil until FinishRun is called.
type Run struct {
	ID      string
	Started time.Time
	RunMeta
	Eval *train.EpochStats
}

// Store keeps the history of training runs in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the SQLite database at path.
// ":memory:" gives a private in-memory store.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("report: open %s: %w", path, err)
	}
	// one long-lived connection: SQLite serializes writers, and both ":memory:"
	// and the foreign_keys pragma are per connection
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("report: init %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// BeginRun registers a new run and returns its ID.
func (s *Store) BeginRun(ctx context.Context, meta RunMeta) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(id, started_ms, dims, learning_rate, epochs, samples, note) VALUES(?,?,?,?,?,?,?)`,
		id, time.Now().UnixMilli(), formatDims(meta.Dims), meta.LearningRate, meta.Epochs, meta.Samples, meta.Note)
	if err != nil {
		return "", fmt.Errorf("report: begin run: %w", err)
	}

	return id, nil
}

// RecordEpoch stores the statistics of one epoch of run id.
//
// Errors:
//   - ErrUnknownRun for an id BeginRun never returned.
//   - A constraint error when the epoch is already stored for the run.
func (s *Store) RecordEpoch(ctx context.Context, id string, st train.EpochStats) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO epochs(run_id, epoch, mean_loss, correct, total) VALUES(?,?,?,?,?)`,
		id, st.Epoch, st.MeanLoss, st.Correct, st.Total)
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return fmt.Errorf("report: record epoch %d of %s: %w", st.Epoch, id, ErrUnknownRun)
	}
	if err != nil {
		return fmt.Errorf("report: record epoch %d: %w", st.Epoch, err)
	}

	return nil
}

// FinishRun attaches the final evaluation to run id.
func (s *Store) FinishRun(ctx context.Context, id string, eval train.EpochStats) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET eval_loss = ?, eval_correct = ?, eval_total = ? WHERE id = ?`,
		eval.MeanLoss, eval.Correct, eval.Total, id)
	if err != nil {
		return fmt.Errorf("report: finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("report: finish run %s: %w", id, ErrUnknownRun)
	}

	return nil
}

// Epochs returns the stored epochs of run id in epoch order.
func (s *Store) Epochs(ctx context.Context, id string) ([]train.EpochStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT epoch, mean_loss, correct, total FROM epochs WHERE run_id = ? ORDER BY epoch`, id)
	if err != nil {
		return nil, fmt.Errorf("report: epochs: %w", err)
	}
	defer rows.Close()

	var out []train.EpochStats
	for rows.Next() {
		var st train.EpochStats
		if err = rows.Scan(&st.Epoch, &st.MeanLoss, &st.Correct, &st.Total); err != nil {
			return nil, fmt.Errorf("report: epochs: %w", err)
		}
		out = append(out, st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("report: epochs: %w", err)
	}

	return out, nil
}

// Runs returns every stored run, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_ms, dims, learning_rate, epochs, samples, note, eval_loss, eval_correct, eval_total
		 FROM runs ORDER BY started_ms, rowid`)
	if err != nil {
		return nil, fmt.Errorf("report: runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r       Run
			started int64
			dims    string
			note    sql.NullString
			loss    sql.NullFloat64
			correct sql.NullInt64
			total   sql.NullInt64
		)
		if err = rows.Scan(&r.ID, &started, &dims, &r.LearningRate, &r.Epochs, &r.Samples,
			&note, &loss, &correct, &total); err != nil {
			return nil, fmt.Errorf("report: runs: %w", err)
		}
		r.Started = time.UnixMilli(started)
		r.Note = note.String
		if r.Dims, err = parseDims(dims); err != nil {
			return nil, fmt.Errorf("report: runs: %w", err)
		}
		if loss.Valid {
			r.Eval = &train.EpochStats{MeanLoss: loss.Float64, Correct: int(correct.Int64), Total: int(total.Int64)}
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("report: runs: %w", err)
	}

	return out, nil
}

func formatDims(dims []int) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = strconv.Itoa(d)
	}

	return strings.Join(parts, ",")
}

func parseDims(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	dims := make([]int, len(parts))
	var err error
	for i, p := range parts {
		if dims[i], err = strconv.Atoi(p); err != nil {
			return nil, err
		}
	}

	return dims, nil
}
