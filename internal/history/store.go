// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an optional SQLite ledger of conversion runs and the
// outcome of every icon in them, and exports it as YAML or JSON.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/iconraster/pkg/types"
)

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger at path, creating its parent directory and
// schema if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			dir TEXT NOT NULL,
			renderer TEXT NOT NULL,
			size INTEGER NOT NULL,
			started_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			size INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_run_id ON conversions(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run is one conversion run in the ledger. It implements
// rasterize.Recorder.
type Run struct {
	ID    int64
	store *Store
}

// StartRun inserts a run row and returns a handle for recording its results.
func (s *Store) StartRun(ctx context.Context, dir, renderer string, size int) (*Run, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (dir, renderer, size, started_at) VALUES (?, ?, ?, ?)`,
		dir, renderer, size, now(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading run id: %w", err)
	}
	return &Run{ID: id, store: s}, nil
}

// Record appends one conversion result to the run.
func (r *Run) Record(ctx context.Context, c types.ConversionResult) error {
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO conversions (run_id, input, output, status, error, size, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, c.Icon.SVGPath, c.Icon.PNGPath, string(c.Status), c.Error, c.Size,
		c.Duration.Milliseconds(), now(),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", c.Icon.SVGPath, err)
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
