// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/iconraster/pkg/types"
)

const defaultLimit = 50

// QueryOptions filters ledger entries.
type QueryOptions struct {
	// RunID restricts entries to one run. Zero means all runs.
	RunID int64

	// Status filters by outcome ("converted" or "failed").
	Status types.ConversionStatus

	// Input filters by input path substring.
	Input string

	// Limit caps the number of entries. Zero uses the default (50).
	Limit int
}

// Entry is one recorded conversion.
type Entry struct {
	ID         int64  `json:"id" yaml:"id"`
	RunID      int64  `json:"run_id" yaml:"run_id"`
	Input      string `json:"input" yaml:"input"`
	Output     string `json:"output" yaml:"output"`
	Status     string `json:"status" yaml:"status"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	Size       int    `json:"size" yaml:"size"`
	DurationMS int64  `json:"duration_ms" yaml:"duration_ms"`
	CreatedAt  string `json:"created_at" yaml:"created_at"`
}

// List returns entries matching opts, newest first.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var (
		where []string
		args  []any
	)
	if opts.RunID != 0 {
		where = append(where, "run_id = ?")
		args = append(args, opts.RunID)
	}
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(opts.Status))
	}
	if opts.Input != "" {
		where = append(where, "instr(input, ?) > 0")
		args = append(args, opts.Input)
	}

	var qb strings.Builder
	qb.WriteString(`SELECT id, run_id, input, output, status, error, size, duration_ms, created_at FROM conversions`)
	if len(where) > 0 {
		qb.WriteString(" WHERE ")
		qb.WriteString(strings.Join(where, " AND "))
	}
	qb.WriteString(" ORDER BY id DESC LIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e      Entry
			errStr sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.RunID, &e.Input, &e.Output, &e.Status, &errStr,
			&e.Size, &e.DurationMS, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		e.Error = errStr.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LatestRunID returns the id of the most recent run, or zero when the ledger
// is empty.
func (s *Store) LatestRunID(ctx context.Context) (int64, error) {
	var id sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT max(id) FROM runs`).Scan(&id); err != nil {
		return 0, fmt.Errorf("querying latest run: %w", err)
	}
	return id.Int64, nil
}
