// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/iconraster/internal/rasterize"
	"github.com/pdiddy/iconraster/pkg/types"
)

// Run must satisfy the converter's recorder contract.
var _ rasterize.Recorder = (*Run)(nil)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func result(name string, status types.ConversionStatus, errMsg string) types.ConversionResult {
	return types.ConversionResult{
		Icon:     rasterize.NewIcon(name),
		Status:   status,
		Size:     64,
		Error:    errMsg,
		Duration: 1500 * time.Millisecond,
	}
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	run, err := s.StartRun(ctx, ".", "msedge", 64)
	require.NoError(t, err)
	require.NoError(t, run.Record(ctx, result("home.svg", types.ConversionDone, "")))
	require.NoError(t, run.Record(ctx, result("menu.svg", types.ConversionFailed, "exit status 1")))

	entries, err := s.List(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "menu.svg", entries[0].Input)
	assert.Equal(t, "menu.png", entries[0].Output)
	assert.Equal(t, "failed", entries[0].Status)
	assert.Equal(t, "exit status 1", entries[0].Error)
	assert.Equal(t, int64(1500), entries[0].DurationMS)
	assert.Equal(t, run.ID, entries[0].RunID)

	assert.Equal(t, "home.svg", entries[1].Input)
	assert.Empty(t, entries[1].Error)
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	first, err := s.StartRun(ctx, ".", "msedge", 64)
	require.NoError(t, err)
	require.NoError(t, first.Record(ctx, result("a.svg", types.ConversionDone, "")))
	require.NoError(t, first.Record(ctx, result("b.svg", types.ConversionFailed, "boom")))

	second, err := s.StartRun(ctx, ".", "msedge", 64)
	require.NoError(t, err)
	require.NoError(t, second.Record(ctx, result("a.svg", types.ConversionFailed, "boom")))
	require.NoError(t, second.Record(ctx, result("logo-dark.svg", types.ConversionDone, "")))

	tests := []struct {
		name   string
		opts   QueryOptions
		inputs []string
	}{
		{name: "all", opts: QueryOptions{}, inputs: []string{"logo-dark.svg", "a.svg", "b.svg", "a.svg"}},
		{name: "by run", opts: QueryOptions{RunID: first.ID}, inputs: []string{"b.svg", "a.svg"}},
		{name: "by status", opts: QueryOptions{Status: types.ConversionFailed}, inputs: []string{"a.svg", "b.svg"}},
		{name: "by input", opts: QueryOptions{Input: "logo"}, inputs: []string{"logo-dark.svg"}},
		{name: "limit", opts: QueryOptions{Limit: 1}, inputs: []string{"logo-dark.svg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := s.List(ctx, tt.opts)
			require.NoError(t, err)
			var got []string
			for _, e := range entries {
				got = append(got, e.Input)
			}
			assert.Equal(t, tt.inputs, got)
		})
	}

	latest, err := s.LatestRunID(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest)
}

func TestLatestRunIDEmpty(t *testing.T) {
	s := testStore(t)
	id, err := s.LatestRunID(context.Background())
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestReopenKeepsHistory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	run, err := s.StartRun(ctx, ".", "msedge", 64)
	require.NoError(t, err)
	require.NoError(t, run.Record(ctx, result("a.svg", types.ConversionDone, "")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	entries, err := s.List(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExport(t *testing.T) {
	entries := []Entry{
		{ID: 1, RunID: 1, Input: "a.svg", Output: "a.png", Status: "converted", Size: 64, DurationMS: 120},
		{ID: 2, RunID: 1, Input: "b.svg", Output: "b.png", Status: "failed", Error: "exit status 1", Size: 64},
	}

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, entries, FormatYAML))
		var got []Entry
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, entries, got)
		assert.Contains(t, buf.String(), "duration_ms: 120")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, entries, FormatJSON))
		var got []Entry
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, entries, got)
	})

	t.Run("empty json is an array", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, nil, FormatJSON))
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		err := Export(&bytes.Buffer{}, entries, Format("csv"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "csv")
	})
}

func TestRecorderWithConverter(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	run, err := s.StartRun(ctx, ".", "msedge", 64)
	require.NoError(t, err)

	dir := t.TempDir()
	c := rasterize.New(noopShot{}, 64, &bytes.Buffer{}, rasterize.WithRecorder(run))
	c.ConvertIcon(ctx, rasterize.NewIcon(filepath.Join(dir, "bolt.svg")))

	entries, err := s.List(ctx, QueryOptions{RunID: run.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join(dir, "bolt.svg"), entries[0].Input)
	assert.Equal(t, "converted", entries[0].Status)
}

type noopShot struct{}

func (noopShot) Screenshot(context.Context, []string) error { return nil }
