// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package trace_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifsim/bench"
	"lifsim/lif"
	"lifsim/trace"
)

func stores(t *testing.T) map[string]trace.Store {
	t.Helper()
	sqlite, err := trace.NewStore("sqlite", filepath.Join(t.TempDir(), "trace.db"))
	require.NoError(t, err)
	memory, err := trace.NewStore("", "")
	require.NoError(t, err)
	return map[string]trace.Store{"memory": memory, "sqlite": sqlite}
}

func TestStore_roundtrip(t *testing.T) {
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Init(ctx))
			defer func() { require.NoError(t, trace.CloseIfSupported(store)) }()

			run := trace.Run{
				ID:        "run-1",
				Device:    "behavioral",
				Params:    lif.DefaultParams(),
				StartedAt: time.Unix(0, 1724972400000000000),
				Cycles:    300,
			}
			require.NoError(t, store.SaveRun(ctx, run))

			got, ok, err := store.GetRun(ctx, "run-1")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, run, got)

			_, ok, err = store.GetRun(ctx, "run-2")
			require.NoError(t, err)
			assert.False(t, ok)

			ss := []bench.Sample{
				{Cycle: 1, Membrane: 9, Spike: 0},
				{Cycle: 2, Membrane: 28, Spike: 0},
				{Cycle: 3, Membrane: 10, Spike: 1},
			}
			require.NoError(t, store.AppendSamples(ctx, "run-1", ss[:2]))
			require.NoError(t, store.AppendSamples(ctx, "run-1", ss[2:]))

			got2, err := store.GetSamples(ctx, "run-1")
			require.NoError(t, err)
			assert.Equal(t, ss, got2)

			runs, err := store.ListRuns(ctx)
			require.NoError(t, err)
			require.Len(t, runs, 1)
			assert.Equal(t, "run-1", runs[0].ID)
		})
	}
}

func TestStore_save_overwrites(t *testing.T) {
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Init(ctx))
			defer func() { require.NoError(t, trace.CloseIfSupported(store)) }()

			run := trace.Run{ID: "run-1", Device: "netlist", Params: lif.DefaultParams()}
			require.NoError(t, store.SaveRun(ctx, run))
			run.Cycles = 500
			require.NoError(t, store.SaveRun(ctx, run))

			got, ok, err := store.GetRun(ctx, "run-1")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, 500, got.Cycles)
		})
	}
}

func TestNewStore_unknown_backend(t *testing.T) {
	_, err := trace.NewStore("postgres", "")
	require.Error(t, err)
}

func TestSQLiteStore_requires_init(t *testing.T) {
	s := trace.NewSQLiteStore(filepath.Join(t.TempDir(), "trace.db"))
	err := s.SaveRun(context.Background(), trace.Run{ID: "x"})
	require.Error(t, err)
}

func TestSQLiteStore_requires_path(t *testing.T) {
	s := trace.NewSQLiteStore("")
	require.Error(t, s.Init(context.Background()))
}
