// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package trace persists simulation runs and their per-cycle samples.
package trace

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"lifsim/bench"
	"lifsim/lif"
)

// Run identifies one simulation of a device with a fixed parameter set.
type Run struct {
	ID        string
	Device    string
	Params    lif.Params
	StartedAt time.Time
	Cycles    int
}

// Store persists runs and samples.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context) ([]Run, error)
	AppendSamples(ctx context.Context, runID string, ss []bench.Sample) error
	GetSamples(ctx context.Context, runID string) ([]bench.Sample, error)
}

// NewStore returns a store of the given kind: "memory" (the default) or
// "sqlite", which requires a database path.
func NewStore(kind, path string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(path), nil
	default:
		return nil, errors.Errorf("unsupported trace backend: %s", kind)
	}
}

// CloseIfSupported closes the store when its backend holds resources.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}

// MemoryStore keeps runs and samples in process memory. Useful for tests
// and for runs that only need end-of-run statistics.
type MemoryStore struct {
	mu      sync.RWMutex
	runs    map[string]Run
	samples map[string][]bench.Sample
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = make(map[string]Run)
	s.samples = make(map[string][]bench.Sample)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	return runs, nil
}

func (s *MemoryStore) AppendSamples(_ context.Context, runID string, ss []bench.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples[runID] = append(s.samples[runID], ss...)
	return nil
}

func (s *MemoryStore) GetSamples(_ context.Context, runID string) ([]bench.Sample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]bench.Sample(nil), s.samples[runID]...), nil
}
