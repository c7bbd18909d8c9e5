package history

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// MemoryStore implements Store in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	runs   map[string]*Run
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string]*Run),
	}
}

var errClosed = errors.New("store is closed")

// SaveRun stores a copy of run.
func (s *MemoryStore) SaveRun(ctx context.Context, run *Run) error {
	if run == nil || run.ID == "" {
		return NewStorageError("memory", "save", errors.New("run must have an ID"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageError("memory", "save", errClosed)
	}
	if _, exists := s.runs[run.ID]; exists {
		return NewStorageError("memory", "save", errors.New("duplicate run ID "+run.ID))
	}

	s.runs[run.ID] = copyRun(run, true)
	return nil
}

// GetRun returns a copy of the run with the given ID.
func (s *MemoryStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRun(run, true), nil
}

// ListRuns returns up to limit runs, newest first.
func (s *MemoryStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := s.sortedLocked()
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}

	out := make([]*Run, len(runs))
	for i, run := range runs {
		out[i] = copyRun(run, false)
	}
	return out, nil
}

// Count returns the number of stored runs.
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.runs)), nil
}

// DeleteBefore removes runs started before cutoff.
func (s *MemoryStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, run := range s.runs {
		if run.StartedAt.Before(cutoff) {
			delete(s.runs, id)
			deleted++
		}
	}
	return deleted, nil
}

// TrimToCount removes the oldest runs until at most keep remain.
func (s *MemoryStore) TrimToCount(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, NewStorageError("memory", "trim", errors.New("keep must not be negative"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	runs := s.sortedLocked()
	if len(runs) <= keep {
		return 0, nil
	}

	var deleted int64
	for _, run := range runs[keep:] {
		delete(s.runs, run.ID)
		deleted++
	}
	return deleted, nil
}

// Ping fails once the store is closed.
func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return NewStorageError("memory", "ping", errClosed)
	}
	return nil
}

// Close marks the store closed. Stored runs stay readable.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// sortedLocked returns the runs newest first. Callers hold s.mu.
func (s *MemoryStore) sortedLocked() []*Run {
	runs := make([]*Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].StartedAt.After(runs[j].StartedAt)
		}
		return runs[i].ID > runs[j].ID
	})
	return runs
}

func copyRun(run *Run, withLocales bool) *Run {
	c := *run
	c.Locales = nil
	if withLocales && len(run.Locales) > 0 {
		c.Locales = make([]LocaleRun, len(run.Locales))
		for i, lr := range run.Locales {
			c.Locales[i] = lr
			c.Locales[i].Findings = append(lr.Findings[:0:0], lr.Findings...)
		}
	}
	return &c
}
