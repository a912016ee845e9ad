// Package memstore is an in-memory store.Store for tests and
// short-lived runs.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/rhetor/pkg/rhetor/internalerr"
	"github.com/cognicore/rhetor/pkg/rhetor/rank"
	"github.com/cognicore/rhetor/pkg/rhetor/stats"
	"github.com/cognicore/rhetor/pkg/rhetor/store"
)

// Store keeps everything in maps guarded by one RWMutex. All reads
// copy out, so callers can never alias internal state.
type Store struct {
	mu          sync.RWMutex
	runs        map[string]store.Run
	features    map[string][]store.FeatureRow
	comparisons map[string]map[int]rank.Comparison
	ttests      map[string][]stats.Result
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		runs:        make(map[string]store.Run),
		features:    make(map[string][]store.FeatureRow),
		comparisons: make(map[string]map[int]rank.Comparison),
		ttests:      make(map[string][]stats.Result),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun inserts or replaces a run record.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("save run: empty id: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = r
	return nil
}

// Run returns a run by ID.
func (s *Store) Run(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return r, nil
}

// ListRuns returns runs newest first. A limit at or below zero means
// no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SaveFeatures replaces the feature rows stored for a run.
func (s *Store) SaveFeatures(ctx context.Context, runID string, rows []store.FeatureRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[runID]; !ok {
		return fmt.Errorf("run %s: %w", runID, internalerr.ErrNotFound)
	}
	s.features[runID] = copyRows(rows)
	return nil
}

// FeaturesByRun returns the feature rows stored for a run.
func (s *Store) FeaturesByRun(ctx context.Context, runID string) ([]store.FeatureRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.runs[runID]; !ok {
		return nil, fmt.Errorf("run %s: %w", runID, internalerr.ErrNotFound)
	}
	return copyRows(s.features[runID]), nil
}

// SaveComparison stores one n-gram comparison for a run, keyed by n.
func (s *Store) SaveComparison(ctx context.Context, runID string, n int, comp rank.Comparison) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[runID]; !ok {
		return fmt.Errorf("run %s: %w", runID, internalerr.ErrNotFound)
	}
	byN, ok := s.comparisons[runID]
	if !ok {
		byN = make(map[int]rank.Comparison)
		s.comparisons[runID] = byN
	}
	byN[n] = copyComparison(comp)
	return nil
}

// ComparisonsByRun returns all stored comparisons for a run, keyed by n.
func (s *Store) ComparisonsByRun(ctx context.Context, runID string) (map[int]rank.Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.runs[runID]; !ok {
		return nil, fmt.Errorf("run %s: %w", runID, internalerr.ErrNotFound)
	}
	out := make(map[int]rank.Comparison, len(s.comparisons[runID]))
	for n, comp := range s.comparisons[runID] {
		out[n] = copyComparison(comp)
	}
	return out, nil
}

// SaveTTests replaces the t-test battery stored for a run.
func (s *Store) SaveTTests(ctx context.Context, runID string, results []stats.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[runID]; !ok {
		return fmt.Errorf("run %s: %w", runID, internalerr.ErrNotFound)
	}
	cp := make([]stats.Result, len(results))
	copy(cp, results)
	s.ttests[runID] = cp
	return nil
}

// TTestsByRun returns the t-test battery stored for a run.
func (s *Store) TTestsByRun(ctx context.Context, runID string) ([]stats.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.runs[runID]; !ok {
		return nil, fmt.Errorf("run %s: %w", runID, internalerr.ErrNotFound)
	}
	cp := make([]stats.Result, len(s.ttests[runID]))
	copy(cp, s.ttests[runID])
	return cp, nil
}

func copyRows(rows []store.FeatureRow) []store.FeatureRow {
	out := make([]store.FeatureRow, len(rows))
	for i, row := range rows {
		cp := row
		cp.Features = make(map[string]float64, len(row.Features))
		for k, v := range row.Features {
			cp.Features[k] = v
		}
		out[i] = cp
	}
	return out
}

func copyComparison(comp rank.Comparison) rank.Comparison {
	return rank.Comparison{
		ADistinctive: copyDistinctive(comp.ADistinctive),
		BDistinctive: copyDistinctive(comp.BDistinctive),
		Common:       append([]rank.CommonGram(nil), comp.Common...),
	}
}

func copyDistinctive(grams []rank.DistinctiveGram) []rank.DistinctiveGram {
	out := make([]rank.DistinctiveGram, len(grams))
	for i, g := range grams {
		g.Tokens = append([]string(nil), g.Tokens...)
		out[i] = g
	}
	return out
}
