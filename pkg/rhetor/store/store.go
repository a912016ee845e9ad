// Package store archives analysis runs and their outputs. It is an
// export target and run browser, not pipeline state: the engine never
// reads the archive while computing, every run is a fresh computation.
package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/rhetor/pkg/rhetor/rank"
	"github.com/cognicore/rhetor/pkg/rhetor/stats"
)

// Store persists runs, per-speech feature rows, n-gram comparisons,
// and t-test batteries.
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	Run(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	SaveFeatures(ctx context.Context, runID string, rows []FeatureRow) error
	FeaturesByRun(ctx context.Context, runID string) ([]FeatureRow, error)

	SaveComparison(ctx context.Context, runID string, n int, comp rank.Comparison) error
	ComparisonsByRun(ctx context.Context, runID string) (map[int]rank.Comparison, error)

	SaveTTests(ctx context.Context, runID string, results []stats.Result) error
	TTestsByRun(ctx context.Context, runID string) ([]stats.Result, error)
}

// Run identifies one analysis invocation and its parameters.
type Run struct {
	ID           string
	CreatedAt    time.Time
	LabelA       string
	LabelB       string
	MinFrequency int
	TopK         int
	Speeches     int
}

// FeatureRow is one speech's stored metadata and feature vector.
type FeatureRow struct {
	Filename string
	Speaker  string
	Party    string
	Country  string
	Year     string
	Category string
	Features map[string]float64
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a fresh run identifier. IDs generated by one
// process sort in creation order.
func NewRunID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}
