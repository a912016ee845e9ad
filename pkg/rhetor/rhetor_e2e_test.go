package rhetor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cognicore/rhetor/pkg/rhetor/rank"
	"github.com/cognicore/rhetor/pkg/rhetor/store"
	"github.com/cognicore/rhetor/pkg/rhetor/store/memstore"
)

// TestEndToEnd walks the complete corpus-analysis workflow:
// 1. Engine construction
// 2. Per-speech feature extraction
// 3. Corpus comparison (bigrams and trigrams)
// 4. Group statistics
// 5. Archiving the run
func TestEndToEnd(t *testing.T) {
	ctx := context.Background()

	// === Phase 1: Build the engine ===

	// A small fixture corpus, so the frequency floor comes down from the
	// default.
	r, err := New(Options{MinFrequency: 2, TopK: 10})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	populist := []string{
		"We will take back control of our country. The corrupt elites betrayed us. Economic growth will return when the people decide.",
		"They call us deplorable but we know the truth. We will take back control and drain the swamp. Economic growth belongs to the people, not the establishment.",
		"Our movement will take back control from the rigged system. We stand together and we will never surrender. Economic growth for the forgotten men and women.",
		"The establishment ignored us for decades. Now we take back control. We fight for our families and economic growth across this land.",
	}
	mainstream := []string{
		"Economic growth depends on sound fiscal policy. The government proposes evidence based policy for schools and hospitals. Careful analysis supports gradual reform.",
		"The budget delivers economic growth through responsible investment. Evidence based policy guides healthcare funding decisions. Experts reviewed the proposals thoroughly.",
		"Economic growth requires stable institutions and independent review. This administration follows evidence based policy in every department. The plan balances competing priorities.",
		"Parliament examined the legislation carefully. Evidence based policy informs the new curriculum. Economic growth forecasts remain moderate and steady.",
	}

	// === Phase 2: Extract features per speech ===

	var rows []SpeechFeatures
	var archive []store.FeatureRow
	addGroup := func(texts []string, category string) {
		for i, text := range texts {
			feats, err := r.AnalyzeSpeech(text)
			if err != nil {
				t.Fatalf("AnalyzeSpeech %s %d: %v", category, i+1, err)
			}
			m := feats.Map()
			rows = append(rows, SpeechFeatures{Category: category, Features: m})
			archive = append(archive, store.FeatureRow{
				Filename: fmt.Sprintf("%s_%d_cleaned.txt", category, i+1),
				Category: category,
				Features: m,
			})
		}
	}
	addGroup(populist, "Populist")
	addGroup(mainstream, "Mainstream")

	t.Logf("✓ Extracted features for %d speeches", len(rows))

	for _, row := range rows {
		if row.Features["word_count"] == 0 {
			t.Fatal("every fixture speech should have a word count")
		}
	}

	// === Phase 3: Compare corpora ===

	bigrams, err := r.CompareCorpora(populist, mainstream, 2)
	if err != nil {
		t.Fatalf("CompareCorpora bigrams: %v", err)
	}
	trigrams, err := r.CompareCorpora(populist, mainstream, 3)
	if err != nil {
		t.Fatalf("CompareCorpora trigrams: %v", err)
	}

	t.Logf("✓ Bigrams: %d populist-distinctive, %d mainstream-distinctive, %d common",
		len(bigrams.ADistinctive), len(bigrams.BDistinctive), len(bigrams.Common))

	assertHasDistinctive(t, bigrams.ADistinctive, "take back")
	assertHasDistinctive(t, bigrams.BDistinctive, "evidence based")
	assertHasDistinctive(t, trigrams.ADistinctive, "take back control")
	assertHasDistinctive(t, trigrams.BDistinctive, "evidence based policy")

	foundCommon := false
	for _, g := range bigrams.Common {
		if g.Phrase == "economic growth" {
			foundCommon = true
			if g.CountA != 4 || g.CountB != 4 {
				t.Errorf("economic growth counts = %d, %d, want 4, 4", g.CountA, g.CountB)
			}
		}
	}
	if !foundCommon {
		t.Error("economic growth should be common to both corpora")
	}

	// === Phase 4: Group statistics ===

	results, err := r.CompareGroups(rows, "Populist", "Mainstream")
	if err != nil {
		t.Fatalf("CompareGroups: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("group comparison should produce results")
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].PValue > results[i].PValue {
			t.Errorf("results out of order: p[%d]=%v > p[%d]=%v",
				i-1, results[i-1].PValue, i, results[i].PValue)
		}
	}

	var weDensity bool
	for _, res := range results {
		if res.Feature != "we_density" {
			continue
		}
		weDensity = true
		if res.Group1N != 4 || res.Group2N != 4 {
			t.Errorf("we_density group sizes = %d, %d, want 4, 4", res.Group1N, res.Group2N)
		}
		if res.Group1Mean <= res.Group2Mean {
			t.Errorf("we_density means = %v, %v, want populist higher", res.Group1Mean, res.Group2Mean)
		}
		if !res.Significant {
			t.Errorf("we_density should separate the fixture groups, p = %v", res.PValue)
		}
	}
	if !weDensity {
		t.Error("we_density missing from the battery")
	}

	t.Logf("✓ Ran %d t-tests", len(results))

	// === Phase 5: Archive the run ===

	ms := memstore.New()
	defer ms.Close()

	run := store.Run{
		ID:           store.NewRunID(),
		CreatedAt:    time.Now(),
		LabelA:       "Populist",
		LabelB:       "Mainstream",
		MinFrequency: 2,
		TopK:         10,
		Speeches:     len(rows),
	}
	if len(run.ID) != 26 {
		t.Fatalf("run ID should be a 26-character ULID, got %q", run.ID)
	}
	if err := ms.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := ms.SaveFeatures(ctx, run.ID, archive); err != nil {
		t.Fatalf("SaveFeatures: %v", err)
	}
	if err := ms.SaveComparison(ctx, run.ID, 2, bigrams); err != nil {
		t.Fatalf("SaveComparison bigrams: %v", err)
	}
	if err := ms.SaveComparison(ctx, run.ID, 3, trigrams); err != nil {
		t.Fatalf("SaveComparison trigrams: %v", err)
	}
	if err := ms.SaveTTests(ctx, run.ID, results); err != nil {
		t.Fatalf("SaveTTests: %v", err)
	}

	gotRows, err := ms.FeaturesByRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("FeaturesByRun: %v", err)
	}
	if len(gotRows) != len(archive) {
		t.Errorf("archived %d feature rows, got back %d", len(archive), len(gotRows))
	}
	comps, err := ms.ComparisonsByRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("ComparisonsByRun: %v", err)
	}
	if len(comps) != 2 {
		t.Errorf("archived 2 comparisons, got back %d", len(comps))
	}
	gotTests, err := ms.TTestsByRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("TTestsByRun: %v", err)
	}
	if len(gotTests) != len(results) {
		t.Errorf("archived %d t-tests, got back %d", len(results), len(gotTests))
	}

	t.Log("✓ End-to-end workflow completed")
}

func assertHasDistinctive(t *testing.T, grams []rank.DistinctiveGram, phrase string) {
	t.Helper()
	for _, g := range grams {
		if g.Phrase == phrase {
			if g.Ratio <= 2 {
				t.Errorf("%q ratio = %v, want > 2", phrase, g.Ratio)
			}
			return
		}
	}
	t.Errorf("%q missing from distinctive list %v", phrase, grams)
}
