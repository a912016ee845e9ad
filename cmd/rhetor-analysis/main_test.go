package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cognicore/rhetor/internal/speeches"
	"github.com/cognicore/rhetor/pkg/rhetor/rank"
	"github.com/cognicore/rhetor/pkg/rhetor/report"
)

func TestBuildEngineDefaults(t *testing.T) {
	engine, cfg, err := buildEngine("", "", 0, 0, 0)
	if err != nil {
		t.Fatalf("buildEngine: %v", err)
	}
	if engine == nil {
		t.Fatal("engine should not be nil")
	}
	if cfg.Analysis.MinFrequency != 5 || cfg.Analysis.TopK != 30 {
		t.Errorf("default analysis config = %+v", cfg.Analysis)
	}
}

func TestBuildEngineFlagOverrides(t *testing.T) {
	_, cfg, err := buildEngine("", "", 2, 10, 0.01)
	if err != nil {
		t.Fatalf("buildEngine: %v", err)
	}
	if cfg.Analysis.MinFrequency != 2 || cfg.Analysis.TopK != 10 || cfg.Analysis.Alpha != 0.01 {
		t.Errorf("overridden analysis config = %+v", cfg.Analysis)
	}
}

func TestBuildEngineNonExistentConfig(t *testing.T) {
	if _, _, err := buildEngine(filepath.Join(t.TempDir(), "missing.yaml"), "", 0, 0, 0); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestBuildEngineRejectsBadOverride(t *testing.T) {
	if _, _, err := buildEngine("", "", -1, 0, 0); err == nil {
		t.Fatal("expected error for negative min frequency")
	}
}

func TestAnalyzeCorpus(t *testing.T) {
	engine, _, err := buildEngine("", "", 2, 10, 0)
	if err != nil {
		t.Fatalf("buildEngine: %v", err)
	}

	// A distinctive bigram needs a ratio strictly above 2, so each marker
	// phrase appears three times per corpus.
	loaded := []speeches.Speech{
		{Filename: "p1_cleaned.txt", Category: "Populist", Text: "We will take back control of our country. The corrupt elites betrayed the people of this nation."},
		{Filename: "p2_cleaned.txt", Category: "Populist", Text: "We will take back control and drain the swamp. The establishment ignored the people for too long."},
		{Filename: "p3_cleaned.txt", Category: "Populist", Text: "Together we take back control from the rigged system and return power to the people."},
		{Filename: "m1_cleaned.txt", Category: "Mainstream", Text: "Evidence based policy supports sustainable economic reform across government departments."},
		{Filename: "m2_cleaned.txt", Category: "Mainstream", Text: "Evidence based policy guides the budget and the healthcare funding settlement."},
		{Filename: "m3_cleaned.txt", Category: "Mainstream", Text: "This administration follows evidence based policy in every spending review."},
	}
	out, err := analyzeCorpus(engine, loaded, "Populist", "Mainstream")
	if err != nil {
		t.Fatalf("analyzeCorpus: %v", err)
	}

	if len(out.rows) != 6 || len(out.archive) != 6 {
		t.Fatalf("got %d report rows, %d archive rows, want 6, 6", len(out.rows), len(out.archive))
	}
	if out.rows[0].Filename != "p1_cleaned.txt" {
		t.Errorf("rows[0].Filename = %q, want p1_cleaned.txt", out.rows[0].Filename)
	}
	if len(out.bigrams.ADistinctive) == 0 {
		t.Error("expected populist-distinctive bigrams")
	}
	if len(out.bigrams.BDistinctive) == 0 {
		t.Error("expected mainstream-distinctive bigrams")
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()

	meta := report.Meta{
		GeneratedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		CorpusDir:   "corpus",
		LabelA:      "Populist",
		LabelB:      "Mainstream",
		Rows: []report.FeatureRow{
			{Filename: "a_cleaned.txt", Speaker: "Speaker A", Category: "Populist",
				Features: map[string]float64{"word_count": 100, "we_density": 42.5}},
		},
	}
	bigrams := rank.Comparison{
		ADistinctive: []rank.DistinctiveGram{{Phrase: "take back", Count: 6, OtherCount: 0, Ratio: 6}},
	}

	if err := writeArtifacts(dir, meta, bigrams, rank.Comparison{}); err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	for _, name := range []string{
		"all_features_combined.csv",
		"statistical_tests.csv",
		"MASTER_ANALYSIS_REPORT.txt",
		filepath.Join("ngram_results", "bigram_comparison.csv"),
		filepath.Join("ngram_results", "trigram_comparison.csv"),
		filepath.Join("ngram_results", "ngram_summary.txt"),
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}

	features, err := os.ReadFile(filepath.Join(dir, "all_features_combined.csv"))
	if err != nil {
		t.Fatalf("read features: %v", err)
	}
	if !strings.HasPrefix(string(features), "filename,speaker,party,country,year,category,word_count") {
		t.Errorf("features header = %q", strings.SplitN(string(features), "\n", 2)[0])
	}

	summary, err := os.ReadFile(filepath.Join(dir, "ngram_results", "ngram_summary.txt"))
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if !strings.Contains(string(summary), "N-GRAM ANALYSIS SUMMARY") {
		t.Error("summary missing banner")
	}
	if !strings.Contains(string(summary), "take back") {
		t.Error("summary missing distinctive bigram")
	}
}
