package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/cognicore/rhetor/pkg/rhetor/rank"
	"github.com/cognicore/rhetor/pkg/rhetor/stats"
)

func parseCSV(t *testing.T, data string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	return records
}

func TestWriteFeaturesCSV(t *testing.T) {
	rows := []FeatureRow{
		{
			Filename: "a_cleaned.txt", Speaker: "A", Party: "X", Country: "US",
			Year: "2016", Category: "Populist",
			Features: map[string]float64{
				"word_count":         1523,
				"vader_compound":     0.9912,
				"anti_elite_density": 12.456,
			},
		},
		{
			Filename: "b_cleaned.txt", Speaker: "B", Party: "Y", Country: "UK",
			Year: "2017", Category: "Mainstream",
			Features: map[string]float64{
				"word_count":     800,
				"vader_compound": -0.512,
			},
		},
	}
	features := []string{"word_count", "vader_compound", "anti_elite_density"}

	var buf bytes.Buffer
	if err := WriteFeaturesCSV(&buf, rows, features); err != nil {
		t.Fatalf("WriteFeaturesCSV: %v", err)
	}

	records := parseCSV(t, buf.String())
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	wantHeader := []string{"filename", "speaker", "party", "country", "year", "category",
		"word_count", "vader_compound", "anti_elite_density"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	first := records[1]
	if first[0] != "a_cleaned.txt" || first[5] != "Populist" {
		t.Errorf("metadata columns = %v", first[:6])
	}
	if first[6] != "1523" {
		t.Errorf("word_count = %q, want 1523", first[6])
	}
	if first[7] != "0.99" {
		t.Errorf("vader_compound = %q, want 0.99", first[7])
	}
	if first[8] != "12.46" {
		t.Errorf("anti_elite_density = %q, want 12.46", first[8])
	}

	second := records[2]
	if second[7] != "-0.51" {
		t.Errorf("vader_compound = %q, want -0.51", second[7])
	}
	if second[8] != "" {
		t.Errorf("absent feature cell = %q, want empty", second[8])
	}
}

func TestWriteComparisonCSV(t *testing.T) {
	comp := rank.Comparison{
		ADistinctive: []rank.DistinctiveGram{
			{Phrase: "take back", Count: 42, OtherCount: 2, Ratio: 14.0},
		},
		BDistinctive: []rank.DistinctiveGram{
			{Phrase: "policy framework", Count: 30, OtherCount: 1, Ratio: 15.0},
		},
	}

	var buf bytes.Buffer
	if err := WriteComparisonCSV(&buf, comp, "Populist", "Mainstream"); err != nil {
		t.Fatalf("WriteComparisonCSV: %v", err)
	}

	records := parseCSV(t, buf.String())
	wantHeader := []string{"Phrase", "Type", "Populist_Count", "Mainstream_Count", "Ratio"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	aRow := records[1]
	if aRow[1] != "Populist_Distinctive" {
		t.Errorf("A row type = %q", aRow[1])
	}
	if aRow[2] != "42" || aRow[3] != "2" {
		t.Errorf("A row counts = %q/%q, want 42/2", aRow[2], aRow[3])
	}
	if aRow[4] != "14" {
		t.Errorf("A row ratio = %q, want 14", aRow[4])
	}

	// The B-distinctive row still puts group A's count in the A column.
	bRow := records[2]
	if bRow[1] != "Mainstream_Distinctive" {
		t.Errorf("B row type = %q", bRow[1])
	}
	if bRow[2] != "1" || bRow[3] != "30" {
		t.Errorf("B row counts = %q/%q, want 1/30", bRow[2], bRow[3])
	}
}

func TestWriteTTestsCSV(t *testing.T) {
	results := []stats.Result{
		{Feature: "we_density", PValue: 0.2, Group1N: 10, Group2N: 10, EffectSize: "Small", Alpha: 0.05},
		{Feature: "anti_elite_density", PValue: 0.001, Group1N: 10, Group2N: 10,
			EffectSize: "Large", Significant: true, Alpha: 0.05},
	}

	var buf bytes.Buffer
	if err := WriteTTestsCSV(&buf, results); err != nil {
		t.Fatalf("WriteTTestsCSV: %v", err)
	}

	records := parseCSV(t, buf.String())
	if records[0][0] != "feature" || records[0][13] != "alpha" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "anti_elite_density" {
		t.Errorf("first row = %q, want lowest p first", records[1][0])
	}
	if records[1][12] != "true" || records[2][12] != "false" {
		t.Errorf("is_significant columns = %q/%q", records[1][12], records[2][12])
	}
	if len(records[1]) != 14 {
		t.Errorf("row has %d columns, want 14", len(records[1]))
	}
}

func TestWriteTTestsCSVDoesNotMutateInput(t *testing.T) {
	results := []stats.Result{
		{Feature: "b_feature", PValue: 0.9},
		{Feature: "a_feature", PValue: 0.1},
	}
	var buf bytes.Buffer
	if err := WriteTTestsCSV(&buf, results); err != nil {
		t.Fatalf("WriteTTestsCSV: %v", err)
	}
	if results[0].Feature != "b_feature" {
		t.Errorf("input slice reordered: %v", results)
	}
}

func TestNGramSummary(t *testing.T) {
	bigrams := rank.Comparison{
		ADistinctive: []rank.DistinctiveGram{
			{Phrase: "take back", Count: 42, OtherCount: 2, Ratio: 14.3},
		},
		BDistinctive: []rank.DistinctiveGram{
			{Phrase: "policy framework", Count: 30, OtherCount: 1, Ratio: 15.5},
		},
	}
	trigrams := rank.Comparison{
		ADistinctive: []rank.DistinctiveGram{
			{Phrase: "take back control", Count: 21, OtherCount: 0, Ratio: 21.0},
		},
	}

	var buf bytes.Buffer
	if err := NGramSummary(&buf, bigrams, trigrams, "Populist", "Mainstream"); err != nil {
		t.Fatalf("NGramSummary: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"N-GRAM ANALYSIS SUMMARY",
		"TOP 10 DISTINCTIVE POPULIST BIGRAMS:",
		"TOP 10 DISTINCTIVE MAINSTREAM BIGRAMS:",
		"TOP 10 DISTINCTIVE POPULIST TRIGRAMS:",
		"TOP 10 DISTINCTIVE MAINSTREAM TRIGRAMS:",
		"(14.3x more than mainstream)",
		"(15.5x more than populist)",
		"(21.0x more)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}

	wantLine := "  take back                 -  42 times (14.3x more than mainstream)"
	if !strings.Contains(out, wantLine) {
		t.Errorf("summary missing line %q", wantLine)
	}
}

func TestNGramSummaryCapsAtTen(t *testing.T) {
	var grams []rank.DistinctiveGram
	for i := 0; i < 15; i++ {
		grams = append(grams, rank.DistinctiveGram{
			Phrase: "phrase " + strings.Repeat("x", i+1), Count: int64(50 - i), Ratio: 10,
		})
	}
	bigrams := rank.Comparison{ADistinctive: grams}

	var buf bytes.Buffer
	if err := NGramSummary(&buf, bigrams, rank.Comparison{}, "A", "B"); err != nil {
		t.Fatalf("NGramSummary: %v", err)
	}
	if got := strings.Count(buf.String(), " times ("); got != 10 {
		t.Errorf("wrote %d gram lines, want 10", got)
	}
}

func TestMasterReport(t *testing.T) {
	meta := Meta{
		GeneratedAt: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		CorpusDir:   "/data/corpus",
		LabelA:      "Populist",
		LabelB:      "Mainstream",
		Rows: []FeatureRow{
			{Category: "Populist"}, {Category: "Populist"}, {Category: "Mainstream"},
		},
		TTests: []stats.Result{
			{
				Feature: "anti_elite_density", Group1Mean: 12.4, Group2Mean: 4.2,
				Group1Std: 3.1, Group2Std: 2.0, Group1N: 20, Group2N: 20,
				MeanDifference: 8.2, TStatistic: 9.12, PValue: 0.0001, CohensD: 2.88,
				EffectSize: "Large", Significant: true, Alpha: 0.05,
			},
			{
				Feature: "vader_neutral", MeanDifference: -0.1, Group1N: 20, Group2N: 20,
				PValue: 0.4521, EffectSize: "Negligible", Alpha: 0.05,
			},
		},
	}

	var buf bytes.Buffer
	if err := MasterReport(&buf, meta); err != nil {
		t.Fatalf("MasterReport: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"COMPLETE CORPUS ANALYSIS REPORT",
		"Analysis Date: 2026-01-15 10:30:00",
		"Corpus Size: 3 speeches",
		"Corpus Location: /data/corpus",
		"  Populist: 2 speeches",
		"  Mainstream: 1 speeches",
		"SIGNIFICANT FINDINGS (p < 0.05):",
		"ANTI ELITE DENSITY:",
		"  Populist:    M = 12.40, SD = 3.10",
		"  Mainstream:  M = 4.20, SD = 2.00",
		"  Difference:  +8.20 (Populist higher)",
		"  Statistics:  t(38) = 9.12, p = 0.0001, d = 2.88",
		"  Effect size: Large",
		"NON-SIGNIFICANT FINDINGS (p >= 0.05):",
		"vader neutral: p = 0.4521",
		"6. MASTER_ANALYSIS_REPORT.txt - This file",
		"ANALYSIS COMPLETE",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestMasterReportNoSignificantFindings(t *testing.T) {
	meta := Meta{
		GeneratedAt: time.Now(),
		LabelA:      "Populist",
		LabelB:      "Mainstream",
		TTests: []stats.Result{
			{Feature: "we_density", PValue: 0.8, Alpha: 0.05},
		},
	}

	var buf bytes.Buffer
	if err := MasterReport(&buf, meta); err != nil {
		t.Fatalf("MasterReport: %v", err)
	}
	if !strings.Contains(buf.String(), "No significant differences found.") {
		t.Error("report missing no-findings notice")
	}
}

func TestMasterReportLowerDirection(t *testing.T) {
	meta := Meta{
		GeneratedAt: time.Now(),
		LabelA:      "Populist",
		LabelB:      "Mainstream",
		TTests: []stats.Result{
			{
				Feature: "flesch_reading_ease", MeanDifference: -10.5,
				Group1N: 5, Group2N: 5, PValue: 0.002, Significant: true,
				EffectSize: "Large", Alpha: 0.05,
			},
		},
	}

	var buf bytes.Buffer
	if err := MasterReport(&buf, meta); err != nil {
		t.Fatalf("MasterReport: %v", err)
	}
	if !strings.Contains(buf.String(), "(Populist lower)") {
		t.Error("report missing lower direction")
	}
}

func TestCompositionOrdersExtraCategoriesLast(t *testing.T) {
	rows := []FeatureRow{
		{Category: "Unknown"}, {Category: "Mainstream"}, {Category: "Populist"},
	}
	got := composition(rows, "Populist", "Mainstream")
	want := []string{
		"  Populist: 1 speeches",
		"  Mainstream: 1 speeches",
		"  Unknown: 1 speeches",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.0, "3"},
		{0.126, "0.13"},
		{-0.512, "-0.51"},
		{14.25, "14.25"},
	}
	for _, tt := range tests {
		if got := formatFloat(round2(tt.in)); got != tt.want {
			t.Errorf("formatFloat(round2(%v)) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
