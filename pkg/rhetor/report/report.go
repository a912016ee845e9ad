// Package report renders analysis results as the CSV and plain-text
// artifacts the pipeline publishes.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cognicore/rhetor/pkg/rhetor/rank"
	"github.com/cognicore/rhetor/pkg/rhetor/stats"
)

const lineWidth = 80

// FeatureRow is one speech's metadata plus its computed feature values,
// ready for export.
type FeatureRow struct {
	Filename string
	Speaker  string
	Party    string
	Country  string
	Year     string
	Category string
	Features map[string]float64
}

// Meta carries everything the master report summarizes.
type Meta struct {
	GeneratedAt time.Time
	CorpusDir   string
	LabelA      string
	LabelB      string
	Rows        []FeatureRow
	TTests      []stats.Result
}

// WriteFeaturesCSV writes the combined per-speech feature table. The
// features slice fixes the column order; floats are rounded to two
// decimals at this boundary, and a feature a row does not carry leaves
// its cell empty.
func WriteFeaturesCSV(w io.Writer, rows []FeatureRow, features []string) error {
	cw := csv.NewWriter(w)

	header := append([]string{"filename", "speaker", "party", "country", "year", "category"}, features...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write features header: %w", err)
	}

	for _, row := range rows {
		record := []string{row.Filename, row.Speaker, row.Party, row.Country, row.Year, row.Category}
		for _, f := range features {
			v, ok := row.Features[f]
			if !ok {
				record = append(record, "")
				continue
			}
			record = append(record, formatFloat(round2(v)))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write features row %s: %w", row.Filename, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteComparisonCSV writes one n-gram comparison. Rows for both
// directions keep the same column order: group A's count always comes
// before group B's.
func WriteComparisonCSV(w io.Writer, comp rank.Comparison, labelA, labelB string) error {
	cw := csv.NewWriter(w)

	header := []string{"Phrase", "Type", labelA + "_Count", labelB + "_Count", "Ratio"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write comparison header: %w", err)
	}

	for _, g := range comp.ADistinctive {
		record := []string{g.Phrase, labelA + "_Distinctive",
			strconv.FormatInt(g.Count, 10), strconv.FormatInt(g.OtherCount, 10),
			formatFloat(round2(g.Ratio))}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write comparison row %s: %w", g.Phrase, err)
		}
	}
	for _, g := range comp.BDistinctive {
		record := []string{g.Phrase, labelB + "_Distinctive",
			strconv.FormatInt(g.OtherCount, 10), strconv.FormatInt(g.Count, 10),
			formatFloat(round2(g.Ratio))}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write comparison row %s: %w", g.Phrase, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTTestsCSV writes the full t-test results sorted by p-value,
// keeping full float precision.
func WriteTTestsCSV(w io.Writer, results []stats.Result) error {
	sorted := make([]stats.Result, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].PValue != sorted[j].PValue {
			return sorted[i].PValue < sorted[j].PValue
		}
		return sorted[i].Feature < sorted[j].Feature
	})

	cw := csv.NewWriter(w)
	header := []string{"feature", "group1_mean", "group2_mean", "group1_std", "group2_std",
		"group1_n", "group2_n", "mean_difference", "t_statistic", "p_value", "cohens_d",
		"effect_size", "is_significant", "alpha"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write t-test header: %w", err)
	}

	for _, r := range sorted {
		record := []string{
			r.Feature,
			fullFloat(r.Group1Mean), fullFloat(r.Group2Mean),
			fullFloat(r.Group1Std), fullFloat(r.Group2Std),
			strconv.Itoa(r.Group1N), strconv.Itoa(r.Group2N),
			fullFloat(r.MeanDifference), fullFloat(r.TStatistic),
			fullFloat(r.PValue), fullFloat(r.CohensD),
			r.EffectSize, strconv.FormatBool(r.Significant), fullFloat(r.Alpha),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write t-test row %s: %w", r.Feature, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// NGramSummary writes the human-readable top-10 digest of the bigram
// and trigram comparisons.
func NGramSummary(w io.Writer, bigrams, trigrams rank.Comparison, labelA, labelB string) error {
	var b strings.Builder

	b.WriteString("N-GRAM ANALYSIS SUMMARY\n")
	b.WriteString(divider("=") + "\n\n")

	upperA, upperB := strings.ToUpper(labelA), strings.ToUpper(labelB)
	lowerA, lowerB := strings.ToLower(labelA), strings.ToLower(labelB)

	fmt.Fprintf(&b, "TOP 10 DISTINCTIVE %s BIGRAMS:\n", upperA)
	b.WriteString(divider("-") + "\n")
	for _, g := range top(bigrams.ADistinctive, 10) {
		fmt.Fprintf(&b, "  %-25s - %3d times (%.1fx more than %s)\n", g.Phrase, g.Count, g.Ratio, lowerB)
	}

	fmt.Fprintf(&b, "\n\nTOP 10 DISTINCTIVE %s BIGRAMS:\n", upperB)
	b.WriteString(divider("-") + "\n")
	for _, g := range top(bigrams.BDistinctive, 10) {
		fmt.Fprintf(&b, "  %-25s - %3d times (%.1fx more than %s)\n", g.Phrase, g.Count, g.Ratio, lowerA)
	}

	fmt.Fprintf(&b, "\n\nTOP 10 DISTINCTIVE %s TRIGRAMS:\n", upperA)
	b.WriteString(divider("-") + "\n")
	for _, g := range top(trigrams.ADistinctive, 10) {
		fmt.Fprintf(&b, "  %-35s - %3d times (%.1fx more)\n", g.Phrase, g.Count, g.Ratio)
	}

	fmt.Fprintf(&b, "\n\nTOP 10 DISTINCTIVE %s TRIGRAMS:\n", upperB)
	b.WriteString(divider("-") + "\n")
	for _, g := range top(trigrams.BDistinctive, 10) {
		fmt.Fprintf(&b, "  %-35s - %3d times (%.1fx more)\n", g.Phrase, g.Count, g.Ratio)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// MasterReport writes the top-level analysis summary: corpus
// composition, significant and non-significant findings, and the list
// of generated files.
func MasterReport(w io.Writer, meta Meta) error {
	var b strings.Builder

	b.WriteString(divider("=") + "\n")
	b.WriteString("COMPLETE CORPUS ANALYSIS REPORT\n")
	b.WriteString(divider("=") + "\n\n")

	fmt.Fprintf(&b, "Analysis Date: %s\n", meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Corpus Size: %d speeches\n", len(meta.Rows))
	fmt.Fprintf(&b, "Corpus Location: %s\n\n", meta.CorpusDir)

	b.WriteString("CORPUS COMPOSITION:\n")
	b.WriteString(divider("-") + "\n")
	for _, line := range composition(meta.Rows, meta.LabelA, meta.LabelB) {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "SIGNIFICANT FINDINGS (p < %.2f):\n", alphaOf(meta.TTests))
	b.WriteString(divider("=") + "\n\n")

	significant := 0
	for _, r := range meta.TTests {
		if !r.Significant {
			continue
		}
		significant++
		direction := "higher"
		if r.MeanDifference < 0 {
			direction = "lower"
		}
		fmt.Fprintf(&b, "%s:\n", strings.ToUpper(strings.ReplaceAll(r.Feature, "_", " ")))
		fmt.Fprintf(&b, "  %-13sM = %.2f, SD = %.2f\n", meta.LabelA+":", r.Group1Mean, r.Group1Std)
		fmt.Fprintf(&b, "  %-13sM = %.2f, SD = %.2f\n", meta.LabelB+":", r.Group2Mean, r.Group2Std)
		fmt.Fprintf(&b, "  Difference:  %+.2f (%s %s)\n", r.MeanDifference, meta.LabelA, direction)
		fmt.Fprintf(&b, "  Statistics:  t(%d) = %.2f, p = %.4f, d = %.2f\n",
			r.Group1N+r.Group2N-2, r.TStatistic, r.PValue, r.CohensD)
		fmt.Fprintf(&b, "  Effect size: %s\n\n", r.EffectSize)
	}
	if significant == 0 {
		b.WriteString("No significant differences found.\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "NON-SIGNIFICANT FINDINGS (p >= %.2f):\n", alphaOf(meta.TTests))
	b.WriteString(divider("=") + "\n\n")
	for _, r := range meta.TTests {
		if r.Significant {
			continue
		}
		fmt.Fprintf(&b, "%s: p = %.4f\n", strings.ReplaceAll(r.Feature, "_", " "), r.PValue)
	}

	b.WriteString("\n\n")
	b.WriteString(divider("=") + "\n")
	b.WriteString("FILES GENERATED:\n")
	b.WriteString(divider("=") + "\n\n")
	b.WriteString("1. all_features_combined.csv - All linguistic features for all speeches\n")
	b.WriteString("2. ngram_results/bigram_comparison.csv - Distinctive 2-word phrases\n")
	b.WriteString("3. ngram_results/trigram_comparison.csv - Distinctive 3-word phrases\n")
	b.WriteString("4. ngram_results/ngram_summary.txt - N-gram analysis summary\n")
	b.WriteString("5. statistical_tests.csv - Complete statistical test results\n")
	b.WriteString("6. MASTER_ANALYSIS_REPORT.txt - This file\n")
	b.WriteString("\n")
	b.WriteString(divider("=") + "\n")
	b.WriteString("ANALYSIS COMPLETE\n")
	b.WriteString(divider("=") + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// composition counts speeches per category, listing the two compared
// groups first and anything else alphabetically after them.
func composition(rows []FeatureRow, labelA, labelB string) []string {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.Category]++
	}

	var out []string
	for _, label := range []string{labelA, labelB} {
		if n, ok := counts[label]; ok {
			out = append(out, fmt.Sprintf("  %s: %d speeches", label, n))
			delete(counts, label)
		}
	}
	rest := make([]string, 0, len(counts))
	for label := range counts {
		rest = append(rest, label)
	}
	sort.Strings(rest)
	for _, label := range rest {
		out = append(out, fmt.Sprintf("  %s: %d speeches", label, counts[label]))
	}
	return out
}

func alphaOf(results []stats.Result) float64 {
	if len(results) > 0 && results[0].Alpha > 0 {
		return results[0].Alpha
	}
	return stats.DefaultAlpha
}

func top(grams []rank.DistinctiveGram, k int) []rank.DistinctiveGram {
	if len(grams) > k {
		return grams[:k]
	}
	return grams
}

func divider(ch string) string {
	return strings.Repeat(ch, lineWidth)
}

// round2 rounds to two decimals. Export code applies it at the output
// boundary only; everything upstream keeps full precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fullFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
