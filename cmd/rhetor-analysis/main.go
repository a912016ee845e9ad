package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cognicore/rhetor/internal/speeches"
	"github.com/cognicore/rhetor/pkg/rhetor"
	"github.com/cognicore/rhetor/pkg/rhetor/config"
	"github.com/cognicore/rhetor/pkg/rhetor/rank"
	"github.com/cognicore/rhetor/pkg/rhetor/report"
	"github.com/cognicore/rhetor/pkg/rhetor/stats"
	"github.com/cognicore/rhetor/pkg/rhetor/store"
	"github.com/cognicore/rhetor/pkg/rhetor/store/sqlite"
)

func main() {
	var (
		metadataPath = flag.String("metadata", "", "Corpus metadata CSV (required)")
		speechesDir  = flag.String("speeches", "", "Directory with cleaned speech texts (required)")
		outDir       = flag.String("out", "analysis_results", "Output directory")
		configPath   = flag.String("config", "", "YAML config file (optional)")
		stoplistPath = flag.String("stoplist", "", "Stoplist YAML file (optional)")
		minFreq      = flag.Int("min-freq", 0, "Minimum n-gram frequency (overrides config)")
		topK         = flag.Int("top-k", 0, "Result list cap (overrides config)")
		alpha        = flag.Float64("alpha", 0, "Significance level (overrides config)")
		labelA       = flag.String("label-a", "Populist", "First comparison group")
		labelB       = flag.String("label-b", "Mainstream", "Second comparison group")
		dbPath       = flag.String("sqlite", "", "Optional SQLite archive for this run")
		detectLang   = flag.Bool("detect-language", false, "Tag speeches that are reliably not English")
	)
	flag.Parse()

	if *metadataPath == "" {
		log.Fatal("--metadata required")
	}
	if *speechesDir == "" {
		log.Fatal("--speeches required")
	}

	engine, cfg, err := buildEngine(*configPath, *stoplistPath, *minFreq, *topK, *alpha)
	if err != nil {
		log.Fatal("Failed to build engine: ", err)
	}

	metadata, err := speeches.LoadMetadata(*metadataPath)
	if err != nil {
		log.Fatal("Failed to load metadata: ", err)
	}
	log.Printf("Loaded metadata for %d speeches from %s", len(metadata), *metadataPath)

	loaded, err := speeches.LoadTexts(*speechesDir, metadata, speeches.LoadOptions{DetectLanguage: *detectLang})
	if err != nil {
		log.Fatal("Failed to load speech texts: ", err)
	}
	log.Printf("Loaded %d speech texts from %s", len(loaded), *speechesDir)

	out, err := analyzeCorpus(engine, loaded, *labelA, *labelB)
	if err != nil {
		log.Fatal("Analysis failed: ", err)
	}
	log.Printf("Computed features for %d speeches, %d t-tests", len(out.rows), len(out.ttests))

	meta := report.Meta{
		GeneratedAt: time.Now(),
		CorpusDir:   *speechesDir,
		LabelA:      *labelA,
		LabelB:      *labelB,
		Rows:        out.rows,
		TTests:      out.ttests,
	}
	if err := writeArtifacts(*outDir, meta, out.bigrams, out.trigrams); err != nil {
		log.Fatal("Failed to write results: ", err)
	}
	log.Printf("✓ Results written to %s", *outDir)

	if *dbPath != "" {
		if err := archiveRun(context.Background(), *dbPath, cfg, out, *labelA, *labelB); err != nil {
			log.Fatal("Failed to archive run: ", err)
		}
		log.Printf("✓ Run archived to %s", *dbPath)
	}

	// The master report also goes to stdout, like the files list at the
	// end of a long run.
	var sb strings.Builder
	if err := report.MasterReport(&sb, meta); err != nil {
		log.Fatal("Failed to render report: ", err)
	}
	fmt.Println()
	fmt.Print(sb.String())
}

// buildEngine loads the configuration files, applies flag overrides, and
// constructs the analysis engine.
func buildEngine(configPath, stoplistPath string, minFreq, topK int, alpha float64) (*rhetor.Rhetor, config.Config, error) {
	loader := config.Loader{
		ConfigPath:   configPath,
		StoplistPath: stoplistPath,
	}
	components, err := loader.Load()
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg := components.Config
	if minFreq != 0 {
		cfg.Analysis.MinFrequency = minFreq
	}
	if topK != 0 {
		cfg.Analysis.TopK = topK
	}
	if alpha != 0 {
		cfg.Analysis.Alpha = alpha
	}
	if err := cfg.Validate(); err != nil {
		return nil, config.Config{}, err
	}

	engine, err := rhetor.New(rhetor.Options{
		MinFrequency: cfg.Analysis.MinFrequency,
		TopK:         cfg.Analysis.TopK,
		Alpha:        cfg.Analysis.Alpha,
		Tokenizer:    components.Tokenizer,
		Gate:         components.Gate,
		AntiElite:    components.AntiElite,
		Crisis:       components.Crisis,
		Certainty:    components.Certainty,
	})
	if err != nil {
		return nil, config.Config{}, err
	}
	return engine, cfg, nil
}

// corpusOutput collects everything one analysis run produces.
type corpusOutput struct {
	rows     []report.FeatureRow
	archive  []store.FeatureRow
	bigrams  rank.Comparison
	trigrams rank.Comparison
	ttests   []stats.Result
}

// analyzeCorpus computes per-speech features, the bigram and trigram
// comparisons, and the t-test battery.
func analyzeCorpus(engine *rhetor.Rhetor, loaded []speeches.Speech, labelA, labelB string) (corpusOutput, error) {
	var out corpusOutput
	var grouped []rhetor.SpeechFeatures

	for i, sp := range loaded {
		feats, err := engine.AnalyzeSpeech(sp.Text)
		if err != nil {
			return corpusOutput{}, fmt.Errorf("analyze %s: %w", sp.Filename, err)
		}
		m := feats.Map()
		out.rows = append(out.rows, report.FeatureRow{
			Filename: sp.Filename,
			Speaker:  sp.Speaker,
			Party:    sp.Party,
			Country:  sp.Country,
			Year:     sp.Year,
			Category: sp.Category,
			Features: m,
		})
		out.archive = append(out.archive, store.FeatureRow{
			Filename: sp.Filename,
			Speaker:  sp.Speaker,
			Party:    sp.Party,
			Country:  sp.Country,
			Year:     sp.Year,
			Category: sp.Category,
			Features: m,
		})
		grouped = append(grouped, rhetor.SpeechFeatures{Category: sp.Category, Features: m})

		if (i+1)%10 == 0 {
			log.Printf("Analyzed %d/%d speeches", i+1, len(loaded))
		}
	}

	corpusA, corpusB := speeches.SplitByCategory(loaded, labelA, labelB)

	var err error
	if out.bigrams, err = engine.CompareCorpora(corpusA, corpusB, 2); err != nil {
		return corpusOutput{}, fmt.Errorf("bigram comparison: %w", err)
	}
	if out.trigrams, err = engine.CompareCorpora(corpusA, corpusB, 3); err != nil {
		return corpusOutput{}, fmt.Errorf("trigram comparison: %w", err)
	}
	if out.ttests, err = engine.CompareGroups(grouped, labelA, labelB); err != nil {
		return corpusOutput{}, fmt.Errorf("group statistics: %w", err)
	}
	return out, nil
}

// writeArtifacts writes the combined feature table, the n-gram results,
// the t-test CSV, and the master report under outDir.
func writeArtifacts(outDir string, meta report.Meta, bigrams, trigrams rank.Comparison) error {
	ngramDir := filepath.Join(outDir, "ngram_results")
	if err := os.MkdirAll(ngramDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := writeFile(filepath.Join(outDir, "all_features_combined.csv"), func(f *os.File) error {
		return report.WriteFeaturesCSV(f, meta.Rows, rhetor.FeatureOrder())
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(ngramDir, "bigram_comparison.csv"), func(f *os.File) error {
		return report.WriteComparisonCSV(f, bigrams, meta.LabelA, meta.LabelB)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(ngramDir, "trigram_comparison.csv"), func(f *os.File) error {
		return report.WriteComparisonCSV(f, trigrams, meta.LabelA, meta.LabelB)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(ngramDir, "ngram_summary.txt"), func(f *os.File) error {
		return report.NGramSummary(f, bigrams, trigrams, meta.LabelA, meta.LabelB)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(outDir, "statistical_tests.csv"), func(f *os.File) error {
		return report.WriteTTestsCSV(f, meta.TTests)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(outDir, "MASTER_ANALYSIS_REPORT.txt"), func(f *os.File) error {
		return report.MasterReport(f, meta)
	})
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// archiveRun saves the run and its outputs to the SQLite archive.
func archiveRun(ctx context.Context, dbPath string, cfg config.Config, out corpusOutput, labelA, labelB string) error {
	st, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer st.Close()

	run := store.Run{
		ID:           store.NewRunID(),
		CreatedAt:    time.Now(),
		LabelA:       labelA,
		LabelB:       labelB,
		MinFrequency: cfg.Analysis.MinFrequency,
		TopK:         cfg.Analysis.TopK,
		Speeches:     len(out.archive),
	}
	if err := st.SaveRun(ctx, run); err != nil {
		return err
	}
	if err := st.SaveFeatures(ctx, run.ID, out.archive); err != nil {
		return err
	}
	if err := st.SaveComparison(ctx, run.ID, 2, out.bigrams); err != nil {
		return err
	}
	if err := st.SaveComparison(ctx, run.ID, 3, out.trigrams); err != nil {
		return err
	}
	return st.SaveTTests(ctx, run.ID, out.ttests)
}
