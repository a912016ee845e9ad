package rhetor

import (
	"fmt"

	"github.com/cognicore/rhetor/pkg/rhetor/analytics"
	"github.com/cognicore/rhetor/pkg/rhetor/detect"
	"github.com/cognicore/rhetor/pkg/rhetor/ingest"
	"github.com/cognicore/rhetor/pkg/rhetor/internalerr"
	"github.com/cognicore/rhetor/pkg/rhetor/rank"
	"github.com/cognicore/rhetor/pkg/rhetor/readability"
	"github.com/cognicore/rhetor/pkg/rhetor/sentiment"
	"github.com/cognicore/rhetor/pkg/rhetor/stats"
	"github.com/cognicore/rhetor/pkg/rhetor/stoplist"
)

// Rhetor is the main analysis facade: one tokenizer and stoplist gate
// shared by the n-gram pipeline, the four rhetoric detectors, sentiment,
// readability, and the statistical battery.
type Rhetor struct {
	tokenizer *ingest.Tokenizer
	gate      *stoplist.Gate
	antiElite *detect.AntiElite
	crisis    *detect.Crisis
	certainty *detect.Certainty
	pronouns  *detect.Pronouns
	sentiment *sentiment.Analyzer
	reader    *readability.Analyzer
	tester    *stats.Tester
	cfg       rank.Config
}

// Options configures a Rhetor instance. Zero values fall back to the
// defaults; component fields override the built-ins (the config Loader
// produces overridden components from files).
type Options struct {
	MinFrequency int
	TopK         int
	Alpha        float64

	Tokenizer *ingest.Tokenizer
	Gate      *stoplist.Gate
	AntiElite *detect.AntiElite
	Crisis    *detect.Crisis
	Certainty *detect.Certainty
}

// New creates a Rhetor instance, validating the numeric parameters.
func New(opts Options) (*Rhetor, error) {
	cfg := rank.DefaultConfig()
	if opts.MinFrequency != 0 {
		cfg.MinFrequency = opts.MinFrequency
	}
	if opts.TopK != 0 {
		cfg.TopK = opts.TopK
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	alpha := opts.Alpha
	if alpha == 0 {
		alpha = stats.DefaultAlpha
	}
	if alpha < 0 || alpha >= 1 {
		return nil, fmt.Errorf("alpha must be in (0, 1), got %v: %w", alpha, internalerr.ErrInvalidConfig)
	}

	r := &Rhetor{
		tokenizer: opts.Tokenizer,
		gate:      opts.Gate,
		antiElite: opts.AntiElite,
		crisis:    opts.Crisis,
		certainty: opts.Certainty,
		pronouns:  detect.NewPronouns(),
		sentiment: sentiment.NewAnalyzer(),
		reader:    readability.NewAnalyzer(),
		tester:    stats.NewTester(alpha),
		cfg:       cfg,
	}
	if r.tokenizer == nil {
		r.tokenizer = ingest.NewTokenizer()
	}
	if r.gate == nil {
		r.gate = stoplist.NewGate()
	}
	if r.antiElite == nil {
		r.antiElite = detect.NewAntiElite()
	}
	if r.crisis == nil {
		r.crisis = detect.NewCrisis()
	}
	if r.certainty == nil {
		r.certainty = detect.NewCertainty()
	}
	return r, nil
}

// CompareCorpora runs the full n-gram pipeline over both corpora and
// ranks the grams that separate them.
func (r *Rhetor) CompareCorpora(corpusA, corpusB []string, n int) (rank.Comparison, error) {
	if n < 1 {
		return rank.Comparison{}, fmt.Errorf("gram size must be >= 1, got %d: %w", n, internalerr.ErrInvalidInput)
	}
	tableA := analytics.Aggregate(corpusA, n, r.tokenizer, r.gate)
	tableB := analytics.Aggregate(corpusB, n, r.tokenizer, r.gate)
	return rank.Compare(tableA, tableB, r.cfg)
}

// TopPhrases returns the most frequent n-grams of a single text.
func (r *Rhetor) TopPhrases(text string, n int) ([]rank.GramCount, error) {
	if n < 1 {
		return nil, fmt.Errorf("gram size must be >= 1, got %d: %w", n, internalerr.ErrInvalidInput)
	}
	table := analytics.Aggregate([]string{text}, n, r.tokenizer, r.gate)
	return rank.TopGrams(table, r.cfg)
}

// Features holds every feature family computed for one speech.
type Features struct {
	WordCount   int
	Sentiment   sentiment.SpeechSentiment
	AntiElite   detect.AntiEliteResult
	Crisis      detect.CrisisResult
	Certainty   detect.CertaintyResult
	Pronouns    detect.PronounResult
	Readability readability.Result
}

// AnalyzeSpeech computes all six feature families for one speech.
func (r *Rhetor) AnalyzeSpeech(text string) (Features, error) {
	read, err := r.reader.Analyze(text)
	if err != nil {
		return Features{}, err
	}
	elite := r.antiElite.Analyze(text)
	return Features{
		WordCount:   elite.WordCount,
		Sentiment:   r.sentiment.AnalyzeSpeech(text),
		AntiElite:   elite,
		Crisis:      r.crisis.Analyze(text),
		Certainty:   r.certainty.Analyze(text),
		Pronouns:    r.pronouns.Analyze(text),
		Readability: read,
	}, nil
}

// Map flattens the families into the canonical named-feature map.
func (f Features) Map() map[string]float64 {
	return map[string]float64{
		"word_count": float64(f.WordCount),

		"vader_compound": f.Sentiment.Overall.Compound,
		"vader_positive": f.Sentiment.Overall.Positive,
		"vader_negative": f.Sentiment.Overall.Negative,
		"vader_neutral":  f.Sentiment.Overall.Neutral,

		"anti_elite_count":   float64(f.AntiElite.TotalCount),
		"anti_elite_density": f.AntiElite.Density,

		"crisis_count":   float64(f.Crisis.TotalCount),
		"crisis_density": f.Crisis.Density,

		"certainty_count":         float64(f.Certainty.CertaintyCount),
		"certainty_density":       f.Certainty.CertaintyDensity,
		"hedging_count":           float64(f.Certainty.Hedging.Count),
		"hedging_density":         f.Certainty.HedgingDensity,
		"certainty_hedging_ratio": f.Certainty.CertaintyHedgingRatio,

		"we_count":      float64(f.Pronouns.WeCount),
		"they_count":    float64(f.Pronouns.TheyCount),
		"we_density":    f.Pronouns.WeDensity,
		"they_density":  f.Pronouns.TheyDensity,
		"we_they_ratio": f.Pronouns.WeTheyRatio,

		"flesch_reading_ease":  f.Readability.FleschReadingEase,
		"flesch_kincaid_grade": f.Readability.FleschKincaid,
		"avg_sentence_length":  f.Readability.AvgSentenceLength,
		"difficult_words_pct":  f.Readability.DifficultWordsPct,
	}
}

// FeatureOrder is the canonical column order of the combined feature
// table.
func FeatureOrder() []string {
	return []string{
		"word_count",
		"vader_compound", "vader_positive", "vader_negative", "vader_neutral",
		"anti_elite_count", "anti_elite_density",
		"crisis_count", "crisis_density",
		"certainty_count", "certainty_density", "hedging_count", "hedging_density",
		"certainty_hedging_ratio",
		"we_count", "they_count", "we_density", "they_density", "we_they_ratio",
		"flesch_reading_ease", "flesch_kincaid_grade", "avg_sentence_length",
		"difficult_words_pct",
	}
}

// TestedFeatures is the standard feature list the statistical battery
// compares between groups.
func TestedFeatures() []string {
	return []string{
		"vader_compound", "vader_positive", "vader_negative",
		"anti_elite_density", "crisis_density",
		"certainty_density", "hedging_density", "certainty_hedging_ratio",
		"we_density", "they_density", "we_they_ratio",
		"flesch_reading_ease", "avg_sentence_length", "difficult_words_pct",
	}
}

// SpeechFeatures pairs one speech's group label with its feature map.
type SpeechFeatures struct {
	Category string
	Features map[string]float64
}

// CompareGroups runs the t-test battery over the standard feature list,
// splitting rows by category label. Results come back most significant
// first.
func (r *Rhetor) CompareGroups(rows []SpeechFeatures, labelA, labelB string) ([]stats.Result, error) {
	groupA := make(map[string][]float64)
	groupB := make(map[string][]float64)
	for _, row := range rows {
		var dst map[string][]float64
		switch row.Category {
		case labelA:
			dst = groupA
		case labelB:
			dst = groupB
		default:
			continue
		}
		for _, f := range TestedFeatures() {
			if v, ok := row.Features[f]; ok {
				dst[f] = append(dst[f], v)
			}
		}
	}
	if len(groupA) == 0 || len(groupB) == 0 {
		return nil, fmt.Errorf("compare groups: both %q and %q need speeches: %w",
			labelA, labelB, internalerr.ErrInvalidInput)
	}
	return r.tester.CompareFeatures(groupA, groupB, TestedFeatures()), nil
}
