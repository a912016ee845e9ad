// Package sentiment scores speech text with the VADER sentiment model,
// both as a whole document and sentence by sentence.
package sentiment

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonreiter/govader"
	"gonum.org/v1/gonum/stat"

	"github.com/cognicore/rhetor/pkg/rhetor/detect"
)

// Compound-score cutoffs separating positive, neutral, and negative
// sentences. Standard VADER bucket boundaries.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// minFragment is the longest sentence fragment still skipped, in runes.
// Splitting on periods strands initials and abbreviations; scoring them
// would distort the per-sentence statistics.
const minFragment = 10

// Scores holds the four VADER polarity components for a span of text.
type Scores struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// SpeechSentiment combines whole-text polarity with sentence-level
// statistics. For long speeches the sentence statistics are the primary
// signal: the whole-text compound saturates near the extremes.
type SpeechSentiment struct {
	Overall        Scores  `json:"overall"`
	SentenceMean   float64 `json:"sentence_mean"`
	SentenceMedian float64 `json:"sentence_median"`
	SentenceStdev  float64 `json:"sentence_stdev"`
	SentenceCount  int     `json:"sentence_count"`
	PositiveCount  int     `json:"positive_count"`
	NeutralCount   int     `json:"neutral_count"`
	NegativeCount  int     `json:"negative_count"`
	PositivePct    float64 `json:"positive_pct"`
	NeutralPct     float64 `json:"neutral_pct"`
	NegativePct    float64 `json:"negative_pct"`
}

// Analyzer scores text with the stock VADER lexicon.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer returns a ready-to-use Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Score runs VADER over text as a single span. Blank text scores zero.
func (a *Analyzer) Score(text string) Scores {
	if strings.TrimSpace(text) == "" {
		return Scores{}
	}
	p := a.vader.PolarityScores(text)
	return Scores{
		Compound: p.Compound,
		Positive: p.Positive,
		Neutral:  p.Neutral,
		Negative: p.Negative,
	}
}

// AnalyzeSpeech scores the whole text and every sentence in it. Sentences
// are period-delimited; fragments of minFragment runes or fewer are skipped.
// Text with no scoreable sentences yields zeroed sentence statistics.
func (a *Analyzer) AnalyzeSpeech(text string) SpeechSentiment {
	out := SpeechSentiment{Overall: a.Score(text)}

	var compounds []float64
	for _, sent := range strings.Split(text, ".") {
		sent = strings.TrimSpace(sent)
		if utf8.RuneCountInString(sent) <= minFragment {
			continue
		}
		compounds = append(compounds, a.vader.PolarityScores(sent).Compound)
	}
	if len(compounds) == 0 {
		return out
	}

	out.SentenceCount = len(compounds)
	out.SentenceMean = stat.Mean(compounds, nil)
	out.SentenceMedian = median(compounds)
	if len(compounds) > 1 {
		out.SentenceStdev = stat.StdDev(compounds, nil)
	}
	for _, c := range compounds {
		switch {
		case c >= positiveThreshold:
			out.PositiveCount++
		case c <= negativeThreshold:
			out.NegativeCount++
		default:
			out.NeutralCount++
		}
	}
	n := float64(len(compounds))
	out.PositivePct = float64(out.PositiveCount) / n * 100
	out.NeutralPct = float64(out.NeutralCount) / n * 100
	out.NegativePct = float64(out.NegativeCount) / n * 100
	return out
}

// Tone buckets a compound score the same way AnalyzeSpeech buckets
// sentences: "positive", "negative", or "neutral".
func Tone(compound float64) string {
	switch {
	case compound >= positiveThreshold:
		return "positive"
	case compound <= negativeThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

// DomainWeights flattens detector lexicons into a single term-to-weight
// map for sentiment engines that accept lexicon extensions. Later
// lexicons win on conflicting terms; nil lexicons are skipped.
func DomainWeights(lexes ...*detect.Lexicon) map[string]float64 {
	merged := make(map[string]float64)
	for _, lex := range lexes {
		if lex == nil {
			continue
		}
		for term, w := range lex.Flatten() {
			merged[term] = w
		}
	}
	return merged
}

// median returns the middle value of xs, averaging the two central
// values when the count is even. xs is not modified.
func median(xs []float64) float64 {
	s := make([]float64, len(xs))
	copy(s, xs)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
