// Package readability scores text against the classic readability
// formulas (Flesch, SMOG, Coleman-Liau, ARI, Dale-Chall, Gunning Fog,
// Linsear Write) and reports a consensus US grade level.
package readability

import (
	_ "embed"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"

	"github.com/cognicore/rhetor/pkg/rhetor/ingest"
)

//go:embed commonwords.txt
var commonWordsData string

// Result holds every readability score and the text statistics behind them.
type Result struct {
	FleschReadingEase float64 `json:"flesch_reading_ease"`
	FleschKincaid     float64 `json:"flesch_kincaid_grade"`
	SMOG              float64 `json:"smog_index"`
	ColemanLiau       float64 `json:"coleman_liau_index"`
	ARI               float64 `json:"automated_readability_index"`
	DaleChall         float64 `json:"dale_chall_score"`
	GunningFog        float64 `json:"gunning_fog"`
	LinsearWrite      float64 `json:"linsear_write"`
	ConsensusGrade    float64 `json:"consensus_grade_level"`

	WordCount         int `json:"word_count"`
	SentenceCount     int `json:"sentence_count"`
	SyllableCount     int `json:"syllable_count"`
	CharCount         int `json:"char_count"`
	LetterCount       int `json:"letter_count"`
	DifficultWords    int `json:"difficult_words"`
	PolysyllabicWords int `json:"polysyllabic_count"`
	MonosyllabicWords int `json:"monosyllabic_count"`

	AvgSentenceLength   float64 `json:"avg_sentence_length"`
	AvgSyllablesPerWord float64 `json:"avg_syllables_per_word"`
	AvgCharsPerWord     float64 `json:"avg_chars_per_word"`
	DifficultWordsPct   float64 `json:"difficult_words_pct"`
	PolysyllabicPct     float64 `json:"polysyllabic_pct"`
}

// Analyzer scores texts. Construct with NewAnalyzer so the embedded
// common-word list is loaded.
type Analyzer struct {
	common map[string]struct{}
}

// NewAnalyzer returns an Analyzer backed by the embedded common-word list.
func NewAnalyzer() *Analyzer {
	common := make(map[string]struct{})
	for _, line := range strings.Split(commonWordsData, "\n") {
		word := strings.TrimSpace(strings.ToLower(line))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		common[word] = struct{}{}
	}
	return &Analyzer{common: common}
}

// Analyze scores text against all formulas. Words come from the
// unfiltered splitter, sentences from statistical segmentation, and
// syllables from Syllables. Blank text yields a zero Result and no error.
func (a *Analyzer) Analyze(text string) (Result, error) {
	words := ingest.Words(text)
	if len(words) == 0 {
		return Result{}, nil
	}

	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return Result{}, fmt.Errorf("segment sentences: %w", err)
	}
	sentences := len(doc.Sentences())
	if sentences < 1 {
		sentences = 1
	}

	var r Result
	r.WordCount = len(words)
	r.SentenceCount = sentences
	for _, w := range words {
		syl := Syllables(w)
		r.SyllableCount += syl
		switch {
		case syl == 1:
			r.MonosyllabicWords++
		case syl >= 3:
			r.PolysyllabicWords++
		}
		if syl >= 2 && !a.isCommon(w) {
			r.DifficultWords++
		}
	}
	for _, ch := range text {
		if unicode.IsSpace(ch) {
			continue
		}
		r.CharCount++
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			r.LetterCount++
		}
	}

	wc := float64(r.WordCount)
	sc := float64(r.SentenceCount)
	r.AvgSentenceLength = wc / sc
	r.AvgSyllablesPerWord = float64(r.SyllableCount) / wc
	r.AvgCharsPerWord = float64(r.CharCount) / wc
	r.DifficultWordsPct = float64(r.DifficultWords) / wc * 100
	r.PolysyllabicPct = float64(r.PolysyllabicWords) / wc * 100

	r.FleschReadingEase = 206.835 - 1.015*r.AvgSentenceLength - 84.6*r.AvgSyllablesPerWord
	r.FleschKincaid = 0.39*r.AvgSentenceLength + 11.8*r.AvgSyllablesPerWord - 15.59
	// SMOG is calibrated on 30-sentence samples and unstable below
	// three sentences.
	if sentences >= 3 {
		r.SMOG = 1.043*math.Sqrt(float64(r.PolysyllabicWords)*30/sc) + 3.1291
	}
	lettersPer100 := float64(r.LetterCount) / wc * 100
	sentencesPer100 := sc / wc * 100
	r.ColemanLiau = 0.0588*lettersPer100 - 0.296*sentencesPer100 - 15.8
	r.ARI = 4.71*float64(r.CharCount)/wc + 0.5*r.AvgSentenceLength - 21.43
	r.DaleChall = 0.1579*r.DifficultWordsPct + 0.0496*r.AvgSentenceLength
	if r.DifficultWordsPct > 5 {
		r.DaleChall += 3.6365
	}
	r.GunningFog = 0.4 * (r.AvgSentenceLength + r.PolysyllabicPct)
	r.LinsearWrite = linsearWrite(text)

	grades := []float64{r.FleschKincaid, r.ColemanLiau, r.ARI, r.GunningFog, r.LinsearWrite}
	if r.SMOG != 0 {
		grades = append(grades, r.SMOG)
	}
	r.ConsensusGrade = median(grades)

	return r, nil
}

func (a *Analyzer) isCommon(word string) bool {
	_, ok := a.common[word]
	return ok
}

// linsearWrite implements the Linsear Write formula over the first
// hundred whitespace-delimited words: easy words (under three
// syllables) score one point, hard words three; the total is divided
// by the sample's sentence count, adjusted, and halved.
func linsearWrite(text string) float64 {
	fields := strings.Fields(text)
	if len(fields) > 100 {
		fields = fields[:100]
	}
	if len(fields) == 0 {
		return 0
	}
	var points float64
	for _, f := range fields {
		syl := 0
		for _, w := range ingest.Words(f) {
			syl += Syllables(w)
		}
		switch {
		case syl == 0:
		case syl < 3:
			points++
		default:
			points += 3
		}
	}
	score := points / float64(sampleSentences(strings.Join(fields, " ")))
	if score <= 20 {
		score -= 2
	}
	return score / 2
}

// sampleSentences counts sentences in a fragment: each run of
// terminator punctuation ends one, and a trailing unterminated
// fragment counts as one more.
func sampleSentences(s string) int {
	n := 0
	prevTerm := false
	for _, r := range s {
		term := r == '.' || r == '!' || r == '?'
		if term && !prevTerm {
			n++
		}
		prevTerm = term
	}
	trimmed := strings.TrimRight(strings.TrimSpace(s), `"')]`)
	if trimmed != "" && !strings.HasSuffix(trimmed, ".") &&
		!strings.HasSuffix(trimmed, "!") && !strings.HasSuffix(trimmed, "?") {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
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

// InterpretFlesch names the reading-ease band a Flesch score falls in.
func InterpretFlesch(score float64) string {
	switch {
	case score >= 90:
		return "Very Easy (5th grade)"
	case score >= 80:
		return "Easy (6th grade)"
	case score >= 70:
		return "Fairly Easy (7th grade)"
	case score >= 60:
		return "Standard (8th-9th grade)"
	case score >= 50:
		return "Fairly Difficult (10th-12th grade)"
	case score >= 30:
		return "Difficult (College)"
	default:
		return "Very Difficult (Graduate)"
	}
}

// ComplexityLevel maps a US grade level onto a 1-5 complexity scale.
func ComplexityLevel(grade float64) (int, string) {
	switch {
	case grade < 6:
		return 1, "Elementary"
	case grade < 9:
		return 2, "Middle School"
	case grade < 13:
		return 3, "High School"
	case grade < 16:
		return 4, "College"
	default:
		return 5, "Graduate"
	}
}
