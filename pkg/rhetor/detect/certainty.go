package detect

import "github.com/cognicore/rhetor/pkg/rhetor/ingest"

// Certainty lexicon category names. Hedging carries negative weights: it
// is the counter-signal, measured in the same pass.
const (
	CatCertaintyMarkers = "certainty_markers"
	CatCertaintyModals  = "certainty_modals"
	CatEmphatic         = "emphatic_certainty"
	CatCertaintyPhrases = "certainty_phrases"
	CatHedging          = "hedging_markers"
)

// CertaintyLexicon returns the default epistemic-certainty lexicon.
func CertaintyLexicon() *Lexicon {
	lex := NewLexicon("certainty")
	lex.AddAll(CatCertaintyMarkers, map[string]float64{
		"certain":        3.0,
		"certainly":      3.0,
		"sure":           2.5,
		"surely":         2.5,
		"definite":       3.0,
		"definitely":     3.0,
		"absolute":       3.5,
		"absolutely":     3.5,
		"undoubtedly":    3.5,
		"without doubt":  3.5,
		"no doubt":       3.0,
		"beyond doubt":   3.5,
		"unquestionably": 3.5,
		"indisputable":   3.5,
		"indisputably":   3.5,
		"inevitable":     3.0,
		"inevitably":     3.0,
		"guaranteed":     3.0,
		"guarantee":      2.5,
	})
	lex.AddAll(CatCertaintyModals, map[string]float64{
		"will":     2.0,
		"shall":    2.5,
		"must":     2.5,
		"have to":  2.0,
		"need to":  2.0,
		"going to": 1.5,
	})
	lex.AddAll(CatEmphatic, map[string]float64{
		"clearly":            2.5,
		"obviously":          3.0,
		"evidently":          2.5,
		"plainly":            2.5,
		"manifestly":         3.0,
		"patently":           3.0,
		"undeniably":         3.5,
		"incontrovertibly":   3.5,
		"unequivocally":      3.5,
		"categorically":      3.0,
		"absolutely certain": 4.0,
		"perfectly clear":    3.5,
		"crystal clear":      3.5,
		"without question":   3.5,
	})
	lex.AddAll(CatCertaintyPhrases, map[string]float64{
		"make no mistake":      3.5,
		"let me be clear":      3.0,
		"the fact is":          3.0,
		"the truth is":         3.0,
		"there is no question": 3.5,
		"rest assured":         3.0,
		"mark my words":        3.5,
		"you can be sure":      3.0,
		"i guarantee":          3.5,
		"i promise":            3.0,
		"we will":              2.5,
		"we must":              2.5,
		"we shall":             3.0,
	})
	lex.AddAll(CatHedging, map[string]float64{
		"maybe":       -2.0,
		"perhaps":     -2.0,
		"possibly":    -2.0,
		"probably":    -1.5,
		"likely":      -1.0,
		"unlikely":    -1.0,
		"might":       -2.0,
		"could":       -1.5,
		"may":         -1.5,
		"can":         -1.0,
		"seem":        -1.5,
		"seems":       -1.5,
		"appear":      -1.5,
		"appears":     -1.5,
		"suggest":     -1.5,
		"suggests":    -1.5,
		"indicate":    -1.0,
		"indicates":   -1.0,
		"tend to":     -1.5,
		"tends to":    -1.5,
		"somewhat":    -1.5,
		"rather":      -1.0,
		"fairly":      -1.0,
		"quite":       -1.0,
		"relatively":  -1.5,
		"arguably":    -2.0,
		"conceivably": -2.0,
		"potentially": -1.5,
		"presumably":  -1.5,
		"supposedly":  -2.0,
		"allegedly":   -2.5,
	})
	return lex
}

// Certainty detects epistemic certainty and its hedging counter-signal.
type Certainty struct {
	lexicon *Lexicon
	scanner *Scanner
}

// NewCertainty creates a detector with the default lexicon.
func NewCertainty() *Certainty {
	return NewCertaintyWithLexicon(CertaintyLexicon())
}

// NewCertaintyWithLexicon creates a detector with a custom lexicon using
// the same category names.
func NewCertaintyWithLexicon(lex *Lexicon) *Certainty {
	return &Certainty{lexicon: lex, scanner: NewScanner(lex)}
}

// Lexicon returns the detector's lexicon.
func (d *Certainty) Lexicon() *Lexicon {
	return d.lexicon
}

// CertaintyResult holds one speech's certainty profile. CertaintyCount and
// CertaintyScore cover the four assertive categories; hedging is tracked
// separately and NetScore combines both (hedging weights are negative).
type CertaintyResult struct {
	Markers  CategoryResult
	Modals   CategoryResult
	Emphatic CategoryResult
	Phrases  CategoryResult
	Hedging  CategoryResult

	CertaintyCount int
	CertaintyScore float64
	NetScore       float64

	CertaintyDensity      float64 // assertive markers per 1000 words
	HedgingDensity        float64 // hedges per 1000 words
	CertaintyHedgingRatio float64 // assertive count over hedge count, floor 1
	WordCount             int
}

// Analyze scans one speech.
func (d *Certainty) Analyze(text string) CertaintyResult {
	words := ingest.Words(text)
	cats := aggregate(d.scanner.Scan(words))

	r := CertaintyResult{
		Markers:   cats[CatCertaintyMarkers],
		Modals:    cats[CatCertaintyModals],
		Emphatic:  cats[CatEmphatic],
		Phrases:   cats[CatCertaintyPhrases],
		Hedging:   cats[CatHedging],
		WordCount: len(words),
	}
	r.CertaintyCount = r.Markers.Count + r.Modals.Count + r.Emphatic.Count + r.Phrases.Count
	r.CertaintyScore = r.Markers.Score + r.Modals.Score + r.Emphatic.Score + r.Phrases.Score
	r.NetScore = r.CertaintyScore + r.Hedging.Score
	r.CertaintyDensity = density(r.CertaintyCount, r.WordCount)
	r.HedgingDensity = density(r.Hedging.Count, r.WordCount)

	hedges := r.Hedging.Count
	if hedges < 1 {
		hedges = 1
	}
	r.CertaintyHedgingRatio = float64(r.CertaintyCount) / float64(hedges)
	return r
}

// Level maps the certainty-minus-hedging density onto a 0-10 scale.
func (d *Certainty) Level(text string) float64 {
	r := d.Analyze(text)
	level := (r.CertaintyDensity - r.HedgingDensity) / 2
	if level < 0 {
		level = 0
	}
	if level > 10 {
		level = 10
	}
	return level
}
