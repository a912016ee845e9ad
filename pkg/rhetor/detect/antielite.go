package detect

import "github.com/cognicore/rhetor/pkg/rhetor/ingest"

// Anti-elite lexicon category names.
const (
	CatAntiElite        = "anti_elite"
	CatSystemCriticism  = "system_criticism"
	CatPopulistPositive = "populist_positive"
	CatPeopleNegative   = "people_negative"
)

// AntiEliteLexicon returns the default anti-establishment lexicon.
// Negative weights mark hostility toward elites and institutions; the
// populist_positive category carries the affirmative framing of "the
// people" and is kept out of the anti-elite totals.
func AntiEliteLexicon() *Lexicon {
	lex := NewLexicon("anti_elite")
	lex.AddAll(CatAntiElite, map[string]float64{
		"establishment":            -2.0,
		"elite":                    -2.5,
		"elites":                   -2.5,
		"ruling class":             -2.5,
		"political class":          -2.0,
		"political elite":          -2.5,
		"westminster":              -1.5,
		"westminster bubble":       -2.0,
		"brussels":                 -2.0,
		"brussels bureaucrats":     -2.5,
		"eurocrats":                -2.0,
		"washington":               -1.5,
		"washington insiders":      -2.0,
		"beltway":                  -1.5,
		"deep state":               -2.5,
		"career politician":        -2.0,
		"career politicians":       -2.0,
		"professional politicians": -2.0,
		"out of touch":             -2.0,
		"disconnected":             -1.5,
		"ivory tower":              -2.0,
	})
	lex.AddAll(CatSystemCriticism, map[string]float64{
		"rigged":          -2.5,
		"rigged system":   -3.0,
		"corrupt":         -3.0,
		"corrupted":       -2.5,
		"corruption":      -2.5,
		"swamp":           -2.0,
		"drain the swamp": -2.0,
		"broken system":   -2.5,
		"broken":          -1.5,
		"failed":          -2.0,
		"failing":         -1.5,
		"betrayed":        -3.0,
		"betrayal":        -2.5,
		"sold out":        -2.5,
		"crooked":         -2.5,
	})
	lex.AddAll(CatPopulistPositive, map[string]float64{
		"ordinary people":      2.0,
		"ordinary":             1.0,
		"working people":       1.5,
		"working families":     1.5,
		"hardworking families": 2.0,
		"hardworking":          1.5,
		"the people":           1.5,
		"take back control":    2.5,
		"take control":         2.0,
		"sovereignty":          2.0,
		"our country back":     2.0,
		"common sense":         1.5,
		"real people":          1.5,
	})
	lex.AddAll(CatPeopleNegative, map[string]float64{
		"forgotten":        -2.0,
		"forgotten people": -2.5,
		"left behind":      -2.0,
		"ignored":          -1.5,
		"neglected":        -1.5,
	})
	return lex
}

// AntiElite detects anti-establishment rhetoric.
type AntiElite struct {
	lexicon *Lexicon
	scanner *Scanner
}

// NewAntiElite creates a detector with the default lexicon.
func NewAntiElite() *AntiElite {
	return NewAntiEliteWithLexicon(AntiEliteLexicon())
}

// NewAntiEliteWithLexicon creates a detector with a custom lexicon using
// the same category names.
func NewAntiEliteWithLexicon(lex *Lexicon) *AntiElite {
	return &AntiElite{lexicon: lex, scanner: NewScanner(lex)}
}

// Lexicon returns the detector's lexicon.
func (d *AntiElite) Lexicon() *Lexicon {
	return d.lexicon
}

// AntiEliteResult holds one speech's anti-establishment profile.
// TotalCount and TotalScore cover the three hostile categories only;
// NetScore folds the positive people-framing back in.
type AntiEliteResult struct {
	AntiElite        CategoryResult
	SystemCriticism  CategoryResult
	PopulistPositive CategoryResult
	PeopleNegative   CategoryResult

	TotalCount int
	TotalScore float64
	NetScore   float64
	Density    float64 // hostile mentions per 1000 words
	WordCount  int
}

// Analyze scans one speech. Pure function of the text and lexicon.
func (d *AntiElite) Analyze(text string) AntiEliteResult {
	words := ingest.Words(text)
	cats := aggregate(d.scanner.Scan(words))

	r := AntiEliteResult{
		AntiElite:        cats[CatAntiElite],
		SystemCriticism:  cats[CatSystemCriticism],
		PopulistPositive: cats[CatPopulistPositive],
		PeopleNegative:   cats[CatPeopleNegative],
		WordCount:        len(words),
	}
	r.TotalCount = r.AntiElite.Count + r.SystemCriticism.Count + r.PeopleNegative.Count
	r.TotalScore = r.AntiElite.Score + r.SystemCriticism.Score + r.PeopleNegative.Score
	r.NetScore = r.TotalScore + r.PopulistPositive.Score
	r.Density = density(r.TotalCount, r.WordCount)
	return r
}
