package detect

import "github.com/cognicore/rhetor/pkg/rhetor/ingest"

// Crisis lexicon category names.
const (
	CatCrisis       = "crisis"
	CatThreat       = "threat"
	CatDecline      = "decline"
	CatUrgency      = "urgency"
	CatCatastrophic = "catastrophic"
)

// CrisisLexicon returns the default crisis-rhetoric lexicon. Weights scale
// with alarm: bookkeeping words like "risk" sit near 2, apocalyptic framing
// like "existential threat" reaches 4.
func CrisisLexicon() *Lexicon {
	lex := NewLexicon("crisis")
	lex.AddAll(CatCrisis, map[string]float64{
		"crisis":       3.0,
		"crises":       3.0,
		"emergency":    3.0,
		"catastrophe":  4.0,
		"catastrophic": 4.0,
		"disaster":     3.5,
		"disastrous":   3.5,
		"chaos":        3.0,
		"chaotic":      2.5,
		"breakdown":    2.5,
		"collapse":     3.0,
		"collapsing":   3.0,
	})
	lex.AddAll(CatThreat, map[string]float64{
		"threat":       2.5,
		"threatens":    2.5,
		"threatening":  2.5,
		"threatened":   2.5,
		"danger":       2.5,
		"dangerous":    2.5,
		"dangerously":  2.5,
		"risk":         2.0,
		"risks":        2.0,
		"at risk":      2.5,
		"under threat": 3.0,
		"under attack": 3.0,
		"attack":       2.0,
		"attacking":    2.0,
		"fear":         2.0,
		"fears":        2.0,
		"terrify":      2.5,
		"terrifying":   2.5,
		"alarm":        2.0,
		"alarming":     2.5,
	})
	lex.AddAll(CatDecline, map[string]float64{
		"decline":        2.0,
		"declining":      2.0,
		"deteriorate":    2.5,
		"deteriorating":  2.5,
		"deterioration":  2.5,
		"worse":          1.5,
		"worsen":         2.0,
		"worsening":      2.0,
		"falling apart":  3.0,
		"fall apart":     3.0,
		"breaking down":  2.5,
		"break down":     2.5,
		"spiral":         2.0,
		"spiraling":      2.5,
		"out of control": 3.0,
		"losing control": 2.5,
	})
	lex.AddAll(CatUrgency, map[string]float64{
		"urgent":               2.5,
		"urgently":             2.5,
		"urgency":              2.5,
		"immediate":            2.0,
		"immediately":          2.0,
		"now":                  1.5,
		"right now":            2.0,
		"must act":             2.5,
		"act now":              2.5,
		"time is running out":  3.0,
		"running out of time":  3.0,
		"no time":              2.5,
		"cannot wait":          2.5,
		"can't wait":           2.5,
		"before it's too late": 3.0,
		"too late":             2.0,
	})
	lex.AddAll(CatCatastrophic, map[string]float64{
		"destroy":            2.5,
		"destroying":         2.5,
		"destruction":        3.0,
		"devastate":          3.0,
		"devastating":        3.0,
		"devastation":        3.0,
		"ruin":               2.5,
		"ruined":             2.5,
		"ruining":            2.5,
		"irreversible":       3.0,
		"point of no return": 3.5,
		"no going back":      3.0,
		"existential":        3.5,
		"existential threat": 4.0,
		"survival":           2.5,
		"survive":            2.0,
	})
	return lex
}

// Crisis detects crisis and urgency rhetoric.
type Crisis struct {
	lexicon *Lexicon
	scanner *Scanner
}

// NewCrisis creates a detector with the default lexicon.
func NewCrisis() *Crisis {
	return NewCrisisWithLexicon(CrisisLexicon())
}

// NewCrisisWithLexicon creates a detector with a custom lexicon using the
// same category names.
func NewCrisisWithLexicon(lex *Lexicon) *Crisis {
	return &Crisis{lexicon: lex, scanner: NewScanner(lex)}
}

// Lexicon returns the detector's lexicon.
func (d *Crisis) Lexicon() *Lexicon {
	return d.lexicon
}

// CrisisResult holds one speech's crisis-rhetoric profile.
type CrisisResult struct {
	Crisis       CategoryResult
	Threat       CategoryResult
	Decline      CategoryResult
	Urgency      CategoryResult
	Catastrophic CategoryResult

	TotalCount int
	TotalScore float64
	Density    float64 // crisis mentions per 1000 words
	WordCount  int
}

// Analyze scans one speech.
func (d *Crisis) Analyze(text string) CrisisResult {
	words := ingest.Words(text)
	cats := aggregate(d.scanner.Scan(words))

	r := CrisisResult{
		Crisis:       cats[CatCrisis],
		Threat:       cats[CatThreat],
		Decline:      cats[CatDecline],
		Urgency:      cats[CatUrgency],
		Catastrophic: cats[CatCatastrophic],
		WordCount:    len(words),
	}
	r.TotalCount = r.Crisis.Count + r.Threat.Count + r.Decline.Count +
		r.Urgency.Count + r.Catastrophic.Count
	r.TotalScore = r.Crisis.Score + r.Threat.Score + r.Decline.Score +
		r.Urgency.Score + r.Catastrophic.Score
	r.Density = density(r.TotalCount, r.WordCount)
	return r
}

// Intensity maps crisis density onto a 0-10 scale, saturating at 10.
func (d *Crisis) Intensity(text string) float64 {
	r := d.Analyze(text)
	intensity := r.Density / 2
	if intensity > 10 {
		intensity = 10
	}
	return intensity
}
