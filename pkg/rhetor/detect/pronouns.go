package detect

import "github.com/cognicore/rhetor/pkg/rhetor/ingest"

// Pronouns measures collective-identity framing through pronoun choice:
// an inclusive "we"/"you" set against an exclusive "they". The unfiltered
// word splitter feeds it, so the single-letter "i" is counted.
type Pronouns struct {
	we   map[string]struct{}
	i    map[string]struct{}
	they map[string]struct{}
	you  map[string]struct{}
}

// NewPronouns creates an analyzer with the standard English pronoun sets.
func NewPronouns() *Pronouns {
	return &Pronouns{
		we:   wordSet("we", "us", "our", "ours", "ourselves"),
		i:    wordSet("i", "me", "my", "mine", "myself"),
		they: wordSet("they", "them", "their", "theirs", "themselves"),
		you:  wordSet("you", "your", "yours", "yourself", "yourselves"),
	}
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// PronounResult holds one speech's pronoun profile. Densities are per
// 1000 words; ratios use a floor of 1 in the denominator; percentages are
// shares of all counted pronouns.
type PronounResult struct {
	WeCount   int
	ICount    int
	TheyCount int
	YouCount  int

	WeWords   map[string]int
	IWords    map[string]int
	TheyWords map[string]int
	YouWords  map[string]int

	TotalWords    int
	TotalPronouns int

	WeDensity   float64
	IDensity    float64
	TheyDensity float64
	YouDensity  float64

	WeTheyRatio             float64
	WeIRatio                float64
	InclusiveExclusiveRatio float64

	WePct   float64
	IPct    float64
	TheyPct float64
	YouPct  float64
}

// Analyze counts pronoun usage in one speech.
func (p *Pronouns) Analyze(text string) PronounResult {
	r := PronounResult{
		WeWords:   make(map[string]int),
		IWords:    make(map[string]int),
		TheyWords: make(map[string]int),
		YouWords:  make(map[string]int),
	}

	words := ingest.Words(text)
	r.TotalWords = len(words)
	for _, w := range words {
		switch {
		case contains(p.we, w):
			r.WeCount++
			r.WeWords[w]++
		case contains(p.i, w):
			r.ICount++
			r.IWords[w]++
		case contains(p.they, w):
			r.TheyCount++
			r.TheyWords[w]++
		case contains(p.you, w):
			r.YouCount++
			r.YouWords[w]++
		}
	}
	r.TotalPronouns = r.WeCount + r.ICount + r.TheyCount + r.YouCount

	r.WeDensity = density(r.WeCount, r.TotalWords)
	r.IDensity = density(r.ICount, r.TotalWords)
	r.TheyDensity = density(r.TheyCount, r.TotalWords)
	r.YouDensity = density(r.YouCount, r.TotalWords)

	r.WeTheyRatio = ratioFloor1(r.WeCount, r.TheyCount)
	r.WeIRatio = ratioFloor1(r.WeCount, r.ICount)
	r.InclusiveExclusiveRatio = ratioFloor1(r.WeCount+r.YouCount, r.TheyCount)

	if r.TotalPronouns > 0 {
		total := float64(r.TotalPronouns)
		r.WePct = float64(r.WeCount) / total * 100
		r.IPct = float64(r.ICount) / total * 100
		r.TheyPct = float64(r.TheyCount) / total * 100
		r.YouPct = float64(r.YouCount) / total * 100
	}
	return r
}

// FramingScore buckets the us-versus-them intensity of a speech on a 1-10
// scale: high inclusive density paired with high "they" density marks the
// strongest in-group/out-group framing.
func (r PronounResult) FramingScore() int {
	inclusive := r.WeDensity + r.YouDensity
	exclusive := r.TheyDensity

	switch {
	case inclusive > 20 && exclusive > 10:
		return 10
	case inclusive > 15 && exclusive > 7:
		return 7
	case inclusive > 10 && exclusive > 5:
		return 5
	case inclusive > 5 || exclusive > 3:
		return 3
	default:
		return 1
	}
}

func contains(set map[string]struct{}, w string) bool {
	_, ok := set[w]
	return ok
}

func ratioFloor1(num, den int) float64 {
	if den < 1 {
		den = 1
	}
	return float64(num) / float64(den)
}
