package stoplist

import (
	"math"
	"sort"
	"strings"
)

// Gate filters extracted n-grams before counting. Two checks run in order:
// the per-n stoplist (exact ordered-phrase match) and the content gate
// (a minimum number of non-function words). A gram removed by the stoplist
// never reaches the content gate or the frequency tables.
type Gate struct {
	stops      map[int]map[string]struct{} // n -> set of joined phrases
	function   map[string]struct{}
	thresholds map[int]int // n -> minimum content words; absent means no gate
}

// DefaultFunctionWords returns the closed set of grammatical words that
// carry no topical content on their own.
func DefaultFunctionWords() []string {
	return []string{
		"the", "of", "to", "and", "in", "that", "is", "was", "for", "on",
		"with", "as", "by", "at", "from", "this", "be", "are", "an", "or",
		"but", "not", "if", "so",
	}
}

// DefaultBigramStops returns applause-line boilerplate bigrams.
func DefaultBigramStops() []string {
	return []string{
		"thank you", "you thank", "you very", "very much", "very very",
		"thank thank",
	}
}

// DefaultTrigramStops returns applause-line boilerplate trigrams.
func DefaultTrigramStops() []string {
	return []string{
		"thank you very", "you very much", "you thank you", "thank you thank",
		"very very much",
	}
}

// NewGate creates a gate with the default stoplists, function words, and
// content thresholds (bigrams need 1 content word, trigrams need 2).
// Other gram sizes carry no stoplist and no content requirement unless
// configured explicitly.
func NewGate() *Gate {
	g := NewEmptyGate()
	for _, phrase := range DefaultBigramStops() {
		g.AddStop(2, phrase)
	}
	for _, phrase := range DefaultTrigramStops() {
		g.AddStop(3, phrase)
	}
	for _, w := range DefaultFunctionWords() {
		g.AddFunctionWord(w)
	}
	g.SetContentThreshold(2, 1)
	g.SetContentThreshold(3, 2)
	return g
}

// NewEmptyGate creates a gate with no stoplists, no function words, and no
// content thresholds. Everything passes until configured.
func NewEmptyGate() *Gate {
	return &Gate{
		stops:      make(map[int]map[string]struct{}),
		function:   make(map[string]struct{}),
		thresholds: make(map[int]int),
	}
}

// Filter returns the grams of size n that survive both checks, preserving
// input order. The input slice is not modified.
func (g *Gate) Filter(grams [][]string, n int) [][]string {
	kept := make([][]string, 0, len(grams))
	for _, gram := range grams {
		if g.Keep(gram, n) {
			kept = append(kept, gram)
		}
	}
	return kept
}

// Keep reports whether a single gram of size n survives filtering.
func (g *Gate) Keep(gram []string, n int) bool {
	if set, ok := g.stops[n]; ok {
		if _, stopped := set[strings.Join(gram, " ")]; stopped {
			return false
		}
	}
	min, ok := g.thresholds[n]
	if !ok || min <= 0 {
		return true
	}
	content := 0
	for _, tok := range gram {
		if _, fn := g.function[tok]; !fn {
			content++
		}
	}
	return content >= min
}

// IsStop reports whether the phrase is on the stoplist for grams of size n.
func (g *Gate) IsStop(n int, phrase string) bool {
	set, ok := g.stops[n]
	if !ok {
		return false
	}
	_, stopped := set[normalizePhrase(phrase)]
	return stopped
}

// AddStop adds a phrase to the stoplist for grams of size n. The phrase is
// lowercased and its whitespace normalized so "Thank  You" and "thank you"
// are the same entry.
func (g *Gate) AddStop(n int, phrase string) {
	if g.stops[n] == nil {
		g.stops[n] = make(map[string]struct{})
	}
	g.stops[n][normalizePhrase(phrase)] = struct{}{}
}

// RemoveStop removes a phrase from the stoplist for grams of size n.
func (g *Gate) RemoveStop(n int, phrase string) {
	if set, ok := g.stops[n]; ok {
		delete(set, normalizePhrase(phrase))
	}
}

// Stops returns the stoplist for grams of size n, sorted.
func (g *Gate) Stops(n int) []string {
	set, ok := g.stops[n]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for phrase := range set {
		out = append(out, phrase)
	}
	sort.Strings(out)
	return out
}

// AddFunctionWord marks a word as grammatical filler for the content gate.
func (g *Gate) AddFunctionWord(word string) {
	g.function[strings.ToLower(word)] = struct{}{}
}

// IsFunctionWord reports whether the word is in the function-word set.
func (g *Gate) IsFunctionWord(word string) bool {
	_, ok := g.function[strings.ToLower(word)]
	return ok
}

// SetContentThreshold requires at least min non-function words in grams of
// size n. A min of 0 removes the requirement.
func (g *Gate) SetContentThreshold(n, min int) {
	if min <= 0 {
		delete(g.thresholds, n)
		return
	}
	g.thresholds[n] = min
}

// ContentThreshold returns the content-word requirement for grams of size n,
// 0 when none is set.
func (g *Gate) ContentThreshold(n int) int {
	return g.thresholds[n]
}

func normalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// Stats holds per-phrase counts used for stoplist candidate evaluation.
// CountA and CountB are the phrase's frequencies in the two corpora being
// compared.
type Stats struct {
	Phrase string
	CountA int64
	CountB int64
}

// Reason explains why a phrase is a stoplist candidate.
type Reason struct {
	Balanced bool    // appears at a similar rate in both corpora
	Frequent bool    // clears the minimum count in both corpora
	Ratio    float64 // countA / (countB + 1)
	Combined int64   // countA + countB
}

// Candidate represents a phrase suggested for the stoplist.
type Candidate struct {
	Phrase string
	Reason Reason
	Score  float64 // confidence, higher means more boilerplate-like
}

// Thresholds defines criteria for stoplist candidate identification.
// Boilerplate shows up frequently in both corpora with a ratio near 1:
// it separates nothing, it only inflates the tables.
type Thresholds struct {
	MinEachCount int64   // minimum count in each corpus
	MaxRatio     float64 // maximum distance from parity, e.g. 1.5 accepts [1/1.5, 1.5]
}

// DefaultThresholds returns sensible defaults for candidate suggestion.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinEachCount: 5,
		MaxRatio:     1.5,
	}
}

// SuggestCandidates suggests phrases that behave like boilerplate: frequent
// in both corpora with near-parity counts. Phrases already on the stoplist
// for their size are skipped. Results are sorted by confidence, highest
// first.
func (g *Gate) SuggestCandidates(stats []Stats, thresholds Thresholds) []Candidate {
	if thresholds.MinEachCount <= 0 {
		thresholds.MinEachCount = DefaultThresholds().MinEachCount
	}
	if thresholds.MaxRatio <= 1 {
		thresholds.MaxRatio = DefaultThresholds().MaxRatio
	}

	var candidates []Candidate
	for _, s := range stats {
		n := len(strings.Fields(s.Phrase))
		if n == 0 || g.IsStop(n, s.Phrase) {
			continue
		}

		frequent := s.CountA >= thresholds.MinEachCount && s.CountB >= thresholds.MinEachCount
		ratio := float64(s.CountA) / float64(s.CountB+1)
		balanced := ratio <= thresholds.MaxRatio && ratio >= 1/thresholds.MaxRatio

		if !frequent || !balanced {
			continue
		}

		// Parity and volume both raise confidence.
		parity := 1 - math.Abs(ratio-1)/(thresholds.MaxRatio-1+1e-9)
		if parity < 0 {
			parity = 0
		}
		score := parity * math.Log(float64(s.Combined())+1)

		candidates = append(candidates, Candidate{
			Phrase: s.Phrase,
			Reason: Reason{
				Balanced: balanced,
				Frequent: frequent,
				Ratio:    ratio,
				Combined: s.Combined(),
			},
			Score: score,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Phrase < candidates[j].Phrase
	})
	return candidates
}

// Combined returns the total count across both corpora.
func (s Stats) Combined() int64 {
	return s.CountA + s.CountB
}
