package detect

import (
	"strings"

	"github.com/cognicore/rhetor/pkg/rhetor/ingest"
)

// Match records one lexicon hit in a word sequence.
type Match struct {
	Phrase   string
	Category string
	Weight   float64
	Position int // index of the first matched word
}

// Scanner finds lexicon terms in a word sequence by greedy longest-match:
// at each position the longest registered phrase wins and consumes its
// words, so "take back control" never also counts as "take control" or
// "take back". Matching is token-based, which makes word boundaries
// structural: "corrupt" cannot fire inside "corruption" because
// "corruption" is a single token.
type Scanner struct {
	terms  map[string]Term // normalized phrase -> entry
	maxLen int
}

// NewScanner compiles a scanner from a lexicon. Entries that appear in
// more than one category resolve to the alphabetically last category,
// matching Lexicon.Flatten.
func NewScanner(lex *Lexicon) *Scanner {
	s := &Scanner{
		terms:  make(map[string]Term, lex.Len()),
		maxLen: 1,
	}
	for _, category := range lex.Categories() {
		for _, term := range lex.Terms(category) {
			s.terms[term.Phrase] = term
			if l := phraseLen(term.Phrase); l > s.maxLen {
				s.maxLen = l
			}
		}
	}
	return s
}

// Scan returns every lexicon match in the word sequence, left to right.
func (s *Scanner) Scan(words []string) []Match {
	var matches []Match
	i := 0
	for i < len(words) {
		max := s.maxLen
		if remaining := len(words) - i; max > remaining {
			max = remaining
		}

		matched := false
		for n := max; n >= 1; n-- {
			phrase := strings.Join(words[i:i+n], " ")
			if term, ok := s.terms[phrase]; ok {
				matches = append(matches, Match{
					Phrase:   term.Phrase,
					Category: term.Category,
					Weight:   term.Weight,
					Position: i,
				})
				i += n
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return matches
}

// ScanText splits raw text through the unfiltered word splitter and scans it.
func (s *Scanner) ScanText(text string) []Match {
	return s.Scan(ingest.Words(text))
}

// CategoryResult aggregates the matches of one category.
type CategoryResult struct {
	Count int            // total occurrences
	Score float64        // sum of occurrence weights
	Terms map[string]int // phrase -> occurrences
}

// aggregate groups matches per category.
func aggregate(matches []Match) map[string]CategoryResult {
	results := make(map[string]CategoryResult)
	for _, m := range matches {
		r := results[m.Category]
		if r.Terms == nil {
			r.Terms = make(map[string]int)
		}
		r.Count++
		r.Score += m.Weight
		r.Terms[m.Phrase]++
		results[m.Category] = r
	}
	return results
}

// density converts a raw count to occurrences per 1000 words.
func density(count, words int) float64 {
	if words == 0 {
		return 0
	}
	return float64(count) / float64(words) * 1000
}

func phraseLen(phrase string) int {
	if phrase == "" {
		return 1
	}
	return len(strings.Fields(phrase))
}
