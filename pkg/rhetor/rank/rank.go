package rank

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/rhetor/pkg/rhetor/analytics"
	"github.com/cognicore/rhetor/pkg/rhetor/internalerr"
	"github.com/cognicore/rhetor/pkg/rhetor/stoplist"
)

// ratioThreshold is the distinctiveness bar: a gram qualifies only when its
// smoothed frequency ratio is strictly greater than this. A ratio of exactly
// 2.0 does not qualify.
const ratioThreshold = 2.0

// Config holds the ranking parameters.
type Config struct {
	// MinFrequency is the minimum count a gram needs in its own corpus to be
	// considered at all. Must be at least 1.
	MinFrequency int
	// TopK caps the length of each returned list. Must be at least 1.
	TopK int
}

// DefaultConfig returns the standard ranking parameters.
func DefaultConfig() Config {
	return Config{
		MinFrequency: 5,
		TopK:         20,
	}
}

// Validate checks the parameters and fails fast on nonsense values.
func (c Config) Validate() error {
	if c.MinFrequency < 1 {
		return fmt.Errorf("min_frequency must be >= 1, got %d: %w", c.MinFrequency, internalerr.ErrInvalidConfig)
	}
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be >= 1, got %d: %w", c.TopK, internalerr.ErrInvalidConfig)
	}
	return nil
}

// DistinctiveGram is a gram markedly more frequent in one corpus than the
// other. Ratio is Count / (OtherCount + 1): the add-one denominator keeps
// zero-count grams finite and damps the ratio of rare ones.
type DistinctiveGram struct {
	Tokens     []string `json:"tokens"`
	Phrase     string   `json:"phrase"`
	Count      int64    `json:"count"`
	OtherCount int64    `json:"other_count"`
	Ratio      float64  `json:"ratio"`
}

// CommonGram is a gram frequent in both corpora.
type CommonGram struct {
	Tokens []string `json:"tokens"`
	Phrase string   `json:"phrase"`
	CountA int64    `json:"count_a"`
	CountB int64    `json:"count_b"`
}

// GramCount is a gram with its count in a single corpus.
type GramCount struct {
	Tokens []string `json:"tokens"`
	Phrase string   `json:"phrase"`
	Count  int64    `json:"count"`
}

// Comparison holds the result of comparing two corpora.
type Comparison struct {
	ADistinctive []DistinctiveGram `json:"a_distinctive"`
	BDistinctive []DistinctiveGram `json:"b_distinctive"`
	Common       []CommonGram      `json:"common"`
}

// Compare ranks the grams that separate corpus A from corpus B.
//
// A gram is A-distinctive when its A-count clears MinFrequency and
// countA / (countB + 1) exceeds the ratio threshold strictly; B-distinctive
// is the mirror image. A gram is common when it appears in both tables with
// both counts clearing MinFrequency, whatever its ratio. Distinctive lists
// come sorted by ratio, common by combined count, all capped at TopK.
//
// Empty tables are fine: the corresponding lists come back empty. The input
// tables are never modified.
func Compare(a, b analytics.FrequencyTable, cfg Config) (Comparison, error) {
	if err := cfg.Validate(); err != nil {
		return Comparison{}, err
	}
	minFreq := int64(cfg.MinFrequency)

	var comp Comparison
	for phrase, countA := range a {
		if countA < minFreq {
			continue
		}
		countB := b[phrase]
		ratio := float64(countA) / float64(countB+1)
		if ratio > ratioThreshold {
			comp.ADistinctive = append(comp.ADistinctive, DistinctiveGram{
				Tokens:     strings.Split(phrase, " "),
				Phrase:     phrase,
				Count:      countA,
				OtherCount: countB,
				Ratio:      ratio,
			})
		}
		if countB >= minFreq {
			comp.Common = append(comp.Common, CommonGram{
				Tokens: strings.Split(phrase, " "),
				Phrase: phrase,
				CountA: countA,
				CountB: countB,
			})
		}
	}
	for phrase, countB := range b {
		if countB < minFreq {
			continue
		}
		countA := a[phrase]
		ratio := float64(countB) / float64(countA+1)
		if ratio > ratioThreshold {
			comp.BDistinctive = append(comp.BDistinctive, DistinctiveGram{
				Tokens:     strings.Split(phrase, " "),
				Phrase:     phrase,
				Count:      countB,
				OtherCount: countA,
				Ratio:      ratio,
			})
		}
	}

	sortDistinctive(comp.ADistinctive)
	sortDistinctive(comp.BDistinctive)
	sort.Slice(comp.Common, func(i, j int) bool {
		ci, cj := comp.Common[i], comp.Common[j]
		if ci.CountA+ci.CountB != cj.CountA+cj.CountB {
			return ci.CountA+ci.CountB > cj.CountA+cj.CountB
		}
		if ci.CountA != cj.CountA {
			return ci.CountA > cj.CountA
		}
		return ci.Phrase < cj.Phrase
	})

	comp.ADistinctive = capDistinctive(comp.ADistinctive, cfg.TopK)
	comp.BDistinctive = capDistinctive(comp.BDistinctive, cfg.TopK)
	if len(comp.Common) > cfg.TopK {
		comp.Common = comp.Common[:cfg.TopK]
	}
	return comp, nil
}

// TopGrams returns the most frequent grams of a single corpus: count clears
// MinFrequency, sorted by count descending with a lexical tie-break, capped
// at TopK.
func TopGrams(table analytics.FrequencyTable, cfg Config) ([]GramCount, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	minFreq := int64(cfg.MinFrequency)

	var top []GramCount
	for phrase, count := range table {
		if count < minFreq {
			continue
		}
		top = append(top, GramCount{
			Tokens: strings.Split(phrase, " "),
			Phrase: phrase,
			Count:  count,
		})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Phrase < top[j].Phrase
	})
	if len(top) > cfg.TopK {
		top = top[:cfg.TopK]
	}
	return top, nil
}

// StoplistStats converts the common list into the shape the stoplist
// candidate suggester expects. Common grams with near-parity counts are the
// usual boilerplate suspects.
func (c Comparison) StoplistStats() []stoplist.Stats {
	out := make([]stoplist.Stats, 0, len(c.Common))
	for _, g := range c.Common {
		out = append(out, stoplist.Stats{
			Phrase: g.Phrase,
			CountA: g.CountA,
			CountB: g.CountB,
		})
	}
	return out
}

func sortDistinctive(grams []DistinctiveGram) {
	sort.Slice(grams, func(i, j int) bool {
		if grams[i].Ratio != grams[j].Ratio {
			return grams[i].Ratio > grams[j].Ratio
		}
		if grams[i].Count != grams[j].Count {
			return grams[i].Count > grams[j].Count
		}
		return grams[i].Phrase < grams[j].Phrase
	})
}

func capDistinctive(grams []DistinctiveGram, k int) []DistinctiveGram {
	if len(grams) > k {
		return grams[:k]
	}
	return grams
}
