package detect

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/rhetor/pkg/rhetor/ingest"
)

// Lexicon is a named collection of weighted rhetoric terms grouped by
// category. Phrases are normalized through the same word splitter the
// scanner applies to speech text, so "can't wait" and "can t wait" land
// on the same entry and always match.
type Lexicon struct {
	name       string
	categories map[string]map[string]float64 // category -> phrase -> weight
}

// Term is one weighted lexicon entry.
type Term struct {
	Phrase   string
	Category string
	Weight   float64
}

// NewLexicon creates an empty lexicon.
func NewLexicon(name string) *Lexicon {
	return &Lexicon{
		name:       name,
		categories: make(map[string]map[string]float64),
	}
}

// Name returns the lexicon's name.
func (l *Lexicon) Name() string {
	return l.name
}

// Add registers a weighted phrase under a category. The phrase is
// normalized at insertion; re-adding an existing phrase in the same
// category overwrites its weight.
func (l *Lexicon) Add(category, phrase string, weight float64) {
	normalized := normalizeTerm(phrase)
	if normalized == "" {
		return
	}
	if l.categories[category] == nil {
		l.categories[category] = make(map[string]float64)
	}
	l.categories[category][normalized] = weight
}

// AddAll registers a whole category of weighted phrases.
func (l *Lexicon) AddAll(category string, terms map[string]float64) {
	for phrase, weight := range terms {
		l.Add(category, phrase, weight)
	}
}

// Categories returns the category names, sorted.
func (l *Lexicon) Categories() []string {
	out := make([]string, 0, len(l.categories))
	for cat := range l.categories {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// Terms returns the entries of one category, sorted by phrase.
func (l *Lexicon) Terms(category string) []Term {
	cat, ok := l.categories[category]
	if !ok {
		return nil
	}
	out := make([]Term, 0, len(cat))
	for phrase, weight := range cat {
		out = append(out, Term{Phrase: phrase, Category: category, Weight: weight})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Phrase < out[j].Phrase })
	return out
}

// Weight returns the weight of a phrase in a category and whether it exists.
func (l *Lexicon) Weight(category, phrase string) (float64, bool) {
	cat, ok := l.categories[category]
	if !ok {
		return 0, false
	}
	w, ok := cat[normalizeTerm(phrase)]
	return w, ok
}

// Len returns the total number of entries across all categories.
func (l *Lexicon) Len() int {
	total := 0
	for _, cat := range l.categories {
		total += len(cat)
	}
	return total
}

// Flatten merges every category into one phrase -> weight map. Used to
// extend the sentiment analyzer's lexicon with rhetoric terms. When the
// same phrase appears in several categories, the one from the
// alphabetically last category wins, keeping the result deterministic.
func (l *Lexicon) Flatten() map[string]float64 {
	flat := make(map[string]float64, l.Len())
	for _, cat := range l.Categories() {
		for phrase, weight := range l.categories[cat] {
			flat[phrase] = weight
		}
	}
	return flat
}

// LoadLexicon loads a lexicon from a YAML file.
//
// Expected format:
//
//	name: anti_elite
//	categories:
//	  anti_elite:
//	    establishment: -2.0
//	    deep state: -2.5
//	  populist_positive:
//	    take back control: 2.5
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	var doc struct {
		Name       string                        `yaml:"name"`
		Categories map[string]map[string]float64 `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	lex := NewLexicon(doc.Name)
	for category, terms := range doc.Categories {
		lex.AddAll(category, terms)
	}
	return lex, nil
}

// normalizeTerm lowercases a phrase and rewrites it through the word
// splitter so lexicon entries and scanned text share one token form.
func normalizeTerm(phrase string) string {
	return strings.Join(ingest.Words(phrase), " ")
}
