package analytics

import (
	"sort"

	"github.com/cognicore/rhetor/pkg/rhetor/ingest"
	"github.com/cognicore/rhetor/pkg/rhetor/stoplist"
)

// FrequencyTable maps a space-joined n-gram phrase to its corpus-wide count.
type FrequencyTable map[string]int64

// Add increments the count for a phrase.
func (t FrequencyTable) Add(phrase string, delta int64) {
	t[phrase] += delta
}

// Count returns the count for a phrase, 0 when absent.
func (t FrequencyTable) Count(phrase string) int64 {
	return t[phrase]
}

// Total returns the sum of all counts: the number of surviving n-gram
// instances that went into the table.
func (t FrequencyTable) Total() int64 {
	var total int64
	for _, c := range t {
		total += c
	}
	return total
}

// Len returns the number of distinct phrases.
func (t FrequencyTable) Len() int {
	return len(t)
}

// Merge adds every count from other into t.
func (t FrequencyTable) Merge(other FrequencyTable) {
	for phrase, c := range other {
		t[phrase] += c
	}
}

// Snapshot returns an independent copy of the table.
func (t FrequencyTable) Snapshot() FrequencyTable {
	cp := make(FrequencyTable, len(t))
	for phrase, c := range t {
		cp[phrase] = c
	}
	return cp
}

// Phrases returns all distinct phrases, sorted.
func (t FrequencyTable) Phrases() []string {
	out := make([]string, 0, len(t))
	for phrase := range t {
		out = append(out, phrase)
	}
	sort.Strings(out)
	return out
}

// Aggregator runs the per-document pipeline (tokenize, extract, filter) and
// sums the surviving n-grams into one corpus-level frequency table.
// Nothing is pruned here: any frequency cutoff has to see both corpora and
// belongs to the ranking stage.
type Aggregator struct {
	n      int
	tok    *ingest.Tokenizer
	gate   *stoplist.Gate
	counts FrequencyTable
	docs   int64
}

// NewAggregator creates an aggregator for grams of size n. A nil tokenizer
// or gate falls back to the defaults.
func NewAggregator(n int, tok *ingest.Tokenizer, gate *stoplist.Gate) *Aggregator {
	if tok == nil {
		tok = ingest.NewTokenizer()
	}
	if gate == nil {
		gate = stoplist.NewGate()
	}
	return &Aggregator{
		n:      n,
		tok:    tok,
		gate:   gate,
		counts: make(FrequencyTable),
	}
}

// Process consumes one document's raw text. Documents shorter than n tokens
// contribute nothing.
func (a *Aggregator) Process(text string) {
	a.ProcessTokens(a.tok.Tokenize(text))
}

// ProcessTokens consumes one document's pre-tokenized form.
func (a *Aggregator) ProcessTokens(tokens []string) {
	a.docs++
	grams := ingest.NGrams(tokens, a.n)
	for _, gram := range a.gate.Filter(grams, a.n) {
		a.counts.Add(ingest.JoinGram(gram), 1)
	}
}

// Docs returns the number of documents processed.
func (a *Aggregator) Docs() int64 {
	return a.docs
}

// N returns the gram size this aggregator counts.
func (a *Aggregator) N() int {
	return a.n
}

// Snapshot returns a copy of the accumulated frequency table.
func (a *Aggregator) Snapshot() FrequencyTable {
	return a.counts.Snapshot()
}

// Aggregate runs a fresh aggregator over a whole corpus and returns its
// table. Each call starts from zero; repeated calls over the same corpus
// yield identical tables.
func Aggregate(texts []string, n int, tok *ingest.Tokenizer, gate *stoplist.Gate) FrequencyTable {
	agg := NewAggregator(n, tok, gate)
	for _, text := range texts {
		agg.Process(text)
	}
	return agg.counts
}
