package ingest

import "strings"

// NGrams returns every contiguous window of n tokens, left to right, with
// repeats preserved. A slice of L tokens yields L-n+1 grams; it yields nil
// when L < n or n < 1. Each gram is an ordered tuple: ("take", "back") and
// ("back", "take") are distinct.
func NGrams(tokens []string, n int) [][]string {
	if n < 1 || len(tokens) < n {
		return nil
	}
	grams := make([][]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, tokens[i:i+n:i+n])
	}
	return grams
}

// JoinGram renders an n-gram as its canonical space-joined phrase.
// Tokens never contain whitespace, so the mapping is reversible.
func JoinGram(gram []string) string {
	return strings.Join(gram, " ")
}

// SplitGram recovers the ordered tokens of a phrase built by JoinGram.
func SplitGram(phrase string) []string {
	if phrase == "" {
		return nil
	}
	return strings.Split(phrase, " ")
}
