package ingest

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenizer normalizes speech text into analysis tokens. It lowercases,
// treats every non-alphanumeric character as a separator (contractions
// split: "don't" yields "don", the stranded "t" is dropped), and removes
// tokens that are empty, single-character, or on the artifact blacklist.
type Tokenizer struct {
	blacklist map[string]struct{}
}

// DefaultBlacklist returns transcription artifacts that leak into speech
// texts scraped from archive sites: OCR doublings, boilerplate footer words,
// and media labels.
func DefaultBlacklist() []string {
	return []string{
		"aa", "rr", "mmeerriiccaann", "hheettoorriicc", "ccoomm",
		"americanrhetoric", "property", "copyright", "transcript",
		"video", "audio",
	}
}

// NewTokenizer creates a tokenizer with the default artifact blacklist.
func NewTokenizer() *Tokenizer {
	return NewTokenizerWithBlacklist(DefaultBlacklist())
}

// NewTokenizerWithBlacklist creates a tokenizer with the given blacklist.
func NewTokenizerWithBlacklist(blacklist []string) *Tokenizer {
	set := make(map[string]struct{}, len(blacklist))
	for _, w := range blacklist {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{blacklist: set}
}

// Tokenize splits text into filtered, lowercased tokens. The same input
// always yields the same output; no state is carried between calls.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := t.keep(current.String()); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// keep returns the token if it survives filtering, "" otherwise.
func (t *Tokenizer) keep(word string) string {
	if utf8.RuneCountInString(word) <= 1 {
		return ""
	}
	if _, ok := t.blacklist[word]; ok {
		return ""
	}
	return word
}

// AddBlacklist adds a word to the artifact blacklist.
func (t *Tokenizer) AddBlacklist(word string) {
	t.blacklist[strings.ToLower(word)] = struct{}{}
}

// RemoveBlacklist removes a word from the artifact blacklist.
func (t *Tokenizer) RemoveBlacklist(word string) {
	delete(t.blacklist, strings.ToLower(word))
}

// Words splits text the same way Tokenize does but applies no filtering:
// single-character words like "i" and "a" survive. Pronoun counting and
// density denominators need the unfiltered stream.
func Words(text string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return words
}
