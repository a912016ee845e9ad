package readability

import "strings"

// Syllables estimates how many syllables a word has by counting vowel
// groups, with y treated as a vowel. A trailing silent e is dropped
// unless the word ends in "le". Every word counts at least one.
func Syllables(word string) int {
	w := strings.ToLower(word)
	groups := 0
	prevVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !prevVowel {
			groups++
		}
		prevVowel = v
	}
	if groups > 1 && strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") {
		groups--
	}
	if groups < 1 {
		groups = 1
	}
	return groups
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
