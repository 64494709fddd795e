// Package guess matches free-text song guesses against the expected title.
package guess

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minKeyWordLen is the length above which an answer word must appear in the guess.
const minKeyWordLen = 2

// Normalize lowercases s, strips accents and punctuation, and collapses
// whitespace into single spaces.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Match reports whether guess names answer. An exact match after
// normalization wins; otherwise every answer word longer than two characters
// must appear somewhere in the guess. An empty guess never matches.
func Match(guess, answer string) bool {
	g := Normalize(guess)
	a := Normalize(answer)
	if g == "" {
		return false
	}
	if g == a {
		return true
	}
	for _, w := range strings.Fields(a) {
		if len([]rune(w)) <= minKeyWordLen {
			continue
		}
		if !strings.Contains(g, w) {
			return false
		}
	}
	return a != ""
}
