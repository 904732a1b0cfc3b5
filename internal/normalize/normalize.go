// Package normalize turns free text into dictionary lookup keys and word
// tokens. Both the filename matcher and the reference dictionaries key on
// the output of Normalize, so the two must never disagree.
package normalize

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
)

// tokenSplit matches runs of runes that are neither word runes nor apostrophes.
var tokenSplit = regexp.MustCompile(`[^\p{L}\p{N}_']+`)

// keys memoises Normalize by exact input. Normalize is referentially
// transparent, so entries never need invalidating.
var keys sync.Map

// Normalize lowercases text and removes every rune that is not a letter,
// digit or underscore.
//
//	Normalize("Madison Square Garden") == "madisonsquaregarden"
//	Normalize("St. Louis, MO")         == "stlouismo"
func Normalize(text string) string {
	if v, ok := keys.Load(text); ok {
		return v.(string)
	}
	key := strings.Map(func(r rune) rune {
		if isWord(r) {
			return r
		}
		return -1
	}, strings.ToLower(text))
	keys.Store(text, key)
	return key
}

// Tokenize lowercases text and splits it into word fragments. Apostrophes
// stay inside tokens ("don't" is one token). Order is preserved and
// duplicates are kept.
func Tokenize(text string) []string {
	parts := tokenSplit.Split(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest. Any non-letter starts a new word, so "o'brien"
// becomes "O'Brien" and "1080p" becomes "1080P".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		letter := unicode.IsLetter(r)
		switch {
		case !letter:
			b.WriteRune(r)
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToTitle(r))
		}
		prevLetter = letter
	}
	return b.String()
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
