// Package textnorm turns free text into the lowercase, letters-only token stream that
// skill extraction and scoring work on.
package textnorm

import (
	"strings"
	"unicode"
)

// Normalizer removes punctuation, digits and stopwords from text.
// A Normalizer is immutable and safe for concurrent use.
type Normalizer struct {
	stopwords map[string]struct{}
}

// NewNormalizer builds a Normalizer for the given stopwords. Stopwords are lowercased.
// A nil or empty list selects EnglishStopwords.
func NewNormalizer(stopwords []string) *Normalizer {
	if len(stopwords) == 0 {
		stopwords = EnglishStopwords
	}
	set := make(map[string]struct{}, len(stopwords))
	for _, word := range stopwords {
		set[strings.ToLower(strings.TrimSpace(word))] = struct{}{}
	}
	return &Normalizer{stopwords: set}
}

// Normalize lowercases text, drops every rune that is neither a-z nor whitespace,
// removes stopwords and joins the remaining tokens with single spaces.
// Empty or all-punctuation input yields "".
func (n *Normalizer) Normalize(text string) string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	tokens := strings.Fields(b.String())
	kept := tokens[:0]
	for _, token := range tokens {
		if _, stop := n.stopwords[token]; stop {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}
