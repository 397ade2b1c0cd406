// Package skills finds vocabulary skills in normalized text.
//
// Matching is a substring heuristic, not a tokenizer: a skill is present when its text occurs
// anywhere in the normalized input. Multi-word skills ("machine learning") match as phrases and
// short skills can match inside longer words ("css" inside "tailwindcss").
package skills

import (
	"sort"
	"strings"
)

// Set is an unordered collection of skill names.
type Set map[string]struct{}

// NewSet returns a Set holding items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func (s Set) Contains(item string) bool {
	_, ok := s[item]
	return ok
}

// Intersect returns the skills present in both s and other.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for item := range s {
		if other.Contains(item) {
			out[item] = struct{}{}
		}
	}
	return out
}

// Difference returns the skills in s that are not in other.
func (s Set) Difference(other Set) Set {
	out := make(Set)
	for item := range s {
		if !other.Contains(item) {
			out[item] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members in lexical order. It never returns nil.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// Vocabulary is the list of skills that can be reported.
type Vocabulary []string

// NewVocabulary lowercases and trims entries, dropping blanks and duplicates.
func NewVocabulary(entries []string) Vocabulary {
	seen := make(map[string]struct{}, len(entries))
	vocabulary := make(Vocabulary, 0, len(entries))
	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if _, dup := seen[entry]; dup {
			continue
		}
		seen[entry] = struct{}{}
		vocabulary = append(vocabulary, entry)
	}
	return vocabulary
}

// Unmatchable returns entries that can never occur in normalized text because they contain
// something other than a-z and single spaces (for example "c++" or "node.js").
func (v Vocabulary) Unmatchable() []string {
	var out []string
	for _, entry := range v {
		if !matchable(entry) {
			out = append(out, entry)
		}
	}
	return out
}

func matchable(entry string) bool {
	if strings.HasPrefix(entry, " ") || strings.HasSuffix(entry, " ") || strings.Contains(entry, "  ") {
		return false
	}
	for _, r := range entry {
		if r != ' ' && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// Extract reports every vocabulary entry that occurs as a substring of normalizedText.
func Extract(normalizedText string, vocabulary Vocabulary) Set {
	found := make(Set)
	for _, skill := range vocabulary {
		if strings.Contains(normalizedText, skill) {
			found[skill] = struct{}{}
		}
	}
	return found
}
