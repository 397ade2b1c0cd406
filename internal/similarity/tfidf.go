// Package similarity scores two documents by the cosine of their TF-IDF vectors.
//
// Weighting follows the common smooth-idf formulation:
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// with raw term counts as tf and L2 normalized rows.
package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Model is a fitted TF-IDF vocabulary.
type Model struct {
	index map[string]int
	idf   []float64
}

// Tokenize lowercases text and returns its terms in order of appearance.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Fit learns the vocabulary and inverse document frequencies of docs.
func Fit(docs []string) *Model {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range Tokenize(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	m := &Model{
		index: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	for i, term := range terms {
		m.index[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return m
}

// Size is the number of distinct terms in the model.
func (m *Model) Size() int {
	return len(m.idf)
}

// Transform returns the L2 normalized TF-IDF vector of doc. Terms unknown to the model are
// ignored; a document with no known terms yields the zero vector.
func (m *Model) Transform(doc string) []float64 {
	vec := make([]float64, len(m.idf))
	for _, term := range Tokenize(doc) {
		if i, ok := m.index[term]; ok {
			vec[i]++
		}
	}
	floats.Mul(vec, m.idf)

	if norm := floats.Norm(vec, 2); norm > 0 {
		floats.Scale(1/norm, vec)
	}
	return vec
}

// Cosine returns the cosine similarity of a and b, or 0 when either is the zero vector.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// Score fits a model on both texts and returns their cosine similarity scaled to 0..100.
// Empty texts and texts without a shared term score 0; identical non-empty texts score 100.
func Score(a, b string) float64 {
	model := Fit([]string{a, b})
	if model.Size() == 0 {
		return 0
	}

	cos := Cosine(model.Transform(a), model.Transform(b))
	cos = math.Max(0, math.Min(1, cos))
	// round away float noise so identical documents give exactly 100
	return math.Round(cos*100*1e9) / 1e9
}
