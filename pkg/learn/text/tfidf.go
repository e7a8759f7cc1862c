// Package text turns raw documents into TF-IDF weighted sparse vectors.
package text

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/okian/revsent/pkg/learn"
)

// ErrEmptyVocabulary is returned by Fit when no token survives tokenization.
var ErrEmptyVocabulary = errors.New("empty vocabulary; documents may contain only stop words")

// defaultTokenPattern matches runs of two or more word characters. Combining
// marks are not word characters and split a token.
var defaultTokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`) //nolint:gochecknoglobals // compiled once

// Option configures a TfidfVectorizer.
type Option func(*TfidfVectorizer)

// WithStopWords excludes the given terms from the vocabulary.
func WithStopWords(words ...string) Option {
	return func(v *TfidfVectorizer) {
		for _, w := range words {
			v.stopWords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// WithTokenPattern replaces the token regular expression.
func WithTokenPattern(re *regexp.Regexp) Option {
	return func(v *TfidfVectorizer) {
		if re != nil {
			v.pattern = re
		}
	}
}

// WithLowercase toggles lowercasing before tokenization (default on).
func WithLowercase(enabled bool) Option {
	return func(v *TfidfVectorizer) {
		v.lowercase = enabled
	}
}

// TfidfVectorizer learns a vocabulary and smoothed inverse document
// frequencies, then maps documents to L2-normalized TF-IDF rows.
type TfidfVectorizer struct {
	pattern   *regexp.Regexp
	lowercase bool
	stopWords map[string]struct{}

	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// NewTfidfVectorizer creates an unfitted vectorizer.
func NewTfidfVectorizer(opts ...Option) *TfidfVectorizer {
	v := &TfidfVectorizer{
		pattern:   defaultTokenPattern,
		lowercase: true,
		stopWords: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Fit learns the vocabulary and IDF weights from docs.
func (v *TfidfVectorizer) Fit(docs []string) error {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range v.tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.terms = terms
	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, t := range terms {
		v.vocabulary[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return nil
}

// Transform maps docs to TF-IDF rows. Terms outside the vocabulary are
// ignored.
func (v *TfidfVectorizer) Transform(docs []string) (*learn.Matrix, error) {
	if v.vocabulary == nil {
		return nil, fmt.Errorf("tfidf transform: %w", learn.ErrNotFitted)
	}
	m := learn.NewMatrix(len(v.terms))
	m.Rows = make([]learn.Vector, len(docs))
	for i, doc := range docs {
		m.Rows[i] = v.row(doc)
	}
	return m, nil
}

// FitTransform fits on docs and transforms them.
func (v *TfidfVectorizer) FitTransform(docs []string) (*learn.Matrix, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs)
}

// Vocabulary returns the learned terms in column order.
func (v *TfidfVectorizer) Vocabulary() []string {
	return append([]string(nil), v.terms...)
}

// IDF returns the learned inverse document frequency of term.
func (v *TfidfVectorizer) IDF(term string) (float64, bool) {
	j, ok := v.vocabulary[term]
	if !ok {
		return 0, false
	}
	return v.idf[j], true
}

func (v *TfidfVectorizer) row(doc string) learn.Vector {
	counts := make(map[int]float64)
	for _, tok := range v.tokenize(doc) {
		if j, ok := v.vocabulary[tok]; ok {
			counts[j]++
		}
	}
	if len(counts) == 0 {
		return learn.Vector{}
	}

	idx := make([]int, 0, len(counts))
	for j := range counts {
		idx = append(idx, j)
	}
	sort.Ints(idx)

	vals := make([]float64, len(idx))
	var norm float64
	for k, j := range idx {
		w := counts[j] * v.idf[j]
		vals[k] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for k := range vals {
		vals[k] /= norm
	}
	return learn.Vector{Indices: idx, Values: vals}
}

func (v *TfidfVectorizer) tokenize(doc string) []string {
	if v.lowercase {
		doc = strings.ToLower(doc)
	}
	raw := v.pattern.FindAllString(doc, -1)
	if len(v.stopWords) == 0 {
		return raw
	}
	out := raw[:0]
	for _, t := range raw {
		if _, stop := v.stopWords[t]; !stop {
			out = append(out, t)
		}
	}
	return out
}
