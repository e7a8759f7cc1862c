// Package lexicon provides a rule-based sentiment baseline built on the
// VADER lexicon. It needs no training and works on raw text.
package lexicon

import (
	"github.com/jonreiter/govader"
)

// Labels produced by the analyzer.
const (
	Positive = "Positive"
	Negative = "Negative"
	Neutral  = "Neutral"
)

const defaultThreshold = 0.05

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithThreshold sets the compound score magnitude needed for a polar label.
func WithThreshold(t float64) Option {
	return func(a *Analyzer) {
		if t > 0 && t < 1 {
			a.threshold = t
		}
	}
}

// Analyzer labels text by its VADER compound polarity.
type Analyzer struct {
	sia       *govader.SentimentIntensityAnalyzer
	threshold float64
}

// New creates an analyzer with the default lexicon.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		sia:       govader.NewSentimentIntensityAnalyzer(),
		threshold: defaultThreshold,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Compound returns the normalized polarity of text in [-1, 1].
func (a *Analyzer) Compound(text string) float64 {
	return a.sia.PolarityScores(text).Compound
}

// Classify maps text to Positive, Negative or Neutral.
func (a *Analyzer) Classify(text string) string {
	switch score := a.Compound(text); {
	case score >= a.threshold:
		return Positive
	case score <= -a.threshold:
		return Negative
	default:
		return Neutral
	}
}

// Predict classifies every text.
func (a *Analyzer) Predict(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = a.Classify(t)
	}
	return out
}
