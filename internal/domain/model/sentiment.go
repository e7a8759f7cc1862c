// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSentiment is returned when a label cannot be parsed.
var ErrUnknownSentiment = errors.New("unknown sentiment")

// Sentiment is the coarse polarity derived from a review rating.
type Sentiment int

// Sentiment values. The zero value is never produced by Label.
const (
	Unknown Sentiment = iota
	Negative
	Neutral
	Positive
)

// Thresholds of the labelling rule.
const (
	negativeCeiling = 2
	neutralScore    = 3
)

// Label maps a numeric rating to a Sentiment.
// Ratings at or below 2 are negative, exactly 3 is neutral and anything
// else (including out-of-range and non-integral values) is positive.
func Label(score float64) Sentiment {
	switch {
	case score <= negativeCeiling:
		return Negative
	case score == neutralScore:
		return Neutral
	default:
		return Positive
	}
}

// String returns the display name of the sentiment.
func (s Sentiment) String() string {
	switch s {
	case Negative:
		return "Negative"
	case Neutral:
		return "Neutral"
	case Positive:
		return "Positive"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the three labelled values.
func (s Sentiment) Valid() bool {
	return s == Negative || s == Neutral || s == Positive
}

// ParseSentiment is the inverse of String. Matching is case-insensitive.
func ParseSentiment(v string) (Sentiment, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "negative":
		return Negative, nil
	case "neutral":
		return Neutral, nil
	case "positive":
		return Positive, nil
	default:
		return Unknown, fmt.Errorf("%w: %q", ErrUnknownSentiment, v)
	}
}

// Strings converts a label slice to display names, preserving order.
func Strings(labels []Sentiment) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.String()
	}
	return out
}
