package reviewgen

import "runtime"

// Config controls the generated corpus.
type Config struct {
	// NumReviews is the number of reviews to produce.
	NumReviews int
	// Seed makes the output reproducible. Equal seeds give equal output
	// regardless of Workers.
	Seed int64
	// Workers bounds the generating goroutines.
	Workers int
	// RatingWeights are the relative frequencies of ratings 1 through 5.
	RatingWeights [5]float64
	// NoiseRate is the chance that a sentence is drawn from the opposite
	// sentiment bank.
	NoiseRate float64
}

// DefaultRatingWeights skew toward positive ratings like real product
// review data.
var DefaultRatingWeights = [5]float64{0.03, 0.03, 0.08, 0.2, 0.66} //nolint:gochecknoglobals // read-only table

// DefaultConfig returns a Config with realistic settings.
func DefaultConfig() Config {
	return Config{
		NumReviews:    10_000,
		Seed:          1,
		Workers:       runtime.NumCPU(),
		RatingWeights: DefaultRatingWeights,
		NoiseRate:     0.1,
	}
}
