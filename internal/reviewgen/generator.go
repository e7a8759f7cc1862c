// Package reviewgen generates synthetic product reviews in the line-delimited
// JSON input format, for smoke runs and tests.
package reviewgen

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// chunkSize is the number of reviews drawn from one seeded stream.
const chunkSize = 512

// ErrInvalidConfig is returned for unusable generator settings.
var ErrInvalidConfig = errors.New("invalid generator config")

// Review mirrors one input row.
type Review struct {
	ReviewerID     string  `json:"reviewerID"`
	ASIN           string  `json:"asin"`
	ReviewText     string  `json:"reviewText"`
	Overall        float64 `json:"overall"`
	Summary        string  `json:"summary"`
	UnixReviewTime int64   `json:"unixReviewTime"`
}

// baseTime anchors generated review timestamps.
var baseTime = time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // fixed epoch

// Generate produces cfg.NumReviews reviews.
func Generate(ctx context.Context, cfg Config) ([]Review, error) {
	if cfg.NumReviews < 0 {
		return nil, fmt.Errorf("%w: negative review count %d", ErrInvalidConfig, cfg.NumReviews)
	}
	var total float64
	for _, w := range cfg.RatingWeights {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative rating weight", ErrInvalidConfig)
		}
		total += w
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: rating weights sum to zero", ErrInvalidConfig)
	}

	out := make([]Review, cfg.NumReviews)
	eg, egCtx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		eg.SetLimit(cfg.Workers)
	}
	for start := 0; start < cfg.NumReviews; start += chunkSize {
		end := min(start+chunkSize, cfg.NumReviews)
		chunk := int64(start / chunkSize)
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return fmt.Errorf("context cancelled during review generation: %w", err)
			}
			rng := rand.New(rand.NewSource(cfg.Seed*1_000_003 + chunk)) //nolint:gosec // reproducible fixtures
			for i := start; i < end; i++ {
				out[i] = generateOne(rng, cfg, total)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func generateOne(rng *rand.Rand, cfg Config, total float64) Review {
	rating := pickRating(rng, cfg.RatingWeights, total)

	var bank, opposite []string
	switch {
	case rating >= 4:
		bank, opposite = positivePhrases, negativePhrases
	case rating <= 2:
		bank, opposite = negativePhrases, positivePhrases
	default:
		bank, opposite = neutralPhrases, append(append([]string(nil), positivePhrases...), negativePhrases...)
	}

	product := products[rng.Intn(len(products))]
	sentences := []string{fmt.Sprintf("Bought this %s last month.", product)}
	for n := 1 + rng.Intn(3); n > 0; n-- {
		src := bank
		if rng.Float64() < cfg.NoiseRate {
			src = opposite
		}
		sentences = append(sentences, capitalize(src[rng.Intn(len(src))])+".")
	}

	reviewer, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		reviewer = uuid.Nil
	}
	sums := summaries[rating]
	return Review{
		ReviewerID:     strings.ToUpper(strings.ReplaceAll(reviewer.String(), "-", "")[:14]),
		ASIN:           fmt.Sprintf("B%09d", rng.Intn(1_000_000_000)),
		ReviewText:     strings.Join(sentences, " "),
		Overall:        float64(rating),
		Summary:        sums[rng.Intn(len(sums))],
		UnixReviewTime: baseTime.Add(time.Duration(rng.Intn(3*365*24)) * time.Hour).Unix(),
	}
}

func pickRating(rng *rand.Rand, weights [5]float64, total float64) int {
	x := rng.Float64() * total
	for i, w := range weights {
		if x < w {
			return i + 1
		}
		x -= w
	}
	return len(weights)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Write encodes reviews as one JSON object per line.
func Write(w io.Writer, reviews []Review) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i := range reviews {
		if err := enc.Encode(&reviews[i]); err != nil {
			return fmt.Errorf("encode review %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// WriteFile writes reviews to path, replacing any existing file.
func WriteFile(path string, reviews []Review) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Write(f, reviews)
}
