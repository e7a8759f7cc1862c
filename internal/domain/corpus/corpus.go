// Package corpus holds ordered review collections for one pipeline branch
// and the operations that reshape them before vectorization.
package corpus

import (
	"math/rand"
	"time"

	"github.com/okian/revsent/internal/domain/model"
)

// Corpus is an ordered collection of records owned by a single branch
// (training or testing). Only Balance mutates it.
type Corpus struct {
	records []model.Record
}

// New creates a Corpus holding a private copy of records.
func New(records []model.Record) *Corpus {
	return &Corpus{records: append([]model.Record(nil), records...)}
}

// Len returns the number of records.
func (c *Corpus) Len() int { return len(c.records) }

// Records returns a copy of the records in current order.
func (c *Corpus) Records() []model.Record {
	return append([]model.Record(nil), c.records...)
}

// Texts returns the text of every record in current order.
func (c *Corpus) Texts() []string {
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.Text()
	}
	return out
}

// Labels returns the label of every record, aligned with Texts.
func (c *Corpus) Labels() []model.Sentiment {
	out := make([]model.Sentiment, len(c.records))
	for i, r := range c.records {
		out[i] = r.Label()
	}
	return out
}

// Count returns how many records carry the given label.
func (c *Corpus) Count(label model.Sentiment) int {
	n := 0
	for _, r := range c.records {
		if r.Label() == label {
			n++
		}
	}
	return n
}

// Counts returns the per-label record counts.
func (c *Corpus) Counts() map[model.Sentiment]int {
	out := make(map[model.Sentiment]int, 3)
	for _, r := range c.records {
		out[r.Label()]++
	}
	return out
}

// Balance downsamples positives to the number of negatives and shuffles.
//
// Neutral records are dropped. Positives are truncated to their first
// len(negatives) entries in current order (never padded), appended after
// the negatives, and the result is shuffled in place. A corpus without
// negatives becomes empty.
func (c *Corpus) Balance(opts ...BalanceOption) {
	cfg := balanceConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // shuffling, not security
	}

	var negatives, positives []model.Record
	for _, r := range c.records {
		switch r.Label() {
		case model.Negative:
			negatives = append(negatives, r)
		case model.Positive:
			positives = append(positives, r)
		}
	}

	if len(positives) > len(negatives) {
		positives = positives[:len(negatives)]
	}

	balanced := make([]model.Record, 0, len(negatives)+len(positives))
	balanced = append(balanced, negatives...)
	balanced = append(balanced, positives...)
	rng.Shuffle(len(balanced), func(i, j int) {
		balanced[i], balanced[j] = balanced[j], balanced[i]
	})

	c.records = balanced
}
