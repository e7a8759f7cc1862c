package corpus

import "math/rand"

type balanceConfig struct {
	rng *rand.Rand
}

// BalanceOption configures a Balance call.
type BalanceOption func(*balanceConfig)

// WithSeed makes the shuffle reproducible.
func WithSeed(seed int64) BalanceOption {
	return func(c *balanceConfig) {
		c.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic shuffle
	}
}

// WithRand shuffles with the provided source. A nil source is ignored.
func WithRand(rng *rand.Rand) BalanceOption {
	return func(c *balanceConfig) {
		if rng != nil {
			c.rng = rng
		}
	}
}
