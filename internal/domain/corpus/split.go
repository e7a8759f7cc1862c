package corpus

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/okian/revsent/internal/domain/model"
)

// ErrInvalidFraction is returned when the held-out fraction is outside (0,1).
var ErrInvalidFraction = errors.New("test fraction must be in (0,1)")

// Split shuffles records with a seeded source and partitions them into a
// training and a testing subset. The testing subset receives
// ceil(testFraction*n) records; the input slice is not modified.
func Split(records []model.Record, testFraction float64, seed int64) (train, test []model.Record, err error) {
	if !(testFraction > 0 && testFraction < 1) {
		return nil, nil, fmt.Errorf("%w: got %v", ErrInvalidFraction, testFraction)
	}
	if len(records) == 0 {
		return []model.Record{}, []model.Record{}, nil
	}

	n := len(records)
	nTest := int(math.Ceil(testFraction * float64(n)))
	if nTest > n {
		nTest = n
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible split
	perm := rng.Perm(n)

	test = make([]model.Record, 0, nTest)
	for _, idx := range perm[:nTest] {
		test = append(test, records[idx])
	}
	train = make([]model.Record, 0, n-nTest)
	for _, idx := range perm[nTest:] {
		train = append(train, records[idx])
	}
	return train, test, nil
}
