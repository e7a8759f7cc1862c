package learn

import "errors"

// Sentinel errors shared by estimators.
var (
	ErrNotFitted         = errors.New("estimator is not fitted")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrEmptyTrainingSet  = errors.New("empty training set")
	ErrSingleClass       = errors.New("training set needs at least two classes")
)
