package search

import "errors"

var (
	// ErrNoCandidates is returned when a search has nothing to evaluate.
	ErrNoCandidates = errors.New("grid search has no candidates")
	// ErrInvalidFolds is returned for fewer than two folds or more folds
	// than samples.
	ErrInvalidFolds = errors.New("invalid number of folds")
)
