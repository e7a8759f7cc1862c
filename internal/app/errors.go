package app

import (
	"errors"
	"fmt"
)

// ErrNoTrainingData is wrapped in a ModelError when balancing leaves a class
// without training records.
var ErrNoTrainingData = errors.New("no training data after balancing")

// InputError reports a failure to read or decode the review input.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ModelError reports a failure while vectorizing, fitting, predicting or
// tuning.
type ModelError struct {
	Model string
	Stage string
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s %s: %v", e.Model, e.Stage, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }
