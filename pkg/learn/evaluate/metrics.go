// Package evaluate scores predicted labels against ground truth.
package evaluate

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when truth and predictions differ in length.
var ErrLengthMismatch = errors.New("label slices differ in length")

// Accuracy returns the fraction of matching positions. Empty input scores 0.
func Accuracy(yTrue, yPred []string) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return 0, nil
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// F1 returns the F-measure of each requested label, in the order given.
// A label with no true and no predicted occurrences scores 0.
func F1(yTrue, yPred, labels []string) ([]float64, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(yTrue), len(yPred))
	}
	out := make([]float64, len(labels))
	for k, label := range labels {
		var tp, fp, fn int
		for i := range yTrue {
			switch {
			case yTrue[i] == label && yPred[i] == label:
				tp++
			case yTrue[i] != label && yPred[i] == label:
				fp++
			case yTrue[i] == label && yPred[i] != label:
				fn++
			}
		}
		if denom := 2*tp + fp + fn; denom > 0 {
			out[k] = float64(2*tp) / float64(denom)
		}
	}
	return out, nil
}

// Confusion counts predictions per true label: out[true][pred].
func Confusion(yTrue, yPred []string) (map[string]map[string]int, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(yTrue), len(yPred))
	}
	out := make(map[string]map[string]int)
	for i := range yTrue {
		row, ok := out[yTrue[i]]
		if !ok {
			row = make(map[string]int)
			out[yTrue[i]] = row
		}
		row[yPred[i]]++
	}
	return out, nil
}
