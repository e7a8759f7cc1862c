package learn

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// DenseClassifier is implemented by estimators that need dense input.
type DenseClassifier interface {
	FitDense(ctx context.Context, x mat.Matrix, y []string) error
	PredictDense(x mat.Matrix) ([]string, error)
}

// ToDense materializes a sparse matrix. Memory grows with rows*cols.
func ToDense(m *Matrix) *mat.Dense {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(r, c, nil)
	for i, row := range m.Rows {
		raw := d.RawRowView(i)
		for k, j := range row.Indices {
			raw[j] = row.Values[k]
		}
	}
	return d
}

// DenseAdapter exposes a DenseClassifier as a Classifier by converting the
// sparse input at the call boundary.
type DenseAdapter struct {
	Model DenseClassifier
}

// NewDenseAdapter wraps model.
func NewDenseAdapter(model DenseClassifier) *DenseAdapter {
	return &DenseAdapter{Model: model}
}

// Fit converts x to dense and fits the wrapped model.
func (a *DenseAdapter) Fit(ctx context.Context, x *Matrix, y []string) error {
	if x == nil || len(x.Rows) == 0 {
		return ErrEmptyTrainingSet
	}
	return a.Model.FitDense(ctx, ToDense(x), y)
}

// Predict converts x to dense and predicts with the wrapped model.
func (a *DenseAdapter) Predict(x *Matrix) ([]string, error) {
	if len(x.Rows) == 0 {
		return []string{}, nil
	}
	return a.Model.PredictDense(ToDense(x))
}
