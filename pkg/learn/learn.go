// Package learn is a small text-classification toolkit: sparse feature
// matrices, a common classifier contract and the helpers shared by the
// estimators in its sub-packages.
//
// Estimators live in sub-packages:
//
//	text      TF-IDF vectorization
//	svm       margin-based classifier (linear and RBF)
//	tree      CART decision tree
//	bayes     Gaussian naive Bayes (dense input)
//	linear    L2-regularized logistic regression
//	lexicon   lexicon baseline working on raw text
//	evaluate  accuracy, F-measure and confusion counts
//	search    exhaustive grid search with cross-validation
package learn

import (
	"context"
	"fmt"
	"sort"
)

// Vector is a sparse row. Indices are strictly increasing.
type Vector struct {
	Indices []int
	Values  []float64
}

// NNZ returns the number of stored entries.
func (v Vector) NNZ() int { return len(v.Indices) }

// At returns the value at column j, zero when absent.
func (v Vector) At(j int) float64 {
	k := sort.SearchInts(v.Indices, j)
	if k < len(v.Indices) && v.Indices[k] == j {
		return v.Values[k]
	}
	return 0
}

// Dot returns the inner product with a dense weight slice.
// Columns beyond len(w) contribute nothing.
func (v Vector) Dot(w []float64) float64 {
	var s float64
	for k, j := range v.Indices {
		if j < len(w) {
			s += v.Values[k] * w[j]
		}
	}
	return s
}

// Matrix is a row-major sparse matrix.
type Matrix struct {
	Rows []Vector
	Cols int
}

// NewMatrix returns an empty matrix with the given column count.
func NewMatrix(cols int) *Matrix {
	return &Matrix{Cols: cols}
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) {
	return len(m.Rows), m.Cols
}

// Subset returns a matrix sharing the selected rows.
func (m *Matrix) Subset(idx []int) *Matrix {
	out := &Matrix{Rows: make([]Vector, len(idx)), Cols: m.Cols}
	for i, k := range idx {
		out.Rows[i] = m.Rows[k]
	}
	return out
}

// FromDense builds a sparse matrix from dense rows, skipping zeros.
func FromDense(rows [][]float64) *Matrix {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	m := &Matrix{Rows: make([]Vector, len(rows)), Cols: cols}
	for i, r := range rows {
		var v Vector
		for j, x := range r {
			if x != 0 {
				v.Indices = append(v.Indices, j)
				v.Values = append(v.Values, x)
			}
		}
		m.Rows[i] = v
	}
	return m
}

// Classifier is the contract shared by every estimator.
type Classifier interface {
	// Fit learns from x and the aligned labels y.
	Fit(ctx context.Context, x *Matrix, y []string) error
	// Predict returns one label per row of x.
	Predict(x *Matrix) ([]string, error)
}

// Score returns the mean accuracy of clf on x against y.
func Score(clf Classifier, x *Matrix, y []string) (float64, error) {
	if len(x.Rows) != len(y) {
		return 0, fmt.Errorf("%w: %d rows, %d labels", ErrDimensionMismatch, len(x.Rows), len(y))
	}
	if len(y) == 0 {
		return 0, nil
	}
	pred, err := clf.Predict(x)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i := range y {
		if pred[i] == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y)), nil
}

// CheckTrainingSet validates the shapes of a training call and returns the
// sorted distinct classes.
func CheckTrainingSet(x *Matrix, y []string) ([]string, error) {
	if x == nil || len(x.Rows) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	if len(x.Rows) != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", ErrDimensionMismatch, len(x.Rows), len(y))
	}
	classes := Classes(y)
	if len(classes) < 2 {
		return nil, fmt.Errorf("%w: %v", ErrSingleClass, classes)
	}
	return classes, nil
}

// Classes returns the distinct labels of y in lexicographic order.
func Classes(y []string) []string {
	set := make(map[string]struct{})
	for _, l := range y {
		set[l] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Encode maps labels to their index in classes; unknown labels map to -1.
func Encode(y, classes []string) []int {
	pos := make(map[string]int, len(classes))
	for i, c := range classes {
		pos[c] = i
	}
	out := make([]int, len(y))
	for i, l := range y {
		if k, ok := pos[l]; ok {
			out[i] = k
		} else {
			out[i] = -1
		}
	}
	return out
}
