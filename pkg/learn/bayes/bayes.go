// Package bayes implements Gaussian naive Bayes on dense features.
package bayes

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/revsent/pkg/learn"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const defaultVarSmoothing = 1e-9

// Option configures a GaussianNB.
type Option func(*GaussianNB)

// WithVarSmoothing sets the share of the largest feature variance added to
// every variance.
func WithVarSmoothing(v float64) Option {
	return func(g *GaussianNB) {
		if v > 0 {
			g.varSmoothing = v
		}
	}
}

// GaussianNB models every feature as an independent normal per class.
type GaussianNB struct {
	varSmoothing float64

	classes  []string
	logPrior []float64
	mean     [][]float64
	variance [][]float64
	epsilon  float64
}

// New creates an unfitted model.
func New(opts ...Option) *GaussianNB {
	g := &GaussianNB{varSmoothing: defaultVarSmoothing}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewClassifier returns a GaussianNB accepting sparse input.
func NewClassifier(opts ...Option) *learn.DenseAdapter {
	return learn.NewDenseAdapter(New(opts...))
}

// FitDense estimates per-class priors, means and variances.
func (g *GaussianNB) FitDense(ctx context.Context, x mat.Matrix, y []string) error {
	r, c := x.Dims()
	if r == 0 {
		return learn.ErrEmptyTrainingSet
	}
	if r != len(y) {
		return fmt.Errorf("%w: %d rows, %d labels", learn.ErrDimensionMismatch, r, len(y))
	}
	classes := learn.Classes(y)
	if len(classes) < 2 {
		return fmt.Errorf("%w: %v", learn.ErrSingleClass, classes)
	}
	encoded := learn.Encode(y, classes)

	members := make([][]int, len(classes))
	for i, k := range encoded {
		members[k] = append(members[k], i)
	}

	mean := make([][]float64, len(classes))
	variance := make([][]float64, len(classes))
	for k := range classes {
		mean[k] = make([]float64, c)
		variance[k] = make([]float64, c)
	}

	col := make([]float64, r)
	buf := make([]float64, 0, r)
	var maxVar float64
	for j := 0; j < c; j++ {
		if j%256 == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("bayes fit cancelled: %w", err)
			}
		}
		mat.Col(col, j, x)
		_, v := stat.PopMeanVariance(col, nil)
		maxVar = math.Max(maxVar, v)
		for k, rows := range members {
			buf = buf[:0]
			for _, i := range rows {
				buf = append(buf, col[i])
			}
			mean[k][j], variance[k][j] = stat.PopMeanVariance(buf, nil)
		}
	}

	eps := g.varSmoothing * maxVar
	if eps == 0 {
		eps = g.varSmoothing
	}
	for k := range variance {
		for j := range variance[k] {
			variance[k][j] += eps
		}
	}

	logPrior := make([]float64, len(classes))
	for k, rows := range members {
		logPrior[k] = math.Log(float64(len(rows)) / float64(r))
	}

	g.classes = classes
	g.logPrior = logPrior
	g.mean = mean
	g.variance = variance
	g.epsilon = eps
	return nil
}

// PredictDense returns the class with the highest joint log likelihood.
func (g *GaussianNB) PredictDense(x mat.Matrix) ([]string, error) {
	jll, err := g.jointLogLikelihood(x)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(jll))
	for i, row := range jll {
		out[i] = g.classes[floats.MaxIdx(row)]
	}
	return out, nil
}

// PredictProbaDense returns normalized class probabilities per row, in the
// order of Classes.
func (g *GaussianNB) PredictProbaDense(x mat.Matrix) ([][]float64, error) {
	jll, err := g.jointLogLikelihood(x)
	if err != nil {
		return nil, err
	}
	for _, row := range jll {
		norm := floats.LogSumExp(row)
		for k := range row {
			row[k] = math.Exp(row[k] - norm)
		}
	}
	return jll, nil
}

// Classes returns the fitted labels in sorted order.
func (g *GaussianNB) Classes() []string { return append([]string(nil), g.classes...) }

// Epsilon returns the variance added during fitting.
func (g *GaussianNB) Epsilon() float64 { return g.epsilon }

func (g *GaussianNB) jointLogLikelihood(x mat.Matrix) ([][]float64, error) {
	if g.classes == nil {
		return nil, fmt.Errorf("bayes predict: %w", learn.ErrNotFitted)
	}
	r, c := x.Dims()
	if r == 0 {
		return [][]float64{}, nil
	}
	if c != len(g.mean[0]) {
		return nil, fmt.Errorf("%w: fitted on %d columns, got %d", learn.ErrDimensionMismatch, len(g.mean[0]), c)
	}

	norms := make([]float64, len(g.classes))
	for k, vars := range g.variance {
		var s float64
		for _, v := range vars {
			s += math.Log(2 * math.Pi * v)
		}
		norms[k] = g.logPrior[k] - 0.5*s
	}

	row := make([]float64, c)
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		mat.Row(row, i, x)
		scores := make([]float64, len(g.classes))
		for k := range g.classes {
			var s float64
			for j, v := range row {
				d := v - g.mean[k][j]
				s += d * d / g.variance[k][j]
			}
			scores[k] = norms[k] - 0.5*s
		}
		out[i] = scores
	}
	return out, nil
}
