// Package linear implements L2-regularized logistic regression fitted with
// L-BFGS.
package linear

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/revsent/pkg/learn"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

const (
	defaultC       = 1.0
	defaultMaxIter = 100
	gradTolerance  = 1e-4
)

// Option configures a LogisticRegression.
type Option func(*LogisticRegression)

// WithC sets the inverse regularization strength.
func WithC(c float64) Option {
	return func(l *LogisticRegression) {
		if c > 0 {
			l.c = c
		}
	}
}

// WithMaxIter caps the number of L-BFGS iterations.
func WithMaxIter(n int) Option {
	return func(l *LogisticRegression) {
		if n > 0 {
			l.maxIter = n
		}
	}
}

// LogisticRegression minimizes C*sum(log loss) + |W|^2/2. Intercepts are
// not penalized. Two classes share one weight vector; more classes use a
// multinomial model.
type LogisticRegression struct {
	c       float64
	maxIter int

	classes []string
	cols    int
	weights [][]float64 // per output, intercept last
	status  optimize.Status
	stopErr error
}

// New creates an unfitted model.
func New(opts ...Option) *LogisticRegression {
	l := &LogisticRegression{c: defaultC, maxIter: defaultMaxIter}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Status reports how the last optimization terminated.
func (l *LogisticRegression) Status() optimize.Status { return l.status }

// ConvergenceErr returns why the last fit stopped before reaching a minimum,
// or nil when it converged. The fitted weights remain usable either way.
func (l *LogisticRegression) ConvergenceErr() error { return l.stopErr }

// Fit estimates the weights.
func (l *LogisticRegression) Fit(ctx context.Context, x *learn.Matrix, y []string) error {
	classes, err := learn.CheckTrainingSet(x, y)
	if err != nil {
		return err
	}
	outputs := len(classes)
	if outputs == 2 {
		outputs = 1
	}
	obj := &objective{
		ctx:     ctx,
		x:       x,
		y:       learn.Encode(y, classes),
		c:       l.c,
		outputs: outputs,
		stride:  x.Cols + 1,
	}

	problem := optimize.Problem{Func: obj.value, Grad: obj.gradient}
	settings := &optimize.Settings{
		MajorIterations:   l.maxIter,
		GradientThreshold: gradTolerance,
	}
	res, err := optimize.Minimize(problem, make([]float64, outputs*obj.stride), settings, &optimize.LBFGS{})
	if cerr := ctx.Err(); cerr != nil {
		return fmt.Errorf("logistic fit cancelled: %w", cerr)
	}
	// Iteration and line-search limits still leave a usable estimate.
	if res == nil || !finite(res.X) {
		if err == nil {
			err = fmt.Errorf("non-finite solution")
		}
		return fmt.Errorf("logistic fit: %w", err)
	}

	weights := make([][]float64, outputs)
	for k := range weights {
		weights[k] = append([]float64(nil), res.X[k*obj.stride:(k+1)*obj.stride]...)
	}
	l.classes = classes
	l.cols = x.Cols
	l.weights = weights
	l.status = res.Status
	l.stopErr = nil
	switch {
	case err != nil:
		l.stopErr = fmt.Errorf("logistic fit stopped early (%s): %w", res.Status, err)
	case res.Status.Early():
		l.stopErr = fmt.Errorf("logistic fit stopped early: %w", res.Status.Err())
	}
	return nil
}

// Predict returns one label per row of x.
func (l *LogisticRegression) Predict(x *learn.Matrix) ([]string, error) {
	proba, err := l.PredictProba(x)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(proba))
	for i, p := range proba {
		out[i] = l.classes[floats.MaxIdx(p)]
	}
	return out, nil
}

// PredictProba returns class probabilities per row in the order of the
// sorted class labels.
func (l *LogisticRegression) PredictProba(x *learn.Matrix) ([][]float64, error) {
	if l.weights == nil {
		return nil, fmt.Errorf("logistic predict: %w", learn.ErrNotFitted)
	}
	if x.Cols != l.cols {
		return nil, fmt.Errorf("%w: fitted on %d columns, got %d", learn.ErrDimensionMismatch, l.cols, x.Cols)
	}
	out := make([][]float64, len(x.Rows))
	for i, row := range x.Rows {
		if len(l.weights) == 1 {
			p := sigmoid(linear(row, l.weights[0], l.cols))
			out[i] = []float64{1 - p, p}
			continue
		}
		z := make([]float64, len(l.weights))
		for k, w := range l.weights {
			z[k] = linear(row, w, l.cols)
		}
		norm := floats.LogSumExp(z)
		for k := range z {
			z[k] = math.Exp(z[k] - norm)
		}
		out[i] = z
	}
	return out, nil
}

type objective struct {
	ctx     context.Context
	x       *learn.Matrix
	y       []int
	c       float64
	outputs int
	stride  int
}

func (o *objective) value(params []float64) float64 {
	if o.ctx.Err() != nil {
		return math.NaN()
	}
	var loss float64
	z := make([]float64, o.outputs)
	for i, row := range o.x.Rows {
		if o.outputs == 1 {
			f := linear(row, params, o.x.Cols)
			loss += log1pExp(f)
			if o.y[i] == 1 {
				loss -= f
			}
			continue
		}
		for k := range z {
			z[k] = linear(row, params[k*o.stride:(k+1)*o.stride], o.x.Cols)
		}
		loss += floats.LogSumExp(z) - z[o.y[i]]
	}
	return o.c*loss + 0.5*o.penalty(params)
}

func (o *objective) gradient(grad, params []float64) {
	for k := range grad {
		grad[k] = 0
	}
	z := make([]float64, o.outputs)
	for i, row := range o.x.Rows {
		if o.outputs == 1 {
			r := sigmoid(linear(row, params, o.x.Cols))
			if o.y[i] == 1 {
				r--
			}
			addRow(grad, row, o.c*r, o.x.Cols)
			continue
		}
		for k := range z {
			z[k] = linear(row, params[k*o.stride:(k+1)*o.stride], o.x.Cols)
		}
		norm := floats.LogSumExp(z)
		for k := range z {
			r := math.Exp(z[k] - norm)
			if k == o.y[i] {
				r--
			}
			addRow(grad[k*o.stride:(k+1)*o.stride], row, o.c*r, o.x.Cols)
		}
	}
	for k := 0; k < o.outputs; k++ {
		base := k * o.stride
		for j := 0; j < o.x.Cols; j++ {
			grad[base+j] += params[base+j]
		}
	}
}

func (o *objective) penalty(params []float64) float64 {
	var s float64
	for k := 0; k < o.outputs; k++ {
		w := params[k*o.stride : k*o.stride+o.x.Cols]
		s += floats.Dot(w, w)
	}
	return s
}

// linear evaluates w.x + b where b is stored at w[cols].
func linear(row learn.Vector, w []float64, cols int) float64 {
	return row.Dot(w[:cols]) + w[cols]
}

func addRow(grad []float64, row learn.Vector, alpha float64, cols int) {
	for k, j := range row.Indices {
		if j < cols {
			grad[j] += alpha * row.Values[k]
		}
	}
	grad[cols] += alpha
}

func sigmoid(f float64) float64 {
	if f >= 0 {
		return 1 / (1 + math.Exp(-f))
	}
	e := math.Exp(f)
	return e / (1 + e)
}

func log1pExp(f float64) float64 {
	if f > 0 {
		return f + math.Log1p(math.Exp(-f))
	}
	return math.Log1p(math.Exp(f))
}

func finite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
