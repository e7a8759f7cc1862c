// Package svm implements a support vector classifier trained with the
// Pegasos primal sub-gradient method. The RBF kernel is approximated with
// random Fourier features so both kernels share one linear solver.
package svm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/okian/revsent/pkg/learn"
	"gonum.org/v1/gonum/floats"
)

// Kernel names the similarity function of the classifier.
type Kernel string

// Supported kernels.
const (
	Linear Kernel = "linear"
	RBF    Kernel = "rbf"
)

// ErrUnknownKernel is returned by Fit for unsupported kernels.
var ErrUnknownKernel = errors.New("unknown kernel")

// Defaults.
const (
	defaultC          = 1.0
	defaultEpochs     = 20
	defaultComponents = 256
	defaultSeed       = 42
	foldThreshold     = 1e-9
)

// ParseKernel validates a kernel name.
func ParseKernel(name string) (Kernel, error) {
	switch Kernel(name) {
	case Linear, RBF:
		return Kernel(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}
}

// SVC is a one-vs-rest support vector classifier.
type SVC struct {
	kernel     Kernel
	c          float64
	gamma      float64
	epochs     int
	components int
	seed       int64

	classes []string
	cols    int
	fourier *fourierMap
	weights [][]float64 // one hyperplane per problem, bias stored last
}

// New creates an unfitted classifier.
func New(opts ...Option) *SVC {
	s := &SVC{
		kernel:     Linear,
		c:          defaultC,
		epochs:     defaultEpochs,
		components: defaultComponents,
		seed:       defaultSeed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kernel returns the configured kernel.
func (s *SVC) Kernel() Kernel { return s.kernel }

// C returns the configured regularization parameter.
func (s *SVC) C() float64 { return s.c }

// Fit trains one hyperplane for binary problems and one per class otherwise.
func (s *SVC) Fit(ctx context.Context, x *learn.Matrix, y []string) error {
	classes, err := learn.CheckTrainingSet(x, y)
	if err != nil {
		return err
	}
	if _, err := ParseKernel(string(s.kernel)); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(s.seed)) //nolint:gosec // reproducible training
	var data samples = sparseSamples{m: x}
	s.fourier = nil
	if s.kernel == RBF {
		gamma := s.gamma
		if gamma == 0 {
			gamma = scaleGamma(x)
		}
		s.fourier = newFourierMap(x.Cols, s.components, gamma, rng)
		data = denseSamples{rows: s.fourier.transform(x), dim: s.components}
	}

	encoded := learn.Encode(y, classes)
	problems := len(classes)
	if problems == 2 {
		problems = 1
	}
	lambda := 1 / (s.c * float64(len(y)))
	weights := make([][]float64, problems)
	signs := make([]float64, len(y))
	for p := 0; p < problems; p++ {
		positive := p
		if len(classes) == 2 {
			positive = 1
		}
		for i, k := range encoded {
			if k == positive {
				signs[i] = 1
			} else {
				signs[i] = -1
			}
		}
		w, err := pegasos(ctx, data, signs, lambda, s.epochs, rng)
		if err != nil {
			return err
		}
		weights[p] = w
	}

	s.classes = classes
	s.cols = x.Cols
	s.weights = weights
	return nil
}

// Predict returns one label per row of x.
func (s *SVC) Predict(x *learn.Matrix) ([]string, error) {
	scores, err := s.DecisionFunction(x)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(scores))
	for i, row := range scores {
		if len(s.classes) == 2 {
			if row[0] > 0 {
				out[i] = s.classes[1]
			} else {
				out[i] = s.classes[0]
			}
			continue
		}
		out[i] = s.classes[floats.MaxIdx(row)]
	}
	return out, nil
}

// DecisionFunction returns the signed distance to each hyperplane.
func (s *SVC) DecisionFunction(x *learn.Matrix) ([][]float64, error) {
	if s.weights == nil {
		return nil, fmt.Errorf("svm predict: %w", learn.ErrNotFitted)
	}
	if x.Cols != s.cols {
		return nil, fmt.Errorf("%w: fitted on %d columns, got %d", learn.ErrDimensionMismatch, s.cols, x.Cols)
	}
	var data samples = sparseSamples{m: x}
	if s.fourier != nil {
		data = denseSamples{rows: s.fourier.transform(x), dim: s.components}
	}
	out := make([][]float64, data.Len())
	for i := range out {
		row := make([]float64, len(s.weights))
		for p, w := range s.weights {
			row[p] = data.Dot(i, w)
		}
		out[i] = row
	}
	return out, nil
}

// Classes returns the labels seen during Fit in sorted order.
func (s *SVC) Classes() []string { return append([]string(nil), s.classes...) }

// pegasos minimizes lambda/2*|w|^2 + mean hinge loss. The hyperplane is kept
// as scale*v so that the shrink step is O(1).
func pegasos(ctx context.Context, data samples, y []float64, lambda float64, epochs int, rng *rand.Rand) ([]float64, error) {
	n := data.Len()
	v := make([]float64, data.Dim()+1)
	scale := 1.0
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	t := 0
	for epoch := 0; epoch < epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("svm fit cancelled: %w", err)
		}
		rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, i := range order {
			t++
			eta := 1 / (lambda * float64(t))
			margin := y[i] * scale * data.Dot(i, v)

			if shrink := 1 - eta*lambda; shrink > 0 {
				scale *= shrink
			} else {
				for k := range v {
					v[k] = 0
				}
				scale = 1
			}
			if margin < 1 {
				data.AddTo(i, eta*y[i]/scale, v)
			}
			if scale < foldThreshold {
				floats.Scale(scale, v)
				scale = 1
			}
		}
	}
	floats.Scale(scale, v)
	return v, nil
}

// scaleGamma returns 1/(features*variance) over every entry of x, zeros
// included.
func scaleGamma(x *learn.Matrix) float64 {
	n := float64(len(x.Rows)) * float64(x.Cols)
	if n == 0 {
		return 1
	}
	var sum, sumSq float64
	for _, row := range x.Rows {
		for _, v := range row.Values {
			sum += v
			sumSq += v * v
		}
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance <= 0 || math.IsNaN(variance) {
		return 1
	}
	return 1 / (float64(x.Cols) * variance)
}
