// Package search selects hyperparameters by exhaustive cross-validated
// search over a list of candidate estimators.
package search

import (
	"context"
	"fmt"
	"strconv"

	"github.com/okian/revsent/pkg/learn"
	"github.com/okian/revsent/pkg/learn/svm"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

const defaultFolds = 5

// Candidate is one point of the grid.
type Candidate struct {
	Name   string
	Params map[string]string
	New    func() learn.Classifier
}

// Result holds the cross-validation outcome of one candidate.
type Result struct {
	Candidate  Candidate
	FoldScores []float64
	MeanScore  float64
}

// Option configures a GridSearch.
type Option func(*GridSearch)

// WithFolds sets the number of cross-validation folds.
func WithFolds(k int) Option {
	return func(g *GridSearch) {
		if k > 0 {
			g.folds = k
		}
	}
}

// WithWorkers bounds concurrent fits. Zero or less means unbounded.
func WithWorkers(n int) Option {
	return func(g *GridSearch) {
		g.workers = n
	}
}

// GridSearch evaluates every candidate on every fold and refits the best
// one on the full training set.
type GridSearch struct {
	candidates []Candidate
	folds      int
	workers    int

	results []Result
	best    int
	model   learn.Classifier
}

// New creates a search over candidates.
func New(candidates []Candidate, opts ...Option) *GridSearch {
	g := &GridSearch{candidates: candidates, folds: defaultFolds, best: -1}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fit runs the search. Ties on mean accuracy keep the earlier candidate.
func (g *GridSearch) Fit(ctx context.Context, x *learn.Matrix, y []string) error {
	if len(g.candidates) == 0 {
		return ErrNoCandidates
	}
	if _, err := learn.CheckTrainingSet(x, y); err != nil {
		return err
	}
	folds, err := StratifiedKFold(y, g.folds)
	if err != nil {
		return err
	}

	scores := make([][]float64, len(g.candidates))
	for c := range scores {
		scores[c] = make([]float64, len(folds))
	}

	eg, egCtx := errgroup.WithContext(ctx)
	if g.workers > 0 {
		eg.SetLimit(g.workers)
	}
	for c, cand := range g.candidates {
		for f, test := range folds {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				train := complement(len(y), test)
				clf := cand.New()
				if err := clf.Fit(egCtx, x.Subset(train), subsetLabels(y, train)); err != nil {
					return fmt.Errorf("candidate %s fold %d: %w", cand.Name, f, err)
				}
				acc, err := learn.Score(clf, x.Subset(test), subsetLabels(y, test))
				if err != nil {
					return fmt.Errorf("candidate %s fold %d: %w", cand.Name, f, err)
				}
				scores[c][f] = acc
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	results := make([]Result, len(g.candidates))
	best := 0
	for c, cand := range g.candidates {
		results[c] = Result{
			Candidate:  cand,
			FoldScores: scores[c],
			MeanScore:  stat.Mean(scores[c], nil),
		}
		if results[c].MeanScore > results[best].MeanScore {
			best = c
		}
	}

	model := g.candidates[best].New()
	if err := model.Fit(ctx, x, y); err != nil {
		return fmt.Errorf("refit %s: %w", g.candidates[best].Name, err)
	}
	g.results = results
	g.best = best
	g.model = model
	return nil
}

// Predict predicts with the refitted best estimator.
func (g *GridSearch) Predict(x *learn.Matrix) ([]string, error) {
	if g.model == nil {
		return nil, fmt.Errorf("grid search predict: %w", learn.ErrNotFitted)
	}
	return g.model.Predict(x)
}

// Score returns the accuracy of the best estimator on x.
func (g *GridSearch) Score(x *learn.Matrix, y []string) (float64, error) {
	if g.model == nil {
		return 0, fmt.Errorf("grid search score: %w", learn.ErrNotFitted)
	}
	return learn.Score(g.model, x, y)
}

// BestCandidate returns the winning candidate.
func (g *GridSearch) BestCandidate() (Candidate, bool) {
	if g.best < 0 {
		return Candidate{}, false
	}
	return g.candidates[g.best], true
}

// BestScore returns the mean CV accuracy of the winning candidate.
func (g *GridSearch) BestScore() float64 {
	if g.best < 0 {
		return 0
	}
	return g.results[g.best].MeanScore
}

// Results returns one entry per candidate in grid order.
func (g *GridSearch) Results() []Result { return append([]Result(nil), g.results...) }

// SVMGrid builds the C x kernel product of SVC candidates, C varying
// slowest, so ties between equal scores go to the earlier C. Extra options
// are applied to every candidate before the grid parameters.
func SVMGrid(kernels []svm.Kernel, cs []float64, opts ...svm.Option) []Candidate {
	out := make([]Candidate, 0, len(kernels)*len(cs))
	for _, c := range cs {
		cv := strconv.FormatFloat(c, 'g', -1, 64)
		for _, k := range kernels {
			params := append(append([]svm.Option(nil), opts...), svm.WithKernel(k), svm.WithC(c))
			out = append(out, Candidate{
				Name:   fmt.Sprintf("svm(kernel=%s,C=%s)", k, cv),
				Params: map[string]string{"kernel": string(k), "C": cv},
				New:    func() learn.Classifier { return svm.New(params...) },
			})
		}
	}
	return out
}
