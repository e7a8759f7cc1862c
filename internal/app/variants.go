package app

import (
	"context"
	"fmt"

	"github.com/okian/revsent/internal/config"
	"github.com/okian/revsent/pkg/learn"
	"github.com/okian/revsent/pkg/learn/bayes"
	"github.com/okian/revsent/pkg/learn/lexicon"
	"github.com/okian/revsent/pkg/learn/linear"
	"github.com/okian/revsent/pkg/learn/svm"
	"github.com/okian/revsent/pkg/learn/tree"
)

// variant is one classifier under evaluation. Matrix-based variants ignore
// the raw texts and text-based variants ignore the matrix.
type variant interface {
	Name() string
	Fit(ctx context.Context, x *learn.Matrix, texts, y []string) error
	Predict(x *learn.Matrix, texts []string) ([]string, error)
}

type matrixVariant struct {
	name string
	clf  learn.Classifier
}

func (v *matrixVariant) Name() string { return v.name }

func (v *matrixVariant) Fit(ctx context.Context, x *learn.Matrix, _, y []string) error {
	return v.clf.Fit(ctx, x, y)
}

func (v *matrixVariant) Predict(x *learn.Matrix, _ []string) ([]string, error) {
	return v.clf.Predict(x)
}

// converger is implemented by iterative estimators that can stop early.
type converger interface {
	ConvergenceErr() error
}

// fitWarning reports a non-fatal problem of the last fit, if any.
func (v *matrixVariant) fitWarning() error {
	if c, ok := v.clf.(converger); ok {
		return c.ConvergenceErr()
	}
	return nil
}

// lexiconVariant scores raw text and needs no training.
type lexiconVariant struct {
	analyzer *lexicon.Analyzer
}

func (v *lexiconVariant) Name() string { return config.ModelLexicon }

func (v *lexiconVariant) Fit(context.Context, *learn.Matrix, []string, []string) error { return nil }

func (v *lexiconVariant) Predict(_ *learn.Matrix, texts []string) ([]string, error) {
	return v.analyzer.Predict(texts), nil
}

// newVariant builds the named variant from the pipeline settings.
func (p *Pipeline) newVariant(name string) (variant, error) {
	switch name {
	case config.ModelSVM:
		return &matrixVariant{name: name, clf: svm.New(
			svm.WithKernel(svm.Linear),
			svm.WithC(p.svmC),
			svm.WithEpochs(p.svmEpochs),
			svm.WithComponents(p.svmComponents),
			svm.WithSeed(p.seed),
		)}, nil
	case config.ModelTree:
		return &matrixVariant{name: name, clf: tree.New(tree.WithMaxDepth(p.treeMaxDepth))}, nil
	case config.ModelBayes:
		return &matrixVariant{name: name, clf: bayes.NewClassifier()}, nil
	case config.ModelLogistic:
		return &matrixVariant{name: name, clf: linear.New(
			linear.WithC(p.logisticC),
			linear.WithMaxIter(p.logisticMaxIter),
		)}, nil
	case config.ModelLexicon:
		return &lexiconVariant{analyzer: lexicon.New()}, nil
	default:
		return nil, fmt.Errorf("unknown model %q", name)
	}
}
