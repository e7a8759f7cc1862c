package app

import (
	"github.com/okian/revsent/internal/adapters/reviews"
	"github.com/okian/revsent/internal/domain/model"
	"github.com/okian/revsent/pkg/logger"
)

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithInputPath sets the review file to read.
func WithInputPath(path string) Option {
	return func(p *Pipeline) {
		if path != "" {
			p.inputPath = path
		}
	}
}

// WithTestFraction sets the share of records held out for evaluation.
func WithTestFraction(f float64) Option {
	return func(p *Pipeline) {
		p.testFraction = f
	}
}

// WithRandomSeed fixes every random source of the run.
func WithRandomSeed(seed int64) Option {
	return func(p *Pipeline) {
		p.seed = seed
	}
}

// WithModels selects the variants to train, in report order.
func WithModels(names ...string) Option {
	return func(p *Pipeline) {
		p.models = append([]string(nil), names...)
	}
}

// WithSamples sets ad hoc sentences and their expected labels. Labels are
// matched case-insensitively against the sentiment names.
func WithSamples(texts, expected []string) Option {
	return func(p *Pipeline) {
		p.samples = append([]string(nil), texts...)
		p.sampleLabels = make([]string, len(expected))
		for i, l := range expected {
			if s, err := model.ParseSentiment(l); err == nil {
				l = s.String()
			}
			p.sampleLabels[i] = l
		}
	}
}

// TuningSettings configures the grid search over the margin classifier.
type TuningSettings struct {
	Enabled bool
	Folds   int
	Workers int
	Kernels []string
	C       []float64
}

// WithTuning configures the grid search.
func WithTuning(t TuningSettings) Option {
	return func(p *Pipeline) {
		p.tuning = t
	}
}

// WithSVM configures the margin classifier variant.
func WithSVM(c float64, epochs, components int) Option {
	return func(p *Pipeline) {
		p.svmC, p.svmEpochs, p.svmComponents = c, epochs, components
	}
}

// WithTree limits the depth of the decision tree variant.
func WithTree(maxDepth int) Option {
	return func(p *Pipeline) {
		p.treeMaxDepth = maxDepth
	}
}

// WithLogistic configures the logistic regression variant.
func WithLogistic(c float64, maxIter int) Option {
	return func(p *Pipeline) {
		p.logisticC, p.logisticMaxIter = c, maxIter
	}
}

// WithReader replaces the review reader.
func WithReader(r *reviews.Reader) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.reader = r
		}
	}
}

// WithRunID sets the identifier attached to logs and the report.
func WithRunID(id string) Option {
	return func(p *Pipeline) {
		if id != "" {
			p.runID = id
		}
	}
}
