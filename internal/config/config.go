// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Keys are flat snake_case so that YAML files and REVSENT_ env vars match.
// - External errors are wrapped with ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"context"
	"runtime"
)

// Model names accepted in Models.
const (
	ModelSVM      = "svm"
	ModelTree     = "tree"
	ModelBayes    = "bayes"
	ModelLogistic = "logistic"
	ModelLexicon  = "lexicon"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or tint.
	LogFormat string `koanf:"log_format"`

	// InputPath points at the line-delimited JSON review file.
	InputPath string `koanf:"input_path"`

	// TestFraction is the share of records held out for evaluation.
	TestFraction float64 `koanf:"test_fraction"`

	// RandomSeed drives the split, the balancing shuffles and model sampling.
	RandomSeed int64 `koanf:"random_seed"`

	// SkipMalformed counts and skips bad input lines instead of failing.
	SkipMalformed bool `koanf:"skip_malformed"`

	// Dedupe drops repeated reviews with identical text and rating.
	Dedupe bool `koanf:"dedupe"`

	// StripMarkdown reduces review text to plain words before training.
	StripMarkdown bool `koanf:"strip_markdown"`

	// Models lists the classifier variants to train, in report order.
	Models []string `koanf:"models"`

	// SVMC, SVMEpochs and SVMComponents configure the margin classifier.
	SVMC          float64 `koanf:"svm_c"`
	SVMEpochs     int     `koanf:"svm_epochs"`
	SVMComponents int     `koanf:"svm_components"`

	// TreeMaxDepth limits the decision tree; 0 means unlimited.
	TreeMaxDepth int `koanf:"tree_max_depth"`

	// LogisticC and LogisticMaxIter configure logistic regression.
	LogisticC       float64 `koanf:"logistic_c"`
	LogisticMaxIter int     `koanf:"logistic_max_iter"`

	// Tuning* configure the grid search over the margin classifier.
	TuningEnabled bool      `koanf:"tuning_enabled"`
	TuningFolds   int       `koanf:"tuning_folds"`
	TuningWorkers int       `koanf:"tuning_workers"`
	TuningKernels []string  `koanf:"tuning_kernels"`
	TuningC       []float64 `koanf:"tuning_c"`

	// Samples are ad hoc sentences predicted after training. SampleLabels
	// holds the expected label of each sample.
	Samples      []string `koanf:"samples"`
	SampleLabels []string `koanf:"sample_labels"`

	// MetricsFile, when set, receives a Prometheus textfile export.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		InputPath:       "reviews.json",
		TestFraction:    0.33,
		RandomSeed:      42,
		Models:          []string{ModelSVM, ModelTree, ModelBayes, ModelLogistic},
		SVMC:            1,
		SVMEpochs:       20,
		SVMComponents:   256,
		LogisticC:       1,
		LogisticMaxIter: 100,
		TuningEnabled:   true,
		TuningFolds:     5,
		TuningWorkers:   runtime.NumCPU(),
		TuningKernels:   []string{"linear", "rbf"},
		TuningC:         []float64{1, 4, 8, 16, 32},
		Samples: []string{
			"the customer service was not that great given the fact that they served me raw chicken",
			"wow this restaurant is really favorable",
			"horrible waste of time",
		},
		SampleLabels: []string{"Negative", "Positive", "Negative"},
	}
}
