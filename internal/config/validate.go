package config

import (
	"fmt"

	"github.com/okian/revsent/internal/domain/model"
	"github.com/okian/revsent/pkg/learn/svm"
)

// Validate checks value ranges and cross-field constraints.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("%w: input_path must not be empty", ErrInvalidConfig)
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return fmt.Errorf("%w: test_fraction must be in (0,1), got %v", ErrInvalidConfig, c.TestFraction)
	}
	switch c.LogFormat {
	case "text", "tint":
	default:
		return fmt.Errorf("%w: log_format must be text or tint, got %q", ErrInvalidConfig, c.LogFormat)
	}

	if len(c.Models) == 0 && !c.TuningEnabled {
		return fmt.Errorf("%w: no models enabled", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Models))
	for _, m := range c.Models {
		switch m {
		case ModelSVM, ModelTree, ModelBayes, ModelLogistic, ModelLexicon:
		default:
			return fmt.Errorf("%w: unknown model %q", ErrInvalidConfig, m)
		}
		if seen[m] {
			return fmt.Errorf("%w: model %q listed twice", ErrInvalidConfig, m)
		}
		seen[m] = true
	}

	if c.SVMC <= 0 || c.LogisticC <= 0 {
		return fmt.Errorf("%w: svm_c and logistic_c must be positive", ErrInvalidConfig)
	}
	if c.SVMEpochs <= 0 || c.SVMComponents <= 0 || c.LogisticMaxIter <= 0 {
		return fmt.Errorf("%w: svm_epochs, svm_components and logistic_max_iter must be positive", ErrInvalidConfig)
	}
	if c.TreeMaxDepth < 0 {
		return fmt.Errorf("%w: tree_max_depth must not be negative", ErrInvalidConfig)
	}

	if c.TuningEnabled {
		if c.TuningFolds < 2 {
			return fmt.Errorf("%w: tuning_folds must be at least 2", ErrInvalidConfig)
		}
		if len(c.TuningKernels) == 0 || len(c.TuningC) == 0 {
			return fmt.Errorf("%w: tuning grid is empty", ErrInvalidConfig)
		}
		for _, k := range c.TuningKernels {
			if _, err := svm.ParseKernel(k); err != nil {
				return fmt.Errorf("%w: tuning_kernels: %w", ErrInvalidConfig, err)
			}
		}
		for _, v := range c.TuningC {
			if v <= 0 {
				return fmt.Errorf("%w: tuning_c values must be positive, got %v", ErrInvalidConfig, v)
			}
		}
	}

	if len(c.Samples) != len(c.SampleLabels) {
		return fmt.Errorf("%w: %d samples but %d sample_labels", ErrInvalidConfig, len(c.Samples), len(c.SampleLabels))
	}
	for _, l := range c.SampleLabels {
		if _, err := model.ParseSentiment(l); err != nil {
			return fmt.Errorf("%w: sample_labels: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
