package app

import (
	"github.com/okian/revsent/internal/adapters/reviews"
	"github.com/okian/revsent/internal/config"
	"github.com/okian/revsent/internal/domain/dedupe"
	"github.com/okian/revsent/pkg/logger"
)

// OptionsFromConfig translates a loaded Config into pipeline options.
func OptionsFromConfig(cfg *config.Config, log logger.Logger) []Option {
	readerOpts := []reviews.Option{
		reviews.WithSkipMalformed(cfg.SkipMalformed),
		reviews.WithLogger(log),
	}
	if cfg.StripMarkdown {
		readerOpts = append(readerOpts, reviews.WithNormalizer(reviews.StripMarkdown))
	}
	if cfg.Dedupe {
		readerOpts = append(readerOpts, reviews.WithDeduper(dedupe.NewInMemoryDeduper()))
	}

	return []Option{
		WithLogger(log),
		WithReader(reviews.NewReader(readerOpts...)),
		WithInputPath(cfg.InputPath),
		WithTestFraction(cfg.TestFraction),
		WithRandomSeed(cfg.RandomSeed),
		WithModels(cfg.Models...),
		WithSamples(cfg.Samples, cfg.SampleLabels),
		WithSVM(cfg.SVMC, cfg.SVMEpochs, cfg.SVMComponents),
		WithTree(cfg.TreeMaxDepth),
		WithLogistic(cfg.LogisticC, cfg.LogisticMaxIter),
		WithTuning(TuningSettings{
			Enabled: cfg.TuningEnabled,
			Folds:   cfg.TuningFolds,
			Workers: cfg.TuningWorkers,
			Kernels: cfg.TuningKernels,
			C:       cfg.TuningC,
		}),
	}
}
