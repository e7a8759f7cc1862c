package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/revsent/internal/adapters/reviews"
	"github.com/okian/revsent/internal/app"
	"github.com/okian/revsent/internal/config"
	"github.com/okian/revsent/internal/domain/corpus"
	"github.com/okian/revsent/internal/domain/model"
	"github.com/okian/revsent/internal/reviewgen"
	"github.com/okian/revsent/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

var samples = []string{
	"the customer service was not that great given the fact that they served me raw chicken",
	"wow this restaurant is really favorable",
	"horrible waste of time",
}

// writeReviews generates a polar corpus without neutral ratings.
func writeReviews(t *testing.T, n int, seed int64) string {
	t.Helper()
	cfg := reviewgen.DefaultConfig()
	cfg.NumReviews = n
	cfg.Seed = seed
	cfg.NoiseRate = 0
	cfg.RatingWeights = [5]float64{0.25, 0.25, 0, 0.25, 0.25}
	out, err := reviewgen.Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	path := filepath.Join(t.TempDir(), "reviews.json")
	if err := reviewgen.WriteFile(path, out); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func smallPipeline(path string, extra ...app.Option) *app.Pipeline {
	opts := []app.Option{
		app.WithInputPath(path),
		app.WithRunID("test-run"),
		app.WithModels(config.ModelSVM, config.ModelTree, config.ModelBayes, config.ModelLogistic, config.ModelLexicon),
		app.WithSVM(1, 10, 64),
		app.WithSamples(samples, []string{"negative", "Positive", "Negative"}),
		app.WithTuning(app.TuningSettings{
			Enabled: true,
			Folds:   3,
			Workers: 2,
			Kernels: []string{"linear", "rbf"},
			C:       []float64{1, 4},
		}),
	}
	return app.New(append(opts, extra...)...)
}

func TestPipeline_Run(t *testing.T) {
	Convey("Given a generated review file", t, func() {
		ctx := context.Background()
		path := writeReviews(t, 600, 3)

		Convey("When the pipeline runs every variant", func() {
			report, err := smallPipeline(path).Run(ctx)
			So(err, ShouldBeNil)

			Convey("Then every record is loaded and split", func() {
				So(report.RunID, ShouldEqual, "test-run")
				So(report.Loaded, ShouldEqual, 600)
				So(report.TrainSize+report.TestSize, ShouldEqual, 600)
				So(report.TestSize, ShouldBeBetweenOrEqual, 198, 199)
				So(report.Vocabulary, ShouldBeGreaterThan, 50)
			})

			Convey("And both corpora are balanced", func() {
				So(report.TrainCounts[model.Negative], ShouldEqual, report.TrainCounts[model.Positive])
				So(report.TestCounts[model.Neutral], ShouldEqual, 0)
			})

			Convey("And learned variants separate the polar reviews", func() {
				So(report.Variants, ShouldHaveLength, 5)
				for _, name := range []string{config.ModelSVM, config.ModelTree, config.ModelBayes, config.ModelLogistic} {
					v, ok := report.Variant(name)
					So(ok, ShouldBeTrue)
					So(v.Accuracy, ShouldBeGreaterThanOrEqualTo, 0.85)
					So(v.F1, ShouldHaveLength, 2)
					So(v.SamplePredictions, ShouldHaveLength, 3)
				}
			})

			Convey("And the lexicon baseline is scored on the same test texts", func() {
				v, ok := report.Variant(config.ModelLexicon)
				So(ok, ShouldBeTrue)
				So(v.Accuracy, ShouldBeBetweenOrEqual, 0.0, 1.0)
				So(v.SamplePredictions, ShouldHaveLength, 3)
			})

			Convey("And the grid search reports its winner", func() {
				So(report.Tuning, ShouldNotBeNil)
				So(report.Tuning.Candidates, ShouldEqual, 4)
				So(report.Tuning.Best, ShouldStartWith, "svm(")
				So(report.Tuning.CVScore, ShouldBeBetweenOrEqual, 0.0, 1.0)
				So(report.Tuning.TestAccuracy, ShouldBeGreaterThanOrEqualTo, 0.85)
			})

			Convey("And the report renders one line per variant", func() {
				var buf bytes.Buffer
				So(report.Write(&buf), ShouldBeNil)
				out := buf.String()
				for _, v := range report.Variants {
					So(out, ShouldContainSubstring, v.Name+" ")
				}
				So(out, ShouldContainSubstring, "tuned svm accuracy")
				So(out, ShouldContainSubstring, "expected Negative, Positive, Negative")
			})
		})

		Convey("When the pipeline runs twice with the same seed", func() {
			a, err := smallPipeline(path, app.WithModels(config.ModelSVM)).Run(ctx)
			So(err, ShouldBeNil)
			b, err := smallPipeline(path, app.WithModels(config.ModelSVM)).Run(ctx)
			So(err, ShouldBeNil)

			Convey("Then the results are identical", func() {
				So(a.Variants[0].Accuracy, ShouldEqual, b.Variants[0].Accuracy)
				So(a.TrainCounts, ShouldResemble, b.TrainCounts)
				So(a.Tuning.Best, ShouldEqual, b.Tuning.Best)
			})
		})
	})
}

func TestPipeline_Errors(t *testing.T) {
	ctx := context.Background()

	Convey("Given a missing input file", t, func() {
		p := app.New(app.WithInputPath(filepath.Join(t.TempDir(), "missing.json")))

		Convey("Then an input error is returned", func() {
			_, err := p.Run(ctx)
			var inErr *app.InputError
			So(errors.As(err, &inErr), ShouldBeTrue)
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})
	})

	Convey("Given a file with a malformed line", t, func() {
		path := filepath.Join(t.TempDir(), "bad.json")
		So(os.WriteFile(path, []byte(`{"reviewText": "ok", "overall": 5}`+"\n{oops\n"), 0o600), ShouldBeNil)

		Convey("When reading fails fast", func() {
			_, err := app.New(app.WithInputPath(path)).Run(ctx)

			Convey("Then the input error wraps the malformed record", func() {
				var inErr *app.InputError
				So(errors.As(err, &inErr), ShouldBeTrue)
				So(errors.Is(err, reviews.ErrMalformedRecord), ShouldBeTrue)
			})
		})
	})

	Convey("Given only positive reviews", t, func() {
		path := filepath.Join(t.TempDir(), "positive.json")
		So(os.WriteFile(path, []byte(
			`{"reviewText": "great", "overall": 5}`+"\n"+
				`{"reviewText": "lovely", "overall": 4}`+"\n"+
				`{"reviewText": "superb", "overall": 5}`+"\n"), 0o600), ShouldBeNil)

		Convey("Then there is nothing to train on", func() {
			_, err := app.New(app.WithInputPath(path)).Run(ctx)
			So(errors.Is(err, app.ErrNoTrainingData), ShouldBeTrue)

			var mErr *app.ModelError
			So(errors.As(err, &mErr), ShouldBeTrue)
			So(mErr.Model, ShouldEqual, "corpus")
			So(mErr.Stage, ShouldEqual, "balance")
		})
	})

	Convey("Given a held-out fraction outside (0,1)", t, func() {
		path := writeReviews(t, 60, 9)

		Convey("Then the split fails as a model error", func() {
			_, err := app.New(app.WithInputPath(path), app.WithTestFraction(1.5)).Run(ctx)
			So(errors.Is(err, corpus.ErrInvalidFraction), ShouldBeTrue)

			var mErr *app.ModelError
			So(errors.As(err, &mErr), ShouldBeTrue)
			So(mErr.Stage, ShouldEqual, "split")

			var inErr *app.InputError
			So(errors.As(err, &inErr), ShouldBeFalse)
		})
	})

	Convey("Given an iteration budget too small for the logistic fit", t, func() {
		path := writeReviews(t, 200, 13)
		report, err := app.New(
			app.WithInputPath(path),
			app.WithModels(config.ModelLogistic),
			app.WithLogistic(1, 1),
		).Run(ctx)

		Convey("Then the run succeeds and surfaces the early stop", func() {
			So(err, ShouldBeNil)
			v, ok := report.Variant(config.ModelLogistic)
			So(ok, ShouldBeTrue)
			So(v.Warning, ShouldContainSubstring, "stopped early")

			var buf bytes.Buffer
			So(report.Write(&buf), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "warning: logistic: ")
		})
	})

	Convey("Given an unknown model name", t, func() {
		path := writeReviews(t, 60, 5)

		Convey("Then a model error is returned", func() {
			_, err := app.New(app.WithInputPath(path), app.WithModels("forest")).Run(ctx)
			var mErr *app.ModelError
			So(errors.As(err, &mErr), ShouldBeTrue)
			So(mErr.Model, ShouldEqual, "forest")
		})
	})

	Convey("Given a cancelled context", t, func() {
		path := writeReviews(t, 200, 7)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		Convey("Then the run stops with the cancellation", func() {
			_, err := app.New(app.WithInputPath(path), app.WithModels(config.ModelSVM)).Run(cctx)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestOptionsFromConfig(t *testing.T) {
	Convey("Given a loaded config", t, func() {
		path := writeReviews(t, 300, 11)
		cfg := config.New(context.Background())
		cfg.InputPath = path
		cfg.Models = []string{config.ModelLogistic}
		cfg.TuningEnabled = false
		cfg.Dedupe = true
		cfg.StripMarkdown = true

		Convey("Then the pipeline built from it runs", func() {
			report, err := app.New(app.OptionsFromConfig(cfg, logger.Discard())...).Run(context.Background())
			So(err, ShouldBeNil)
			So(report.Variants, ShouldHaveLength, 1)
			So(report.Tuning, ShouldBeNil)
			So(report.Loaded+report.Duplicates, ShouldEqual, 300)
			So(report.Samples, ShouldResemble, cfg.Samples)
		})
	})
}
