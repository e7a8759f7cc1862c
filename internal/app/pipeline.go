// Package app drives one sentiment classification run: read reviews, split
// and balance them, vectorize, then fit and score every enabled variant.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/okian/revsent/internal/adapters/reviews"
	"github.com/okian/revsent/internal/config"
	"github.com/okian/revsent/internal/domain/corpus"
	"github.com/okian/revsent/internal/domain/model"
	"github.com/okian/revsent/pkg/learn"
	"github.com/okian/revsent/pkg/learn/evaluate"
	"github.com/okian/revsent/pkg/learn/search"
	"github.com/okian/revsent/pkg/learn/svm"
	"github.com/okian/revsent/pkg/learn/text"
	"github.com/okian/revsent/pkg/logger"
	"github.com/okian/revsent/pkg/metrics"
)

// reportLabels are the classes F1 is reported for, in report order.
var reportLabels = []string{model.Positive.String(), model.Negative.String()} //nolint:gochecknoglobals // fixed order

// Pipeline holds the settings of a run. It is not safe for concurrent Run
// calls.
type Pipeline struct {
	logger logger.Logger
	reader *reviews.Reader
	runID  string

	inputPath    string
	testFraction float64
	seed         int64
	models       []string
	samples      []string
	sampleLabels []string

	svmC            float64
	svmEpochs       int
	svmComponents   int
	treeMaxDepth    int
	logisticC       float64
	logisticMaxIter int

	tuning TuningSettings
}

// New constructs a Pipeline with default configuration.
func New(opts ...Option) *Pipeline {
	defaults := config.New(context.Background())
	p := &Pipeline{
		inputPath:       defaults.InputPath,
		testFraction:    defaults.TestFraction,
		seed:            defaults.RandomSeed,
		models:          defaults.Models,
		svmC:            defaults.SVMC,
		svmEpochs:       defaults.SVMEpochs,
		svmComponents:   defaults.SVMComponents,
		logisticC:       defaults.LogisticC,
		logisticMaxIter: defaults.LogisticMaxIter,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("pipeline")
	}
	if p.reader == nil {
		p.reader = reviews.NewReader(reviews.WithLogger(p.logger))
	}
	return p
}

// Run executes the pipeline once.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	started := time.Now()
	runID := p.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	log := p.logger.With(logger.String("run_id", runID))
	report := &Report{
		RunID:        runID,
		TestFraction: p.testFraction,
		Seed:         p.seed,
		Samples:      p.samples,
		Expected:     p.sampleLabels,
	}

	records, stats, err := p.reader.ReadFile(ctx, p.inputPath)
	if err != nil {
		metrics.RecordErrorByComponent("reader", errorType(err))
		log.Error(ctx, "failed to read reviews", logger.String("path", p.inputPath), logger.Error(err))
		return nil, &InputError{Path: p.inputPath, Err: err}
	}
	metrics.RecordRecordsLoaded(stats.Loaded)
	metrics.RecordRecordsSkipped(stats.Skipped)
	metrics.RecordRecordsDuplicate(stats.Duplicates)
	report.Loaded, report.Skipped, report.Duplicates = stats.Loaded, stats.Skipped, stats.Duplicates

	trainRecords, testRecords, err := corpus.Split(records, p.testFraction, p.seed)
	if err != nil {
		metrics.RecordErrorByComponent("corpus", "invalid_split")
		return nil, &ModelError{Model: "corpus", Stage: "split", Err: err}
	}
	report.TrainSize, report.TestSize = len(trainRecords), len(testRecords)

	train := corpus.New(trainRecords)
	train.Balance(corpus.WithSeed(p.seed))
	test := corpus.New(testRecords)
	test.Balance(corpus.WithSeed(p.seed + 1))
	report.TrainCounts, report.TestCounts = train.Counts(), test.Counts()
	recordCorpus("train", report.TrainCounts)
	recordCorpus("test", report.TestCounts)
	log.Info(ctx, "corpus balanced",
		logger.Int("train", train.Len()),
		logger.Int("test", test.Len()),
	)

	if train.Count(model.Negative) == 0 || train.Count(model.Positive) == 0 {
		metrics.RecordErrorByComponent("corpus", "no_training_data")
		return nil, &ModelError{
			Model: "corpus",
			Stage: "balance",
			Err:   fmt.Errorf("%w: %d training records before balancing", ErrNoTrainingData, len(trainRecords)),
		}
	}
	if test.Len() == 0 {
		log.Warn(ctx, "test corpus is empty after balancing; accuracies will be zero")
	}

	vectorizer := text.NewTfidfVectorizer()
	xTrain, err := vectorizer.FitTransform(train.Texts())
	if err != nil {
		metrics.RecordErrorByComponent("vectorizer", errorType(err))
		return nil, &ModelError{Model: "tfidf", Stage: "fit", Err: err}
	}
	xTest, err := vectorizer.Transform(test.Texts())
	if err != nil {
		return nil, &ModelError{Model: "tfidf", Stage: "transform", Err: err}
	}
	xSamples, err := vectorizer.Transform(p.samples)
	if err != nil {
		return nil, &ModelError{Model: "tfidf", Stage: "transform", Err: err}
	}
	report.Vocabulary = len(vectorizer.Vocabulary())
	metrics.UpdateVocabularySize(report.Vocabulary)

	yTrain := model.Strings(train.Labels())
	yTest := model.Strings(test.Labels())
	d := dataset{
		xTrain: xTrain, yTrain: yTrain, textsTrain: train.Texts(),
		xTest: xTest, yTest: yTest, textsTest: test.Texts(),
		xSamples: xSamples,
	}

	for _, name := range p.models {
		res, err := p.evaluate(ctx, log, name, d)
		if err != nil {
			metrics.RecordErrorByComponent(name, errorType(err))
			return nil, err
		}
		report.Variants = append(report.Variants, res)
	}

	if p.tuning.Enabled {
		tuned, err := p.tune(ctx, log, d)
		if err != nil {
			metrics.RecordErrorByComponent("tuning", errorType(err))
			return nil, err
		}
		report.Tuning = tuned
	}

	report.Duration = time.Since(started)
	metrics.RecordRun(report.Duration, time.Now())
	log.Info(ctx, "run finished", logger.Duration("duration", report.Duration))
	return report, nil
}

type dataset struct {
	xTrain, xTest, xSamples *learn.Matrix
	yTrain, yTest           []string
	textsTrain, textsTest   []string
}

func (p *Pipeline) evaluate(ctx context.Context, log logger.Logger, name string, d dataset) (VariantResult, error) {
	v, err := p.newVariant(name)
	if err != nil {
		return VariantResult{}, &ModelError{Model: name, Stage: "build", Err: err}
	}

	start := time.Now()
	if err := v.Fit(ctx, d.xTrain, d.textsTrain, d.yTrain); err != nil {
		return VariantResult{}, &ModelError{Model: name, Stage: "fit", Err: err}
	}
	fitDuration := time.Since(start)
	metrics.RecordFitDuration(name, fitDuration)

	pred, err := v.Predict(d.xTest, d.textsTest)
	if err != nil {
		return VariantResult{}, &ModelError{Model: name, Stage: "predict", Err: err}
	}
	res := VariantResult{Name: name, FitDuration: fitDuration}
	if mv, ok := v.(*matrixVariant); ok {
		if werr := mv.fitWarning(); werr != nil {
			res.Warning = werr.Error()
			metrics.RecordErrorByComponent(name, "not_converged")
			log.Warn(ctx, "fit did not converge", logger.String("model", name), logger.Error(werr))
		}
	}
	if res.Accuracy, err = evaluate.Accuracy(d.yTest, pred); err != nil {
		return VariantResult{}, &ModelError{Model: name, Stage: "score", Err: err}
	}
	if res.F1, err = evaluate.F1(d.yTest, pred, reportLabels); err != nil {
		return VariantResult{}, &ModelError{Model: name, Stage: "score", Err: err}
	}

	if len(p.samples) > 0 {
		if res.SamplePredictions, err = v.Predict(d.xSamples, p.samples); err != nil {
			return VariantResult{}, &ModelError{Model: name, Stage: "predict", Err: err}
		}
		if res.SampleF1, err = evaluate.F1(p.sampleLabels, res.SamplePredictions, reportLabels); err != nil {
			return VariantResult{}, &ModelError{Model: name, Stage: "score", Err: err}
		}
	}

	metrics.UpdateAccuracy(name, res.Accuracy)
	for i, label := range reportLabels {
		metrics.UpdateF1(name, label, res.F1[i])
	}
	log.Info(ctx, "variant evaluated",
		logger.String("model", name),
		logger.Float64("accuracy", res.Accuracy),
		logger.Duration("fit", fitDuration),
	)
	return res, nil
}

func (p *Pipeline) tune(ctx context.Context, log logger.Logger, d dataset) (*TuningResult, error) {
	kernels := make([]svm.Kernel, 0, len(p.tuning.Kernels))
	for _, k := range p.tuning.Kernels {
		kernel, err := svm.ParseKernel(k)
		if err != nil {
			return nil, &ModelError{Model: "grid-search", Stage: "build", Err: err}
		}
		kernels = append(kernels, kernel)
	}
	candidates := search.SVMGrid(kernels, p.tuning.C,
		svm.WithEpochs(p.svmEpochs),
		svm.WithComponents(p.svmComponents),
		svm.WithSeed(p.seed),
	)

	folds := p.tuning.Folds
	if folds == 0 {
		folds = 5
	}
	gs := search.New(candidates, search.WithFolds(folds), search.WithWorkers(p.tuning.Workers))

	log.Info(ctx, "grid search started", logger.Int("candidates", len(candidates)), logger.Int("folds", folds))
	start := time.Now()
	if err := gs.Fit(ctx, d.xTrain, d.yTrain); err != nil {
		return nil, &ModelError{Model: "grid-search", Stage: "fit", Err: err}
	}
	metrics.RecordFitDuration("grid-search", time.Since(start))

	acc, err := gs.Score(d.xTest, d.yTest)
	if err != nil {
		return nil, &ModelError{Model: "grid-search", Stage: "score", Err: err}
	}
	best, _ := gs.BestCandidate()
	res := &TuningResult{
		Best:         best.Name,
		Params:       best.Params,
		CVScore:      gs.BestScore(),
		TestAccuracy: acc,
		Candidates:   len(candidates),
		Folds:        folds,
	}
	metrics.UpdateTuning(res.Candidates, res.CVScore)
	metrics.UpdateAccuracy("grid-search", acc)
	log.Info(ctx, "grid search finished",
		logger.String("best", res.Best),
		logger.Float64("cv_score", res.CVScore),
		logger.Float64("accuracy", acc),
	)
	return res, nil
}

func recordCorpus(branch string, counts map[model.Sentiment]int) {
	for _, s := range []model.Sentiment{model.Negative, model.Neutral, model.Positive} {
		metrics.UpdateCorpusSize(branch, s.String(), counts[s])
	}
}

// errorType buckets an error for the errors_total metric.
func errorType(err error) string {
	var lerr *reviews.LineError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.As(err, &lerr):
		return "malformed"
	case errors.Is(err, text.ErrEmptyVocabulary):
		return "empty_vocabulary"
	case errors.Is(err, learn.ErrSingleClass):
		return "single_class"
	default:
		return "other"
	}
}
