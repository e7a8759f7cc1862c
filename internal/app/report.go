package app

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/okian/revsent/internal/domain/model"
)

// VariantResult is the evaluation of one classifier.
type VariantResult struct {
	Name              string
	Accuracy          float64
	F1                []float64 // aligned with Positive, Negative
	FitDuration       time.Duration
	SamplePredictions []string
	SampleF1          []float64
	Warning           string // non-fatal fit problem, such as an early stop
}

// TuningResult summarizes the grid search.
type TuningResult struct {
	Best         string
	Params       map[string]string
	CVScore      float64
	TestAccuracy float64
	Candidates   int
	Folds        int
}

// Report is the outcome of one run.
type Report struct {
	RunID        string
	TestFraction float64
	Seed         int64

	Loaded     int
	Skipped    int
	Duplicates int

	TrainSize   int
	TestSize    int
	TrainCounts map[model.Sentiment]int
	TestCounts  map[model.Sentiment]int
	Vocabulary  int

	Variants []VariantResult
	Samples  []string
	Expected []string
	Tuning   *TuningResult
	Duration time.Duration
}

// Variant returns the result of the named variant.
func (r *Report) Variant(name string) (VariantResult, bool) {
	for _, v := range r.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return VariantResult{}, false
}

// Write renders the report as human readable status lines.
func (r *Report) Write(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("run %s\n", r.RunID)
	ew.printf("records: loaded=%d skipped=%d duplicates=%d\n", r.Loaded, r.Skipped, r.Duplicates)
	ew.printf("split: train=%d test=%d (test fraction %.2f, seed %d)\n", r.TrainSize, r.TestSize, r.TestFraction, r.Seed)
	ew.printf("balanced train: %s\n", formatCounts(r.TrainCounts))
	ew.printf("balanced test: %s\n", formatCounts(r.TestCounts))
	ew.printf("vocabulary: %d terms\n\n", r.Vocabulary)

	tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "model\taccuracy\tF1 Positive\tF1 Negative\tfit")
	for _, v := range r.Variants {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%s\n", v.Name, v.Accuracy, at(v.F1, 0), at(v.F1, 1), v.FitDuration.Round(time.Millisecond))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, v := range r.Variants {
		if v.Warning != "" {
			ew.printf("warning: %s: %s\n", v.Name, v.Warning)
		}
	}

	if len(r.Samples) > 0 {
		ew.printf("\nsample sentences (expected %s):\n", strings.Join(r.Expected, ", "))
		for i, s := range r.Samples {
			ew.printf("  %d. %s\n", i+1, s)
		}
		for _, v := range r.Variants {
			ew.printf("  %s predicted [%s] F1 Positive=%.2f Negative=%.2f\n",
				v.Name, strings.Join(v.SamplePredictions, ", "), at(v.SampleF1, 0), at(v.SampleF1, 1))
		}
	}

	if t := r.Tuning; t != nil {
		ew.printf("\ntuned svm accuracy: %.4f (best %s, cv accuracy %.4f over %d candidates x %d folds)\n",
			t.TestAccuracy, t.Best, t.CVScore, t.Candidates, t.Folds)
	}
	ew.printf("\nfinished in %s\n", r.Duration.Round(time.Millisecond))
	return ew.err
}

func formatCounts(counts map[model.Sentiment]int) string {
	labels := make([]model.Sentiment, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%d", l, counts[l]))
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " ")
}

func at(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

// errWriter keeps the first write error so the report can be written without
// checking every line.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(e, format, args...)
}
