// Package metrics provides Prometheus metrics for the sentiment pipeline.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics of a pipeline run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Input
	recordsLoaded    prometheus.Counter
	recordsSkipped   prometheus.Counter
	recordsDuplicate prometheus.Counter

	// Corpus
	corpusSize     *prometheus.GaugeVec
	vocabularySize prometheus.Gauge

	// Models
	fitDuration *prometheus.HistogramVec
	accuracy    *prometheus.GaugeVec
	f1          *prometheus.GaugeVec

	// Tuning
	tuningCandidates prometheus.Gauge
	tuningBestScore  prometheus.Gauge

	// Run
	runDuration      prometheus.Gauge
	runLastTimestamp prometheus.Gauge

	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "revsent",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.ExponentialBuckets(0.005, 2, 16),
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.recordsLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_loaded_total",
		Help:        "Total number of review records read from the input",
		ConstLabels: labels,
	})

	m.recordsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_skipped_total",
		Help:        "Total number of malformed input lines skipped",
		ConstLabels: labels,
	})

	m.recordsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_duplicate_total",
		Help:        "Total number of repeated reviews dropped",
		ConstLabels: labels,
	})

	m.corpusSize = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "corpus_size",
			Help:        "Number of records per corpus branch and sentiment label",
			ConstLabels: labels,
		},
		[]string{"branch", "label"},
	)

	m.vocabularySize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "vocabulary_size",
		Help:        "Number of terms learned by the vectorizer",
		ConstLabels: labels,
	})

	m.fitDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "fit_duration_seconds",
			Help:        "Time spent fitting each model",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"model"},
	)

	m.accuracy = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "accuracy",
			Help:        "Test accuracy per model",
			ConstLabels: labels,
		},
		[]string{"model"},
	)

	m.f1 = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "f1",
			Help:        "Test F1 score per model and label",
			ConstLabels: labels,
		},
		[]string{"model", "label"},
	)

	m.tuningCandidates = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "tuning_candidates",
		Help:        "Number of parameter combinations evaluated by the grid search",
		ConstLabels: labels,
	})

	m.tuningBestScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "tuning_best_score",
		Help:        "Mean cross-validation accuracy of the best grid search candidate",
		ConstLabels: labels,
	})

	m.runDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_duration_seconds",
		Help:        "Wall time of the last pipeline run",
		ConstLabels: labels,
	})

	m.runLastTimestamp = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_timestamp_seconds",
		Help:        "Unix time the last pipeline run finished",
		ConstLabels: labels,
	})

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_total",
			Help:        "Total number of errors by component and error type",
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)
}

// RecordRecordsLoaded adds n to the loaded records counter.
func RecordRecordsLoaded(n int) {
	globalManager.recordsLoaded.Add(float64(n))
}

// RecordRecordsSkipped adds n to the skipped lines counter.
func RecordRecordsSkipped(n int) {
	globalManager.recordsSkipped.Add(float64(n))
}

// RecordRecordsDuplicate adds n to the duplicate records counter.
func RecordRecordsDuplicate(n int) {
	globalManager.recordsDuplicate.Add(float64(n))
}

// UpdateCorpusSize sets the size of one label within a corpus branch.
func UpdateCorpusSize(branch, label string, n int) {
	globalManager.corpusSize.WithLabelValues(branch, label).Set(float64(n))
}

// UpdateVocabularySize sets the vectorizer vocabulary size.
func UpdateVocabularySize(n int) {
	globalManager.vocabularySize.Set(float64(n))
}

// RecordFitDuration observes how long a model took to fit.
func RecordFitDuration(model string, d time.Duration) {
	globalManager.fitDuration.WithLabelValues(model).Observe(d.Seconds())
}

// UpdateAccuracy sets the test accuracy of a model.
func UpdateAccuracy(model string, acc float64) {
	globalManager.accuracy.WithLabelValues(model).Set(acc)
}

// UpdateF1 sets the F1 score of a model for one label.
func UpdateF1(model, label string, f1 float64) {
	globalManager.f1.WithLabelValues(model, label).Set(f1)
}

// UpdateTuning records the size and outcome of a grid search.
func UpdateTuning(candidates int, bestScore float64) {
	globalManager.tuningCandidates.Set(float64(candidates))
	globalManager.tuningBestScore.Set(bestScore)
}

// RecordRun records the duration and completion time of a run.
func RecordRun(d time.Duration, finished time.Time) {
	globalManager.runDuration.Set(d.Seconds())
	globalManager.runLastTimestamp.Set(float64(finished.Unix()))
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes every registered metric to path in the text
// exposition format, for the node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
