package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsim"

// Comparison Prometheus metrics.
var (
	ComparisonsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Total number of document comparisons",
		},
		[]string{"status"}, // "ok" or the error kind
	)

	ComparisonDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "comparison_duration_seconds",
			Help:      "Document comparison duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	SimilarityScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "similarity_score",
			Help:      "Distribution of similarity scores",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)

	ExtractionErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_errors_total",
			Help:      "Document extraction failures",
		},
		[]string{"format", "kind"},
	)

	ResultStoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_store_errors_total",
			Help:      "Result store failures",
		},
		[]string{"op"},
	)
)

var registerComparisonOnce sync.Once

// RegisterComparisonMetrics registers Prometheus comparison metrics on the default
// registry. Repeated calls are no-ops.
func RegisterComparisonMetrics() {
	registerComparisonOnce.Do(func() {
		prometheus.MustRegister(ComparisonsTotal)
		prometheus.MustRegister(ComparisonDuration)
		prometheus.MustRegister(SimilarityScore)
		prometheus.MustRegister(ExtractionErrorsTotal)
		prometheus.MustRegister(ResultStoreErrorsTotal)
	})
}
