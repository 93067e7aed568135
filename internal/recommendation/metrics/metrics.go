package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the recommendation module.
type Metrics struct {
	// Checklist items emitted by status and category
	ItemsEmitted *prometheus.CounterVec

	// Evaluations by loan purpose
	Evaluations *prometheus.CounterVec

	// Coverage shortfall in months observed per evaluation
	CoverageGap prometheus.Histogram

	// Full evaluation latency including persistence fan-out
	EvaluateLatency prometheus.Histogram
}

// New creates a Metrics instance with all recommendation metrics registered.
func New() *Metrics {
	return &Metrics{
		ItemsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docready_recommendation_items_total",
			Help: "Total checklist items emitted by status and category",
		}, []string{"status", "category"}),

		Evaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docready_recommendation_evaluations_total",
			Help: "Total checklist evaluations by loan purpose",
		}, []string{"purpose"}),

		CoverageGap: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "docready_recommendation_coverage_gap_months",
			Help:    "Employment coverage shortfall in months per evaluation",
			Buckets: []float64{0, 1, 3, 6, 12, 18, 24},
		}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "docready_recommendation_evaluate_duration_seconds",
			Help:    "Duration of full checklist evaluation including persistence",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementItem records one emitted checklist item.
func (m *Metrics) IncrementItem(status, category string) {
	if m != nil {
		m.ItemsEmitted.WithLabelValues(status, category).Inc()
	}
}

// IncrementEvaluation records one evaluation for the given purpose.
func (m *Metrics) IncrementEvaluation(purpose string) {
	if m != nil {
		m.Evaluations.WithLabelValues(purpose).Inc()
	}
}

// ObserveCoverageGap records the employment shortfall of one evaluation.
func (m *Metrics) ObserveCoverageGap(months int) {
	if m != nil {
		m.CoverageGap.Observe(float64(months))
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
