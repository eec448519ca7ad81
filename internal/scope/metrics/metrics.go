package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the scope engine.
type Metrics struct {
	// Resolutions by outcome ("ok", "invalid_input", "catalog_mismatch", ...)
	Resolutions *prometheus.CounterVec

	// Question counts produced by the filter
	FilteredQuestions prometheus.Histogram

	// Full refresh latency including store reads and the final write
	RefreshDuration prometheus.Histogram

	// Assessments flagged stale by the mutation path
	StaleMarked prometheus.Counter
}

// New creates a Metrics instance with all scope engine metrics registered.
func New() *Metrics {
	return &Metrics{
		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "recscope_scope_resolutions_total",
			Help: "Total scope resolutions by outcome",
		}, []string{"outcome"}),

		FilteredQuestions: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "recscope_scope_filtered_questions",
			Help:    "Number of questions selected per filtering run",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500},
		}),

		RefreshDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "recscope_scope_refresh_duration_seconds",
			Help:    "Duration of full scope refreshes including persistence",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		StaleMarked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "recscope_assessments_marked_stale_total",
			Help: "Total assessments flagged stale after attribute mutations",
		}),
	}
}

// IncrementResolution records a resolution outcome.
func (m *Metrics) IncrementResolution(outcome string) {
	if m != nil {
		m.Resolutions.WithLabelValues(outcome).Inc()
	}
}

// ObserveFilteredQuestions records the size of a filtered question set.
func (m *Metrics) ObserveFilteredQuestions(count int) {
	if m != nil {
		m.FilteredQuestions.Observe(float64(count))
	}
}

// ObserveRefreshDuration records the duration of a full refresh.
func (m *Metrics) ObserveRefreshDuration(d time.Duration) {
	if m != nil {
		m.RefreshDuration.Observe(d.Seconds())
	}
}

// IncrementStaleMarked records an assessment being flagged stale.
func (m *Metrics) IncrementStaleMarked() {
	if m != nil {
		m.StaleMarked.Inc()
	}
}
