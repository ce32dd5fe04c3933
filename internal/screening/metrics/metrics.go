package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the screening module.
type Metrics struct {
	// Per-article extraction latencies
	ExtractionLatency prometheus.Histogram

	// Per-article linkage verdicts
	LinkageOutcome *prometheus.CounterVec

	// Case-level final decisions
	FinalDecision *prometheus.CounterVec

	// Recoverable extraction failures (article marked inconclusive)
	ExtractionFailures prometheus.Counter

	// Overall case check latency
	CheckLatency prometheus.Histogram
}

// New creates a new Metrics instance with all screening metrics registered.
func New() *Metrics {
	return &Metrics{
		ExtractionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "medialens_extraction_duration_seconds",
			Help:    "Duration of per-article anchor extraction calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),

		LinkageOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "medialens_linkage_outcomes_total",
			Help: "Total per-article linkage verdicts by decision",
		}, []string{"decision"}), // decision: "yes", "maybe", "no"

		FinalDecision: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "medialens_case_decisions_total",
			Help: "Total case-level decisions by outcome",
		}, []string{"decision"}), // decision: "clear", "escalate", "decline"

		ExtractionFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "medialens_extraction_failures_total",
			Help: "Total per-article extraction failures handled as inconclusive",
		}),

		CheckLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "medialens_check_duration_seconds",
			Help:    "Duration of full compliance check including extraction",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

// ObserveExtractionLatency records the duration of one extraction call.
func (m *Metrics) ObserveExtractionLatency(d time.Duration) {
	if m != nil {
		m.ExtractionLatency.Observe(d.Seconds())
	}
}

// IncrementLinkage records a per-article linkage verdict.
func (m *Metrics) IncrementLinkage(decision string) {
	if m != nil {
		m.LinkageOutcome.WithLabelValues(decision).Inc()
	}
}

// IncrementDecision records a case-level final decision.
func (m *Metrics) IncrementDecision(decision string) {
	if m != nil {
		m.FinalDecision.WithLabelValues(decision).Inc()
	}
}

// IncrementExtractionFailure records a recoverable extraction failure.
func (m *Metrics) IncrementExtractionFailure() {
	if m != nil {
		m.ExtractionFailures.Inc()
	}
}

// ObserveCheckLatency records the total case check duration.
func (m *Metrics) ObserveCheckLatency(d time.Duration) {
	if m != nil {
		m.CheckLatency.Observe(d.Seconds())
	}
}
