package validation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/refdata/pkg/validator"
)

// Outcomes recorded by Metrics.
const (
	OutcomePassed   = "passed"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics provides observability for the validation stage.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Validations by command and outcome
	Validations *prometheus.CounterVec

	// Individual failures by command and source
	Failures *prometheus.CounterVec

	// Content scans that failed internally and were treated as clean
	ScanErrors *prometheus.CounterVec

	// Duration of the whole stage
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the stage metrics with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "refdata_validation_total",
			Help: "Total commands validated by outcome",
		}, []string{"command", "outcome"}),

		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "refdata_validation_failures_total",
			Help: "Total validation failures by source",
		}, []string{"command", "source"}),

		ScanErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "refdata_validation_scan_errors_total",
			Help: "Content scans that failed internally and reported no failures",
		}, []string{"command"}),

		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "refdata_validation_duration_seconds",
			Help:    "Duration of command validation",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"command"}),
	}
}

// ObserveResult records the outcome, per-source failure counts and duration.
func (m *Metrics) ObserveResult(cmd, outcome string, errs validator.ValidationErrors, d time.Duration) {
	if m == nil {
		return
	}
	m.Validations.WithLabelValues(cmd, outcome).Inc()
	m.Duration.WithLabelValues(cmd).Observe(d.Seconds())
	for _, err := range errs {
		m.Failures.WithLabelValues(cmd, string(err.Source)).Inc()
	}
}

// IncScanError records a content scan that failed internally.
func (m *Metrics) IncScanError(cmd string) {
	if m != nil {
		m.ScanErrors.WithLabelValues(cmd).Inc()
	}
}
