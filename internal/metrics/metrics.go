// Package metrics exposes Prometheus instrumentation for enrollment submissions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics provides observability for the submission pipeline.
type Metrics struct {
	// Submission outcomes by result and error kind
	Outcomes *prometheus.CounterVec

	// Remote write latency by result ("ok" or "error")
	RemoteLatency *prometheus.HistogramVec

	// Local queue appends by result ("ok" or "error")
	LocalAppends *prometheus.CounterVec
}

// New creates the pipeline metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "enrollment_submissions_total",
			Help: "Total enrollment submissions by outcome and error kind",
		}, []string{"outcome", "kind"}), // outcome: "remote", "local_fallback", "validation", "system"

		RemoteLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "enrollment_remote_write_duration_seconds",
			Help:    "Duration of remote write attempts",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"result"}),

		LocalAppends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "enrollment_local_appends_total",
			Help: "Total appends to the local fallback queue by result",
		}, []string{"result"}),
	}
	reg.MustRegister(m.Outcomes, m.RemoteLatency, m.LocalAppends)
	return m
}

// IncrementOutcome records one submission outcome.
func (m *Metrics) IncrementOutcome(outcome, kind string) {
	if m != nil {
		m.Outcomes.WithLabelValues(outcome, kind).Inc()
	}
}

// ObserveRemoteWrite records the duration of a remote write attempt.
func (m *Metrics) ObserveRemoteWrite(d time.Duration, err error) {
	if m != nil {
		m.RemoteLatency.WithLabelValues(result(err)).Observe(d.Seconds())
	}
}

// IncrementLocalAppend records one append to the local queue.
func (m *Metrics) IncrementLocalAppend(err error) {
	if m != nil {
		m.LocalAppends.WithLabelValues(result(err)).Inc()
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
