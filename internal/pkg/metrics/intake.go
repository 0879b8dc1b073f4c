// Package metrics defines the Prometheus collectors of the service. Every
// constructor registers on the Registerer it is given, so tests can use a
// private registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace is used when the configured namespace is empty.
const DefaultNamespace = "orderintake"

// IntakeMetrics counts intake requests by terminal state and records how long
// each one took.
type IntakeMetrics struct {
	outcomes *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewIntakeMetrics creates and registers the intake collectors.
func NewIntakeMetrics(reg prometheus.Registerer, namespace string) *IntakeMetrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	m := &IntakeMetrics{
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "intake",
				Name:      "requests_total",
				Help:      "Order intake requests by terminal state",
			},
			[]string{"state"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "intake",
				Name:      "duration_seconds",
				Help:      "Order intake duration in seconds by terminal state",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"state"},
		),
	}

	reg.MustRegister(m.outcomes, m.duration)
	return m
}

// RecordIntake implements commands.IntakeRecorder.
func (m *IntakeMetrics) RecordIntake(state string, elapsed time.Duration) {
	m.outcomes.WithLabelValues(state).Inc()
	m.duration.WithLabelValues(state).Observe(elapsed.Seconds())
}
