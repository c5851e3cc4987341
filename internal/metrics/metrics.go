/*
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics exposes admission outcomes to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics provides observability for the admission engine. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	// Admission outcomes by record kind and outcome
	Admissions *prometheus.CounterVec

	// Rejections by rule (geofence, season, quota, lineage, input, exists)
	Rejections *prometheus.CounterVec

	// Quantity admitted by species
	CollectedQuantity *prometheus.CounterVec

	// Quality test results by pass/fail
	QualityResults *prometheus.CounterVec

	// Traceability assembly latency
	TraceLatency prometheus.Histogram
}

// New registers the admission metrics on reg. Pass a fresh prometheus.Registry in
// tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Admissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "herbtrace_admissions_total",
			Help: "Admission attempts by record kind and outcome",
		}, []string{"kind", "outcome"}),

		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "herbtrace_rejections_total",
			Help: "Rejected admissions by rule",
		}, []string{"rule"}),

		CollectedQuantity: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "herbtrace_collected_quantity_total",
			Help: "Quantity of plant material admitted by species",
		}, []string{"species"}),

		QualityResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "herbtrace_quality_results_total",
			Help: "Quality test evaluations by result",
		}, []string{"passed"}),

		TraceLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "herbtrace_trace_duration_seconds",
			Help:    "Duration of full traceability assembly",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementAdmission records an admission outcome for a record kind.
func (m *Metrics) IncrementAdmission(kind, outcome string) {
	if m != nil {
		m.Admissions.WithLabelValues(kind, outcome).Inc()
	}
}

// IncrementRejection records a rejection by rule.
func (m *Metrics) IncrementRejection(rule string) {
	if m != nil {
		m.Rejections.WithLabelValues(rule).Inc()
	}
}

// AddCollected adds an admitted quantity for species.
func (m *Metrics) AddCollected(species string, quantity float64) {
	if m != nil {
		m.CollectedQuantity.WithLabelValues(species).Add(quantity)
	}
}

// IncrementQuality records one evaluated quality test.
func (m *Metrics) IncrementQuality(passed bool) {
	if m != nil {
		label := "false"
		if passed {
			label = "true"
		}
		m.QualityResults.WithLabelValues(label).Inc()
	}
}

// ObserveTraceLatency records how long a traceability query took.
func (m *Metrics) ObserveTraceLatency(d time.Duration) {
	if m != nil {
		m.TraceLatency.Observe(d.Seconds())
	}
}
