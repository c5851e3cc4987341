package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementAdmission("collection", OutcomeAccepted)
	m.IncrementAdmission("collection", OutcomeAccepted)
	m.IncrementRejection("quota")
	m.AddCollected("ASHWAGANDHA", 12.5)
	m.IncrementQuality(false)
	m.ObserveTraceLatency(3 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Admissions.WithLabelValues("collection", OutcomeAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejections.WithLabelValues("quota")))
	assert.Equal(t, 12.5, testutil.ToFloat64(m.CollectedQuantity.WithLabelValues("ASHWAGANDHA")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QualityResults.WithLabelValues("false")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.TraceLatency))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementAdmission("collection", OutcomeRejected)
		m.IncrementRejection("geofence")
		m.AddCollected("TULSI", 1)
		m.IncrementQuality(true)
		m.ObserveTraceLatency(time.Second)
	})
}
