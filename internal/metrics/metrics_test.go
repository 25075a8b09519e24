package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRun(OutcomeSuccess, 20*time.Millisecond)
	m.ObserveRun(OutcomeSuccess, 30*time.Millisecond)
	m.ObserveRun(OutcomeSkipped, 0)
	m.SetDiagnostics(3, 2)
	m.IncSuperseded()
	m.IncCacheHit()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.runs.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(OutcomeSkipped)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.diagnostics))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.skipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.superseded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))

	count, err := testutil.GatherAndCount(reg, "jshint_runs_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNilMetrics(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRun(OutcomeFailed, time.Second)
		m.SetDiagnostics(1, 1)
		m.IncSuperseded()
		m.IncCacheHit()
	})
}
