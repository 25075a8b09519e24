// Package metrics exposes prometheus instruments for lint runs.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "jshint"

// Run outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeSkipped       = "skipped"
	OutcomeStale         = "stale"
	OutcomeNotFound      = "executable_not_found"
	OutcomeInvalidOutput = "invalid_output"
	OutcomeFailed        = "failed"
)

type Metrics struct {
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
	diagnostics prometheus.Gauge
	skipped     prometheus.Counter
	superseded  prometheus.Counter
	cacheHits   prometheus.Counter
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Lint runs by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of lint runs that invoked the linter.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		diagnostics: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "diagnostics",
			Help:      "Diagnostics recorded by the latest run.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_lines_total",
			Help:      "Result lines skipped because they did not parse.",
		}),
		superseded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "debounce_superseded_total",
			Help:      "Pending edit-triggered runs replaced or cancelled before firing.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Runs served from the result cache.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.runs, m.duration, m.diagnostics, m.skipped, m.superseded, m.cacheHits)
	}
	return m
}

func (m *Metrics) ObserveRun(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	if outcome != OutcomeSkipped && outcome != OutcomeStale {
		m.duration.Observe(elapsed.Seconds())
	}
}

func (m *Metrics) SetDiagnostics(recorded, skipped int) {
	if m == nil {
		return
	}
	m.diagnostics.Set(float64(recorded))
	m.skipped.Add(float64(skipped))
}

func (m *Metrics) IncSuperseded() {
	if m == nil {
		return
	}
	m.superseded.Inc()
}

func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}
