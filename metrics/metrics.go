// Package metrics is the ambient observability layer the teacher
// always carries alongside logging, grounded on
// _examples/luxfi-evm/metrics/prometheus/prometheus.go's use of
// github.com/prometheus/client_golang/prometheus — here wired directly
// (a compiler front end has no long-running go-ethereum-style
// metrics.Registry to adapt, so yulc registers client_golang
// collectors itself instead of gathering through an adapter).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors spec.md's §5/§8 observable quantities
// bind to: compile duration per contract, block clones produced by the
// Ethereal IR worklist (§4.D.3), and the work-stealing pool's live
// worker count (§5).
type Metrics struct {
	registry *prometheus.Registry

	CompileDuration *prometheus.HistogramVec
	BlockClones     prometheus.Counter
	ActiveWorkers   prometheus.Gauge
}

// New registers a fresh collector set against its own registry, so
// multiple independent Projects (e.g. in tests) never collide on
// prometheus's global DefaultRegisterer.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		CompileDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "yulc",
			Name:      "compile_duration_seconds",
			Help:      "Time to compile one contract identifier end to end.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"identifier"}),
		BlockClones: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "yulc",
			Name:      "ethereal_ir_block_clones_total",
			Help:      "Block clones produced by the Ethereal IR worklist across all compiles.",
		}),
		ActiveWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "yulc",
			Name:      "project_active_workers",
			Help:      "Number of goroutines currently compiling a contract in the work-stealing pool.",
		}),
	}

	registry.MustRegister(m.CompileDuration, m.BlockClones, m.ActiveWorkers)
	return m
}

// Handler exposes the registry's metrics for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
