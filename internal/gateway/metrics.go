package gateway

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the gateway's Prometheus registry. A private registry keeps
// the scrape surface limited to what the gateway itself registers.
type Metrics struct {
	registry *prometheus.Registry

	nodeRuns    *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
}

// NewMetrics builds the registry and registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		nodeRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tgdispatch",
			Name:      "node_runs_total",
			Help:      "Node executions by node id and outcome.",
		}, []string{"node", "outcome"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tgdispatch",
			Name:      "node_run_duration_seconds",
			Help:      "Node execution duration, polling included.",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"node"}),
	}
	m.registry.MustRegister(
		m.nodeRuns,
		m.runDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// RecordRun records one node execution.
func (m *Metrics) RecordRun(node string, err error, elapsed time.Duration) {
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	m.nodeRuns.WithLabelValues(node, outcome).Inc()
	m.runDuration.WithLabelValues(node).Observe(elapsed.Seconds())
}

// Handler returns the scrape endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
