// Package metrics exposes Prometheus instrumentation for the ledger server.
//
// All methods are safe on a nil *Metrics, so components can take an
// optional collector without guarding every call.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "subsplit"

// Metrics owns a private registry and the ledger collectors.
type Metrics struct {
	registry        *prometheus.Registry
	rpcRequests     *prometheus.CounterVec
	rpcDuration     *prometheus.HistogramVec
	commands        *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	historyDepth    *prometheus.GaugeVec
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_commands_total",
			Help:      "Ledger commands by action and outcome (applied, rejected, noop).",
		}, []string{"action", "outcome"}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_persist_failures_total",
			Help:      "Best-effort state writes that failed, by key.",
		}, []string{"key"}),
		historyDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_history_depth",
			Help:      "Entries on the undo and redo stacks.",
		}, []string{"stack"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		m.commands,
		m.persistFailures,
		m.historyDepth,
	)
	return m
}

// Registry returns the underlying registry, for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// ObserveCommand records one ledger command.
func (m *Metrics) ObserveCommand(action, outcome string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(action, outcome).Inc()
}

// ObservePersistFailure records a failed write of key.
func (m *Metrics) ObservePersistFailure(key string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(key).Inc()
}

// ObserveHistory records the current undo and redo stack sizes.
func (m *Metrics) ObserveHistory(undo, redo int) {
	if m == nil {
		return
	}
	m.historyDepth.WithLabelValues("undo").Set(float64(undo))
	m.historyDepth.WithLabelValues("redo").Set(float64(redo))
}
