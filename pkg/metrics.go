// metrics.go is a thin abstraction over Prometheus so the cache can be used
// with or without metrics. When the caller passes a *prometheus.Registry via
// WithMetrics, labeled counters and a gauge are created and registered;
// otherwise a noop sink is used and the hot path pays nothing for metric
// updates.
//
// All metrics are per-shard; aggregation across shards is left to the
// Prometheus side via sum()/rate().
//
// ┌─────────────────────────────────┐
// │ Metric                   │ Type │
// ├───────────────────────────┼──────┤
// │ setcache_hits_total       │ Ctr  │
// │ setcache_misses_total     │ Ctr  │
// │ setcache_evictions_total  │ Ctr  │
// │ setcache_entries_in_use   │ Gge  │
// └─────────────────────────────────┘
//
// © 2025 arena-cache authors. MIT License.
package cache

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsSink abstracts the concrete metrics backend (Prometheus vs noop).
// It is not exposed outside the package; SingleCache and Shard only know the
// generic methods declared here.
type metricsSink interface {
	incHit(shard int)
	incMiss(shard int)
	incEvict(shard int)
	setEntries(shard int, value int64)
}

type noopMetrics struct{}

func (noopMetrics) incHit(int)            {}
func (noopMetrics) incMiss(int)           {}
func (noopMetrics) incEvict(int)          {}
func (noopMetrics) setEntries(int, int64) {}

type promMetrics struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	evictions *prometheus.CounterVec
	entries   *prometheus.GaugeVec
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	label := []string{"shard"}

	pm := &promMetrics{
		hits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "setcache",
				Name:      "hits_total",
				Help:      "Number of cache hits.",
			}, label),
		misses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "setcache",
				Name:      "misses_total",
				Help:      "Number of cache misses.",
			}, label),
		evictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "setcache",
				Name:      "evictions_total",
				Help:      "Number of items evicted on log-head wraparound.",
			}, label),
		entries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "setcache",
				Name:      "entries_in_use",
				Help:      "Number of live entries currently indexed by this shard.",
			}, label),
	}

	reg.MustRegister(pm.hits, pm.misses, pm.evictions, pm.entries)
	return pm
}

func (m *promMetrics) incHit(shard int) {
	m.hits.WithLabelValues(strconv.Itoa(shard)).Inc()
}
func (m *promMetrics) incMiss(shard int) {
	m.misses.WithLabelValues(strconv.Itoa(shard)).Inc()
}
func (m *promMetrics) incEvict(shard int) {
	m.evictions.WithLabelValues(strconv.Itoa(shard)).Inc()
}
func (m *promMetrics) setEntries(shard int, value int64) {
	m.entries.WithLabelValues(strconv.Itoa(shard)).Set(float64(value))
}

// newMetricsSink selects the noop sink when reg is nil, otherwise a
// Prometheus-backed one registered against reg.
func newMetricsSink(reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(reg)
}
