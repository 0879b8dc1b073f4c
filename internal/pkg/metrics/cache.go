package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics tracks one named cache.
type CacheMetrics struct {
	hits   prometheus.Counter
	misses prometheus.Counter
	size   prometheus.Gauge
}

// NewCacheMetrics creates and registers the collectors of the cache called name.
func NewCacheMetrics(reg prometheus.Registerer, namespace, name string) *CacheMetrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	labels := prometheus.Labels{"cache": name}

	m := &CacheMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "hits_total",
			Help:        "Cache lookups answered from memory",
			ConstLabels: labels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "misses_total",
			Help:        "Cache lookups that went to the backing store",
			ConstLabels: labels,
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "entries",
			Help:        "Entries currently held by the cache",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(m.hits, m.misses, m.size)
	return m
}

func (m *CacheMetrics) Hit()  { m.hits.Inc() }
func (m *CacheMetrics) Miss() { m.misses.Inc() }

// SetSize publishes the current number of entries.
func (m *CacheMetrics) SetSize(n int) { m.size.Set(float64(n)) }
