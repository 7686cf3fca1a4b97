// Package metrics exposes Prometheus instruments for the event service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so tests can build as many as they like.
type Collector struct {
	registry       *prometheus.Registry
	cacheLookups   *prometheus.CounterVec
	sourceFetches  *prometheus.CounterVec
	sourceDuration prometheus.Histogram
}

// New registers the service metrics plus the Go runtime collectors.
func New() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}
	c.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventdiscovery",
		Name:      "cache_lookups_total",
		Help:      "Event query cache lookups by result",
	}, []string{"result"})
	c.sourceFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventdiscovery",
		Name:      "source_fetches_total",
		Help:      "Event source fetches by outcome",
	}, []string{"outcome"})
	c.sourceDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "eventdiscovery",
		Name:      "source_fetch_duration_seconds",
		Help:      "Time spent obtaining the event collection",
		Buckets:   prometheus.DefBuckets,
	})
	c.registry.MustRegister(
		c.cacheLookups,
		c.sourceFetches,
		c.sourceDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) CacheHit()  { c.cacheLookups.WithLabelValues("hit").Inc() }
func (c *Collector) CacheMiss() { c.cacheLookups.WithLabelValues("miss").Inc() }

// ObserveSourceFetch records one source round trip.
func (c *Collector) ObserveSourceFetch(d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.sourceFetches.WithLabelValues(outcome).Inc()
	c.sourceDuration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
