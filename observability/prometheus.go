// Package observability exports vectree operation metrics to Prometheus.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/vectree"
)

// PrometheusCollector implements vectree.MetricsCollector.
type PrometheusCollector struct {
	opLatency *prometheus.HistogramVec
	vectors   *prometheus.CounterVec
	searchK   prometheus.Histogram
	treeSize  prometheus.Gauge
	rebuilds  prometheus.Counter
}

var _ vectree.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates the collector and registers its metrics
// with reg. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &PrometheusCollector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vectree_operation_latency_seconds",
			Help:    "Latency of DB operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		vectors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vectree_vectors_total",
			Help: "Vectors added or removed",
		}, []string{"op"}),
		searchK: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vectree_search_k",
			Help:    "Requested neighbour count per search",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		treeSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vectree_tree_vectors",
			Help: "Vectors indexed by the most recently built tree",
		}),
		rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vectree_rebuilds_total",
			Help: "Total tree rebuilds",
		}),
	}

	for _, m := range []prometheus.Collector{c.opLatency, c.vectors, c.searchK, c.treeSize, c.rebuilds} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordAdd implements vectree.MetricsCollector.
func (c *PrometheusCollector) RecordAdd(count int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("add", status(err)).Observe(d.Seconds())
	if err == nil {
		c.vectors.WithLabelValues("add").Add(float64(count))
	}
}

// RecordRemove implements vectree.MetricsCollector.
func (c *PrometheusCollector) RecordRemove(removed int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("remove", status(err)).Observe(d.Seconds())
	if err == nil {
		c.vectors.WithLabelValues("remove").Add(float64(removed))
	}
}

// RecordSearch implements vectree.MetricsCollector.
func (c *PrometheusCollector) RecordSearch(k int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("search", status(err)).Observe(d.Seconds())
	c.searchK.Observe(float64(k))
}

// RecordRebuild implements vectree.MetricsCollector.
func (c *PrometheusCollector) RecordRebuild(vectors int, d time.Duration) {
	c.opLatency.WithLabelValues("rebuild", "success").Observe(d.Seconds())
	c.treeSize.Set(float64(vectors))
	c.rebuilds.Inc()
}
