// Package prommetrics exports querymap decode and parse metrics to
// Prometheus.
//
//	c := prommetrics.New(prometheus.DefaultRegisterer)
//	m, err := querymap.ParseWith(raw, querymap.WithMetricsCollector(c))
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/querymap"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Collector implements querymap.MetricsCollector on top of Prometheus
// counters and histograms.
type Collector struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	keys       *prometheus.HistogramVec
	entries    prometheus.Histogram
}

var _ querymap.MetricsCollector = (*Collector)(nil)

// Option configures a Collector.
type Option func(*config)

type config struct {
	namespace string
	buckets   []float64
}

// WithNamespace sets the metric namespace. Defaults to "querymap".
func WithNamespace(ns string) Option {
	return func(c *config) {
		c.namespace = ns
	}
}

// WithLatencyBuckets overrides the latency histogram buckets.
func WithLatencyBuckets(b []float64) Option {
	return func(c *config) {
		c.buckets = b
	}
}

// New creates a Collector and registers its metrics with reg.
// A nil reg leaves the metrics unregistered.
func New(reg prometheus.Registerer, optFns ...Option) *Collector {
	cfg := config{
		namespace: "querymap",
		buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
	}
	for _, fn := range optFns {
		fn(&cfg)
	}

	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "operations_total",
			Help:      "Total decode and parse operations",
		}, []string{"op", "source", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of decode and parse operations",
			Buckets:   cfg.buckets,
		}, []string{"op", "source"}),
		keys: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "decoded_keys",
			Help:      "Number of keys produced by a successful decode",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"source"}),
		entries: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "parsed_entries",
			Help:      "Number of key=value entries consumed by a query parse",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	if reg != nil {
		reg.MustRegister(c.operations, c.latency, c.keys, c.entries)
	}
	return c
}

// RecordDecode implements querymap.MetricsCollector.
func (c *Collector) RecordDecode(source string, keys int, d time.Duration, err error) {
	c.operations.WithLabelValues("decode", source, status(err)).Inc()
	c.latency.WithLabelValues("decode", source).Observe(d.Seconds())
	if err == nil {
		c.keys.WithLabelValues(source).Observe(float64(keys))
	}
}

// RecordParse implements querymap.MetricsCollector.
func (c *Collector) RecordParse(entries int, d time.Duration, err error) {
	c.operations.WithLabelValues("parse", "query", status(err)).Inc()
	c.latency.WithLabelValues("parse", "query").Observe(d.Seconds())
	c.entries.Observe(float64(entries))
}

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusSuccess
}
