// Package observability holds the Prometheus collectors for HTTP, decode,
// cache and ingest activity. A nil *Metrics records nothing.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	decodes        *prometheus.CounterVec
	decodeDuration *prometheus.HistogramVec
	cacheResults   *prometheus.CounterVec
	cacheOps       *prometheus.HistogramVec
	ingest         *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
			},
			[]string{"method", "route", "status"},
		),
		decodes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geojson_decode_total",
				Help: "Decoded documents by result kind.",
			},
			[]string{"dimension", "kind"},
		),
		decodeDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "geojson_decode_duration_seconds",
				Help:    "Time spent validating and building one document.",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
			},
			[]string{"dimension"},
		),
		cacheResults: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_results_total",
				Help: "Result cache lookups by tier and outcome.",
			},
			[]string{"tier", "outcome"},
		),
		cacheOps: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cache_op_duration_seconds",
				Help:    "Latency of remote cache operations.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 10),
			},
			[]string{"op", "result"},
		),
		ingest: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_messages_total",
				Help: "Ingested messages by outcome.",
			},
			[]string{"outcome"},
		),
	}
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	st := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, route, st).Inc()
	m.httpDuration.WithLabelValues(method, route, st).Observe(d.Seconds())
}

// ObserveDecode records one decode; kind is the result kind ("error" on failure).
func (m *Metrics) ObserveDecode(dimension, kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.decodes.WithLabelValues(dimension, kind).Inc()
	m.decodeDuration.WithLabelValues(dimension).Observe(d.Seconds())
}

func (m *Metrics) CacheHit(tier string) {
	if m == nil {
		return
	}
	m.cacheResults.WithLabelValues(tier, "hit").Inc()
}

func (m *Metrics) CacheMiss(tier string) {
	if m == nil {
		return
	}
	m.cacheResults.WithLabelValues(tier, "miss").Inc()
}

func (m *Metrics) ObserveCacheOp(op string, err error, d time.Duration) {
	if m == nil {
		return
	}
	res := "ok"
	if err != nil {
		res = "error"
	}
	m.cacheOps.WithLabelValues(op, res).Observe(d.Seconds())
}

// Ingested counts one message by outcome: stored, duplicate, rejected or failed.
func (m *Metrics) Ingested(outcome string) {
	if m == nil {
		return
	}
	m.ingest.WithLabelValues(outcome).Inc()
}
