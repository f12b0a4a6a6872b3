package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks records hook events as Prometheus metrics. It implements
// [RenderHooks], [CacheHooks] and [HTTPHooks].
type PrometheusHooks struct {
	loads        *prometheus.CounterVec
	loadedTriple prometheus.Histogram
	renders      *prometheus.CounterVec
	renderTime   *prometheus.HistogramVec
	renderBytes  *prometheus.CounterVec
	cacheOps     *prometheus.CounterVec
	requests     *prometheus.CounterVec
	requestTime  *prometheus.HistogramVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
// It panics if any of them is already registered.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tlds_graph_loads_total",
				Help: "Total number of graph documents loaded",
			},
			[]string{"source", "result"},
		),
		loadedTriple: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tlds_graph_triples",
				Help:    "Number of triples per loaded graph",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tlds_renders_total",
				Help: "Total number of serializations",
			},
			[]string{"format", "result"},
		),
		renderTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tlds_render_duration_seconds",
				Help:    "Time spent serializing a graph",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		renderBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tlds_render_bytes_total",
				Help: "Total bytes produced by serializations",
			},
			[]string{"format"},
		),
		cacheOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tlds_cache_operations_total",
				Help: "Cache lookups and writes",
			},
			[]string{"key_type", "op"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tlds_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"method", "route", "code"},
		),
		requestTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tlds_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	reg.MustRegister(
		h.loads, h.loadedTriple,
		h.renders, h.renderTime, h.renderBytes,
		h.cacheOps,
		h.requests, h.requestTime,
	)
	return h
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *PrometheusHooks) OnLoadComplete(_ context.Context, source string, tripleCount int, _ time.Duration, err error) {
	h.loads.WithLabelValues(source, result(err)).Inc()
	if err == nil {
		h.loadedTriple.Observe(float64(tripleCount))
	}
}

func (h *PrometheusHooks) OnRenderStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.renders.WithLabelValues(format, result(err)).Inc()
	h.renderTime.WithLabelValues(format).Observe(d.Seconds())
	if err == nil {
		h.renderBytes.WithLabelValues(format).Add(float64(size))
	}
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, statusCode int, d time.Duration) {
	h.requests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	h.requestTime.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ RenderHooks = (*PrometheusHooks)(nil)
	_ CacheHooks  = (*PrometheusHooks)(nil)
	_ HTTPHooks   = (*PrometheusHooks)(nil)
)
