// Package metrics exposes Prometheus collectors for HTTP traffic and list queries.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storeadmin"

// Metrics owns a private registry so tests and multiple servers do not clash.
type Metrics struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	listDuration *prometheus.HistogramVec
	confirmOpen  prometheus.GaugeFunc
}

// New registers the collectors. pending reports how many confirmations are
// waiting for an answer; it may be nil.
func New(pending func() int) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		listDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "list_query",
			Name:      "duration_seconds",
			Help:      "Time spent filtering, sorting and summarizing a list.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"entity"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.listDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if pending != nil {
		m.confirmOpen = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "confirmations_open",
			Help:      "Confirmation requests currently held.",
		}, func() float64 { return float64(pending()) })
		m.registry.MustRegister(m.confirmOpen)
	}
	return m
}

// ObserveListQuery records how long a list query took.
func (m *Metrics) ObserveListQuery(entity string, elapsed time.Duration) {
	m.listDuration.WithLabelValues(entity).Observe(elapsed.Seconds())
}

// Middleware counts requests and records latency per matched route.
// Unmatched paths share one label to keep cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
