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

// Metrics groups the collectors exported on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	StatusUpdates    *prometheus.CounterVec
	BoardCache       *prometheus.CounterVec
	RequestDurations *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		StatusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "watches",
			Name:      "order_status_updates_total",
			Help:      "Order status updates by target status and result.",
		}, []string{"status", "result"}),
		BoardCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "watches",
			Name:      "board_cache_requests_total",
			Help:      "Board feed cache lookups by result.",
		}, []string{"result"}),
		RequestDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "watches",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
	reg.MustRegister(
		m.StatusUpdates,
		m.BoardCache,
		m.RequestDurations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records the latency of every routed request.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDurations.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// ObserveStatusUpdate counts one status update attempt.
func (m *Metrics) ObserveStatusUpdate(status string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.StatusUpdates.WithLabelValues(status, result).Inc()
}

// ObserveBoardCache counts a cache hit or miss.
func (m *Metrics) ObserveBoardCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.BoardCache.WithLabelValues(result).Inc()
}
