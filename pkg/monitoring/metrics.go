package monitoring

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector owns a service's Prometheus metrics. All metric names are
// prefixed with the service name, hyphens replaced for Prometheus.
type MetricsCollector struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	activeConnections   prometheus.Gauge
	serviceInfo         *prometheus.GaugeVec
}

// NewMetricsCollector creates a collector and registers the standard HTTP
// metrics plus a service_info gauge carrying version and commit labels.
func NewMetricsCollector(serviceName, version, commit string) *MetricsCollector {
	mc := &MetricsCollector{
		serviceName: strings.ReplaceAll(serviceName, "-", "_"),
	}

	mc.httpRequestsTotal = mc.NewCounter("http_requests_total",
		"Total number of HTTP requests", []string{"method", "endpoint", "status"})
	mc.httpRequestDuration = mc.NewHistogram("http_request_duration_seconds",
		"HTTP request duration in seconds", []string{"method", "endpoint"}, nil)
	mc.serviceInfo = mc.NewGauge("service_info",
		"Service information", []string{"version", "commit"})

	mc.activeConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: mc.serviceName + "_active_connections",
		Help: "Number of active connections",
	})
	prometheus.MustRegister(mc.activeConnections)

	mc.serviceInfo.WithLabelValues(version, commit).Set(1)

	return mc
}

// MetricsMiddleware returns middleware that records request count, duration
// and in-flight connections for every route.
func (mc *MetricsCollector) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		mc.activeConnections.Inc()
		defer mc.activeConnections.Dec()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		mc.httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		mc.httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the Prometheus exposition handler.
func (mc *MetricsCollector) Handler() gin.HandlerFunc {
	handler := promhttp.Handler()
	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}

// NewCounter registers a service-prefixed counter vector.
func (mc *MetricsCollector) NewCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: mc.serviceName + "_" + name,
			Help: help,
		},
		labels,
	)
	prometheus.MustRegister(counter)
	return counter
}

// NewGauge registers a service-prefixed gauge vector.
func (mc *MetricsCollector) NewGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: mc.serviceName + "_" + name,
			Help: help,
		},
		labels,
	)
	prometheus.MustRegister(gauge)
	return gauge
}

// NewHistogram registers a service-prefixed histogram vector. Nil buckets get
// the Prometheus defaults.
func (mc *MetricsCollector) NewHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}

	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    mc.serviceName + "_" + name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
	prometheus.MustRegister(histogram)
	return histogram
}
