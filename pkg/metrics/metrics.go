package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerMetrics aggregates the Prometheus instruments for the API server.
type ServerMetrics struct {
	service  string
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	summarizationsTotal   *prometheus.CounterVec
	summarizationDuration prometheus.Histogram
}

func NewServerMetrics(service string) *ServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "maildash",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "maildash",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "maildash",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	summarizationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "maildash",
			Subsystem: "ai",
			Name:      "summarizations_total",
			Help:      "Total summarization calls by outcome.",
		},
		[]string{"service", "outcome"},
	)
	summarizationDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "maildash",
			Subsystem: "ai",
			Name:      "summarization_duration_seconds",
			Help:      "Summarization call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		summarizationsTotal,
		summarizationDuration,
	)

	return &ServerMetrics{
		service:               service,
		registry:              registry,
		requestTotal:          requestTotal,
		requestDuration:       requestDuration,
		requestInFlight:       requestInFlight,
		summarizationsTotal:   summarizationsTotal,
		summarizationDuration: summarizationDuration,
	}
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count, duration and the in-flight gauge.
func (m *ServerMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		// The route template keeps label cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		c.Next()

		m.requestTotal.WithLabelValues(
			m.service,
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.requestDuration.WithLabelValues(m.service, c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveSummarization implements the summarizer observer contract.
func (m *ServerMetrics) ObserveSummarization(outcome string, duration time.Duration) {
	m.summarizationsTotal.WithLabelValues(m.service, outcome).Inc()
	m.summarizationDuration.Observe(duration.Seconds())
}
