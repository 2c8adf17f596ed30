package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the host bridge
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Bridge metrics
	BridgeCalls        *prometheus.CounterVec
	BridgeCallDuration *prometheus.HistogramVec

	// Relay metrics
	RelayEvents *prometheus.CounterVec

	// Boundary socket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec
}

// NewMetrics creates a metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "host_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "host_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		BridgeCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "host_bridge_calls_total",
				Help: "Total number of bridge op calls",
			},
			[]string{"op", "status"},
		),
		BridgeCallDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "host_bridge_call_duration_seconds",
				Help:    "Bridge op call duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30},
			},
			[]string{"op"},
		),
		RelayEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "host_relay_events_total",
				Help: "Total number of host events relayed per channel",
			},
			[]string{"event"},
		),
		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "host_ws_connections",
				Help: "Number of attached boundary sessions",
			},
		),
		WSMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "host_ws_messages_total",
				Help: "Total number of boundary messages by type",
			},
			[]string{"type"},
		),
	}
}

// RecordBridgeCall records one bridge op call outcome
func (m *Metrics) RecordBridgeCall(op string, ok bool, duration time.Duration) {
	status := "ok"
	if !ok {
		status = "error"
	}
	m.BridgeCalls.WithLabelValues(op, status).Inc()
	m.BridgeCallDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// Middleware records HTTP request metrics
func Middleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
