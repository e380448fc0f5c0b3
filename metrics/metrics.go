// Package metrics provides Prometheus metrics for the Linear MCP server.
// It tracks tool call counts, latencies, gateway performance, and error rates.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics exported by this server.
const Namespace = "linear_mcp"

var (
	// RequestsTotal counts MCP tool calls by tool name and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures tool call latency distribution.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Tool call latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing tool calls.
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of tool calls currently being processed",
	}, []string{"tool"})

	// GatewayRequestsTotal counts Linear GraphQL calls by operation and status.
	GatewayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "gateway_requests_total",
		Help:      "Total Linear API requests by operation and status",
	}, []string{"operation", "status"})

	// GatewayLatency measures Linear GraphQL call latency by operation.
	GatewayLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "gateway_latency_seconds",
		Help:      "Linear API call latency by operation",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	// GatewayErrors counts Linear GraphQL errors by operation and error code.
	GatewayErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "gateway_errors_total",
		Help:      "Linear API errors by operation and error code",
	}, []string{"operation", "code"})

	// BatchPartialFailures counts multi-step operations that ended in a
	// reported partial state.
	BatchPartialFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "batch_partial_failures_total",
		Help:      "Multi-step operations where an earlier step succeeded and a later step failed",
	}, []string{"tool"})

	// AuthFailures counts calls rejected for missing or invalid credentials.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_failures_total",
		Help:      "Authentication failure count by reason",
	}, []string{"reason"})

	// PanicsRecovered counts recovered panics in tool handlers.
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})
)

// RecordRequest records a completed tool call with its duration and status.
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordGatewayCall records a Linear API call.
func RecordGatewayCall(operation string, duration float64, success bool, errorCode string) {
	status := "success"
	if !success {
		status = "error"
	}
	GatewayRequestsTotal.WithLabelValues(operation, status).Inc()
	GatewayLatency.WithLabelValues(operation).Observe(duration)
	if errorCode != "" {
		GatewayErrors.WithLabelValues(operation, errorCode).Inc()
	}
}
