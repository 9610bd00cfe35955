// Package metrics holds the Prometheus collectors for connector operations
// and outbound provider requests. They are served on /metrics by the HTTP adapter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "sercha_connect"
)

var (
	// Connector Metrics
	OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connector_operations_total",
		Help:      "Count of connector operations by outcome.",
	}, []string{"connector", "operation", "outcome"})

	StatusChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connector_status_checks_total",
		Help:      "Count of status checks by resulting status.",
	}, []string{"connector", "status"})

	ConnectorUp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "connector_up",
		Help:      "1 when the last monitor sweep saw the connector as connected.",
	}, []string{"connector"})

	MonitorSweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "monitor_sweeps_total",
		Help:      "Count of background status sweeps.",
	})

	// Outbound HTTP Metrics
	ProviderRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_requests_total",
		Help:      "Count of outbound provider requests by host and status code.",
	}, []string{"host", "method", "code"})

	ProviderRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Time taken for outbound provider requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"host", "method"})

	RateLimitWaitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_rate_limit_waits_total",
		Help:      "Count of outbound requests delayed by the client-side rate limiter.",
	}, []string{"host"})

	// REST API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Count of REST API requests by route and status code.",
	}, []string{"method", "route", "code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Time taken to serve REST API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Outcome labels for OperationsTotal.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
