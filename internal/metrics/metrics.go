// Package metrics exposes Prometheus collectors for the command service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heartx_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "heartx_http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "route"},
	)

	// Translations counts resolved commands by source (llm, rules, unresolved).
	Translations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heartx_translations_total",
			Help: "Total number of translated inputs by source",
		},
		[]string{"source"},
	)

	ProviderFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heartx_provider_failures_total",
			Help: "Language-model calls that fell back to rule-based translation",
		},
		[]string{"provider"},
	)

	Executions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heartx_executions_total",
			Help: "Executed commands by result type",
		},
		[]string{"type"},
	)

	ExecutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "heartx_execution_duration_seconds",
			Help:    "Subprocess wall time in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// HistoryWrites counts persistence outcomes: persisted, failed, dropped.
	HistoryWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heartx_history_writes_total",
			Help: "History persistence outcomes",
		},
		[]string{"outcome"},
	)

	HistoryQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "heartx_history_queue_depth",
			Help: "Records waiting for persistence",
		},
	)
)
