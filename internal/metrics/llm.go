package metrics

import "github.com/prometheus/client_golang/prometheus"

// Language-interpretation service Prometheus metrics.
var (
	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Total number of interpreter requests",
		},
		[]string{"operation", "model", "status"},
	)

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "Interpreter request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"operation", "model"},
	)

	LLMTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_tokens_total",
			Help:      "Total interpreter tokens consumed",
		},
		[]string{"operation", "model", "type"}, // prompt / completion
	)

	LLMErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_errors_total",
			Help:      "Total interpreter errors",
		},
		[]string{"operation", "model", "error_type"},
	)

	LLMBudgetRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "llm_budget_remaining_tokens",
			Help:      "Interpreter tokens left in the current budget window",
		},
		[]string{"model", "window"}, // day / month
	)

	LLMBudgetExceeded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_budget_exceeded_total",
			Help:      "Interpreter requests made while the token budget was spent",
		},
		[]string{"model", "action"},
	)
)
