package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Catalog client Prometheus metrics.
var (
	CatalogRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_requests_total",
			Help:      "Total catalog API requests",
		},
		[]string{"endpoint", "status"},
	)

	CatalogRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_request_duration_seconds",
			Help:      "Catalog API request duration in seconds",
			Buckets:   []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"endpoint"},
	)

	BreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	BreakerTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_transitions_total",
			Help:      "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	BreakerRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_rejected_total",
			Help:      "Calls rejected by an open or saturated circuit breaker",
		},
		[]string{"name"},
	)
)

var registerOnce sync.Once

// Register registers the search, interpreter and catalog metrics. Must be called from main.
// HTTP metrics register themselves on import.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			SearchRequestsTotal,
			SearchDuration,
			SearchRetrievalTotal,
			SearchStrategiesTried,
			SearchFilterDropped,
			ExtractionTotal,
			LLMRequestsTotal,
			LLMRequestDuration,
			LLMTokensTotal,
			LLMErrorsTotal,
			LLMBudgetRemaining,
			LLMBudgetExceeded,
			CatalogRequestsTotal,
			CatalogRequestDuration,
			BreakerState,
			BreakerTransitions,
			BreakerRejected,
		)
	})
}
