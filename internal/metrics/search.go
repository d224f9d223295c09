package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Natural-language searches by kind and outcome",
		},
		[]string{"kind", "outcome"}, // outcome: results / empty / fallback
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "End-to-end natural-language search duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 30},
		},
		[]string{"kind"},
	)

	SearchRetrievalTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_retrieval_total",
			Help:      "Retrieval cascade terminations by source",
		},
		[]string{"source"}, // discovery / strategy / exhausted
	)

	SearchStrategiesTried = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_strategies_tried",
			Help:      "Keyword strategies executed per movie search",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	SearchFilterDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_filter_dropped_total",
			Help:      "Candidates removed by each filter stage",
		},
		[]string{"stage"},
	)

	ExtractionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_extraction_total",
			Help:      "Parameter extraction outcomes",
		},
		[]string{"outcome"}, // ok / fallback
	)
)
