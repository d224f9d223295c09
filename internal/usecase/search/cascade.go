package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	"github.com/kailas-cloud/cinefind/internal/domain/search/strategy"
	logpkg "github.com/kailas-cloud/cinefind/internal/logger"
	"github.com/kailas-cloud/cinefind/internal/metrics"
)

// Retrieval is what the cascade selected for filtering.
type Retrieval struct {
	Movies        []catalog.Movie
	UsedDiscovery bool
	// Strategy is the index of the keyword strategy that produced Movies, or -1.
	Strategy int
}

// retrieve runs the plan in order and stops at the first attempt with results.
// Catalog errors count as empty results; the cascade never fails.
func retrieve(ctx context.Context, cat Catalog, plan strategy.Plan) Retrieval {
	log := logpkg.FromContext(ctx)

	for _, d := range plan.Discoveries {
		page, err := cat.DiscoverMovies(ctx, d)
		if err != nil {
			log.Warn("discovery failed, continuing",
				zap.String("attempt", d.Description),
				zap.Error(err),
			)
			continue
		}
		log.Debug("discovery tried",
			zap.String("attempt", d.Description),
			zap.Int("hits", len(page.Results)),
		)
		if len(page.Results) > 0 {
			metrics.SearchRetrievalTotal.WithLabelValues("discovery").Inc()
			metrics.SearchStrategiesTried.Observe(0)
			return Retrieval{Movies: page.Results, UsedDiscovery: true, Strategy: -1}
		}
	}

	for i, s := range plan.Strategies {
		page, err := cat.SearchMovies(ctx, s.Query, 1)
		if err != nil {
			log.Warn("strategy failed, continuing",
				zap.String("query", s.Query),
				zap.String("strategy", s.Description),
				zap.Error(err),
			)
			continue
		}
		log.Debug("strategy tried",
			zap.String("query", s.Query),
			zap.String("strategy", s.Description),
			zap.Int("hits", len(page.Results)),
		)
		if len(page.Results) > 0 {
			metrics.SearchRetrievalTotal.WithLabelValues("strategy").Inc()
			metrics.SearchStrategiesTried.Observe(float64(i + 1))
			return Retrieval{Movies: page.Results, Strategy: i}
		}
	}

	metrics.SearchRetrievalTotal.WithLabelValues("exhausted").Inc()
	metrics.SearchStrategiesTried.Observe(float64(len(plan.Strategies)))
	return Retrieval{Strategy: -1}
}
