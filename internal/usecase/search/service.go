package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	"github.com/kailas-cloud/cinefind/internal/domain/search/kind"
	"github.com/kailas-cloud/cinefind/internal/domain/search/params"
	"github.com/kailas-cloud/cinefind/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/cinefind/internal/logger"
	"github.com/kailas-cloud/cinefind/internal/metrics"
)

// Service answers natural-language searches over the catalog.
type Service struct {
	cat       Catalog
	extractor *Extractor
	narr      Narrator
	narrate   bool
	resultCap int
	weights   Weights
}

// New creates a search service. interp and narr may be nil: extraction then
// always falls back to a plain title search and narration to a template.
func New(cat Catalog, interp Interpreter, narr Narrator) *Service {
	return &Service{
		cat:       cat,
		extractor: NewExtractor(interp),
		narr:      narr,
		narrate:   true,
		resultCap: DefaultResultCap,
		weights:   DefaultWeights(),
	}
}

// WithResultCap sets the maximum number of returned items. Non-positive keeps the default.
func (s *Service) WithResultCap(n int) *Service {
	if n > 0 {
		s.resultCap = n
	}
	return s
}

// WithWeights sets the semantic-match scoring weights.
func (s *Service) WithWeights(w Weights) *Service {
	s.weights = w
	return s
}

// WithoutNarration disables the recommendation text entirely.
func (s *Service) WithoutNarration() *Service {
	s.narrate = false
	return s
}

// Search interprets text and returns the ranked result. It never fails:
// every degraded path ends in a well-formed, possibly empty, result.
func (s *Service) Search(ctx context.Context, text string) result.Result {
	start := time.Now()
	ctx = logpkg.With(ctx, zap.String("search_query", text))
	log := logpkg.FromContext(ctx)

	if strings.TrimSpace(text) == "" {
		return s.finish(result.Empty(text), "empty", start)
	}

	p := s.extractor.Extract(ctx, text)

	var (
		res result.Result
		err error
	)
	switch p.Type {
	case kind.TV:
		res, err = s.searchTV(ctx, p, text)
	case kind.Person:
		res, err = s.searchPeople(ctx, p, text)
	default:
		res = s.searchMovies(ctx, p, text)
	}
	if err != nil {
		log.Warn("search failed, falling back to title search", zap.Error(err))
		return s.finish(s.fallback(ctx, text), "fallback", start)
	}

	outcome := "results"
	if res.Len() == 0 {
		outcome = "empty"
	}
	return s.finish(res, outcome, start)
}

func (s *Service) finish(res result.Result, outcome string, start time.Time) result.Result {
	k := string(res.Type())
	metrics.SearchRequestsTotal.WithLabelValues(k, outcome).Inc()
	metrics.SearchDuration.WithLabelValues(k).Observe(time.Since(start).Seconds())
	return res
}

func (s *Service) searchMovies(ctx context.Context, p params.Params, text string) result.Result {
	plan := BuildPlan(p)
	logpkg.FromContext(ctx).Debug("retrieval plan built",
		zap.Int("discoveries", len(plan.Discoveries)),
		zap.Int("strategies", len(plan.Strategies)),
	)

	r := retrieve(ctx, s.cat, plan)
	movies := applyFilters(ctx, p, r, s.weights)
	movies = rank(movies, p.SortBy, movieKeys, s.resultCap)

	var rec string
	if s.narrate && len(movies) > 0 {
		rec = annotate(ctx, s.narr, text, movies)
	}
	return result.Movies(p, text, movies, rec)
}

func (s *Service) searchTV(ctx context.Context, p params.Params, text string) (result.Result, error) {
	page, err := s.cat.SearchTV(ctx, p.Query, 1)
	if err != nil {
		return result.Result{}, fmt.Errorf("search tv: %w", err)
	}

	shows := page.Results
	if p.Year > 0 {
		shows = keep(shows, func(t catalog.TVShow) bool { return t.Year() == p.Year })
	}
	if p.MinRating > 0 {
		shows = keep(shows, func(t catalog.TVShow) bool { return t.VoteAverage >= p.MinRating })
	}
	return result.Shows(p, text, rank(shows, p.SortBy, showKeys, s.resultCap)), nil
}

func (s *Service) searchPeople(ctx context.Context, p params.Params, text string) (result.Result, error) {
	page, err := s.cat.SearchPeople(ctx, p.Query, 1)
	if err != nil {
		return result.Result{}, fmt.Errorf("search people: %w", err)
	}
	return result.People(p, text, rankPeople(page.Results, s.resultCap)), nil
}

// fallback runs a plain title search with the raw text, or returns an empty result.
func (s *Service) fallback(ctx context.Context, text string) result.Result {
	page, err := s.cat.SearchMovies(ctx, text, 1)
	if err != nil {
		logpkg.FromContext(ctx).Warn("fallback title search failed", zap.Error(err))
		return result.Empty(text)
	}
	return result.Movies(params.Default(text), text, truncate(page.Results, s.resultCap), "")
}
