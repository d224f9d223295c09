package search

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	"github.com/kailas-cloud/cinefind/internal/domain/search/params"
	"github.com/kailas-cloud/cinefind/internal/domain/vocab"
	logpkg "github.com/kailas-cloud/cinefind/internal/logger"
	"github.com/kailas-cloud/cinefind/internal/metrics"
)

// Weights are the semantic-match points per matched term. A movie survives
// the semantic stage when its total score is above zero.
type Weights struct {
	Season  int
	Setting int
	Keyword int
}

// DefaultWeights returns the stock scoring weights.
func DefaultWeights() Weights {
	return Weights{Season: 2, Setting: 1, Keyword: 1}
}

// applyFilters runs the filter stages in their fixed order over the retrieved set.
func applyFilters(ctx context.Context, p params.Params, r Retrieval, w Weights) []catalog.Movie {
	log := logpkg.FromContext(ctx)
	movies := r.Movies

	stage := func(name string, next []catalog.Movie) {
		dropped := len(movies) - len(next)
		if dropped > 0 {
			metrics.SearchFilterDropped.WithLabelValues(name).Add(float64(dropped))
		}
		log.Debug("filter applied",
			zap.String("stage", name),
			zap.Int("before", len(movies)),
			zap.Int("after", len(next)),
		)
		movies = next
	}

	if vocab.IsDomesticAlias(p.Country) && len(movies) > 0 && !r.UsedDiscovery {
		stage("country", filterDomestic(movies))
	}

	// A non-empty domestic set is treated as genre-filtered already.
	if p.Genre != "" && !(p.IsDomestic() && len(movies) > 0) {
		stage("genre", filterGenre(movies, p.GenreID()))
	}

	if p.Year > 0 {
		stage("year", filterYear(movies, p.Year))
	}

	if p.MinRating > 0 {
		stage("rating", filterRating(movies, p.MinRating))
	}

	if p.HasSemanticHints() {
		sp := p
		if r.UsedDiscovery && p.HasKeyword(vocab.DomesticKeyword) {
			sp = p.WithoutKeyword(vocab.DomesticKeyword)
		}
		if sp.HasSemanticHints() {
			stage("semantic", filterSemantic(movies, sp, w))
		}
	}

	return movies
}

func filterDomestic(movies []catalog.Movie) []catalog.Movie {
	return keep(movies, func(m catalog.Movie) bool {
		return vocab.LooksDomestic(m.Title, m.OriginalTitle, m.Overview)
	})
}

func filterGenre(movies []catalog.Movie, genreID int) []catalog.Movie {
	return keep(movies, func(m catalog.Movie) bool { return m.HasGenre(genreID) })
}

func filterYear(movies []catalog.Movie, year int) []catalog.Movie {
	return keep(movies, func(m catalog.Movie) bool { return m.Year() == year })
}

func filterRating(movies []catalog.Movie, minRating float64) []catalog.Movie {
	return keep(movies, func(m catalog.Movie) bool { return m.VoteAverage >= minRating })
}

func filterSemantic(movies []catalog.Movie, p params.Params, w Weights) []catalog.Movie {
	var seasonTerms, settingTerms []string
	if p.Season != "" {
		seasonTerms = vocab.SeasonTerms(p.Season)
	}
	if p.Setting != "" {
		settingTerms = vocab.SettingTerms(p.Setting)
	}

	return keep(movies, func(m catalog.Movie) bool {
		text := strings.ToLower(m.Title + " " + m.OriginalTitle + " " + m.Overview)
		score := w.Season*countMatches(text, seasonTerms) +
			w.Setting*countMatches(text, settingTerms) +
			w.Keyword*countMatches(text, p.Keywords)
		return score > 0
	})
}

// countMatches counts the terms found in text as case-insensitive substrings.
// text must already be lowercase.
func countMatches(text string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(text, strings.ToLower(t)) {
			n++
		}
	}
	return n
}

// keep returns the items matching pred in a new slice, preserving order.
func keep[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}
