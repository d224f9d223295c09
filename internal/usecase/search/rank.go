package search

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	"github.com/kailas-cloud/cinefind/internal/domain/search/order"
)

// DefaultResultCap is the maximum number of items in a search result.
const DefaultResultCap = 20

// rankKeys extracts the sortable signals of one item kind.
type rankKeys[T any] struct {
	rating     func(T) float64
	popularity func(T) float64
	date       func(T) string
}

var movieKeys = rankKeys[catalog.Movie]{
	rating:     func(m catalog.Movie) float64 { return m.VoteAverage },
	popularity: func(m catalog.Movie) float64 { return m.Popularity },
	date:       func(m catalog.Movie) string { return m.ReleaseDate },
}

var showKeys = rankKeys[catalog.TVShow]{
	rating:     func(t catalog.TVShow) float64 { return t.VoteAverage },
	popularity: func(t catalog.TVShow) float64 { return t.Popularity },
	date:       func(t catalog.TVShow) string { return t.FirstAirDate },
}

// rank returns a copy of items stably sorted descending by o and truncated to limit.
// Items with a missing or malformed date sort last under release_date.
func rank[T any](items []T, o order.Order, keys rankKeys[T], limit int) []T {
	out := slices.Clone(items)

	switch o {
	case order.Rating:
		slices.SortStableFunc(out, func(a, b T) int {
			return cmp.Compare(keys.rating(b), keys.rating(a))
		})
	case order.ReleaseDate:
		slices.SortStableFunc(out, func(a, b T) int {
			da, db := catalog.ParseDate(keys.date(a)), catalog.ParseDate(keys.date(b))
			return db.Compare(da)
		})
	default:
		slices.SortStableFunc(out, func(a, b T) int {
			return cmp.Compare(keys.popularity(b), keys.popularity(a))
		})
	}

	return truncate(out, limit)
}

// rankPeople sorts by popularity regardless of the requested order.
func rankPeople(people []catalog.Person, limit int) []catalog.Person {
	out := slices.Clone(people)
	slices.SortStableFunc(out, func(a, b catalog.Person) int {
		return cmp.Compare(b.Popularity, a.Popularity)
	})
	return truncate(out, limit)
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
