package cinefind

import (
	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	"github.com/kailas-cloud/cinefind/internal/domain/search/result"
)

// Catalog records are shared with the engine as-is.
type (
	Movie        = catalog.Movie
	MovieDetails = catalog.MovieDetails
	MovieBundle  = catalog.MovieBundle
	TVShow       = catalog.TVShow
	Person       = catalog.Person
	MoviePage    = catalog.Page[catalog.Movie]
)

// ResultType is the kind of items a search returned.
type ResultType string

// Result type constants.
const (
	TypeMovie  ResultType = "movie"
	TypeTV     ResultType = "tv"
	TypePerson ResultType = "person"
)

// SearchParams is how the engine understood the request.
type SearchParams struct {
	Query     string
	Type      ResultType
	Genre     string
	Year      int
	MinRating float64
	SortBy    string
	Country   string
	Keywords  []string
	Season    string
	Setting   string
}

// SearchResult is a ranked search answer. Only the slice matching Type is set.
type SearchResult struct {
	Type           ResultType
	Query          string
	Params         SearchParams
	Movies         []Movie
	Shows          []TVShow
	People         []Person
	Recommendation string
}

// Len returns the number of returned items.
func (r SearchResult) Len() int {
	return len(r.Movies) + len(r.Shows) + len(r.People)
}

func searchResultFromDomain(r result.Result) SearchResult {
	p := r.Params()
	return SearchResult{
		Type:  ResultType(r.Type()),
		Query: r.OriginalQuery(),
		Params: SearchParams{
			Query:     p.Query,
			Type:      ResultType(p.Type),
			Genre:     p.Genre,
			Year:      p.Year,
			MinRating: p.MinRating,
			SortBy:    string(p.SortBy),
			Country:   p.Country,
			Keywords:  p.Keywords,
			Season:    p.Season,
			Setting:   p.Setting,
		},
		Movies:         r.Movies(),
		Shows:          r.Shows(),
		People:         r.People(),
		Recommendation: r.Recommendation(),
	}
}
