package result

import (
	"encoding/json"

	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	"github.com/kailas-cloud/cinefind/internal/domain/search/kind"
	"github.com/kailas-cloud/cinefind/internal/domain/search/params"
)

// Result is the terminal output of a natural-language search.
// Exactly one of the item slices is meaningful, selected by Type.
type Result struct {
	kind           kind.Kind
	movies         []catalog.Movie
	shows          []catalog.TVShow
	people         []catalog.Person
	recommendation string
	params         params.Params
	originalQuery  string
}

// Movies creates a movie result.
func Movies(p params.Params, text string, items []catalog.Movie, recommendation string) Result {
	return Result{kind: kind.Movie, movies: items, recommendation: recommendation, params: p, originalQuery: text}
}

// Shows creates a TV result.
func Shows(p params.Params, text string, items []catalog.TVShow) Result {
	return Result{kind: kind.TV, shows: items, params: p, originalQuery: text}
}

// People creates a person result.
func People(p params.Params, text string, items []catalog.Person) Result {
	return Result{kind: kind.Person, people: items, params: p, originalQuery: text}
}

// Empty creates the empty movie result with default parameters.
func Empty(text string) Result {
	return Result{kind: kind.Movie, params: params.Default(text), originalQuery: text}
}

// Type returns the searched kind.
func (r Result) Type() kind.Kind { return r.kind }

// Movies returns the ranked movies of a movie result.
func (r Result) Movies() []catalog.Movie { return r.movies }

// Shows returns the ranked shows of a TV result.
func (r Result) Shows() []catalog.TVShow { return r.shows }

// People returns the ranked people of a person result.
func (r Result) People() []catalog.Person { return r.people }

// Recommendation returns the narrative, empty when none was produced.
func (r Result) Recommendation() string { return r.recommendation }

// Params returns the parameters the search ran with.
func (r Result) Params() params.Params { return r.params }

// OriginalQuery returns the raw input text.
func (r Result) OriginalQuery() string { return r.originalQuery }

// Len returns the number of ranked items.
func (r Result) Len() int {
	switch r.kind {
	case kind.TV:
		return len(r.shows)
	case kind.Person:
		return len(r.people)
	default:
		return len(r.movies)
	}
}

// Items returns the ranked items as an untyped slice, never nil.
func (r Result) Items() any {
	switch r.kind {
	case kind.TV:
		return nonNil(r.shows)
	case kind.Person:
		return nonNil(r.people)
	default:
		return nonNil(r.movies)
	}
}

type wire struct {
	Type           kind.Kind     `json:"type"`
	Results        any           `json:"results"`
	Recommendation string        `json:"recommendation,omitempty"`
	SearchParams   params.Params `json:"searchParams"`
	OriginalQuery  string        `json:"originalQuery"`
}

// MarshalJSON renders the result envelope.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire{
		Type:           r.kind,
		Results:        r.Items(),
		Recommendation: r.recommendation,
		SearchParams:   r.params,
		OriginalQuery:  r.originalQuery,
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
