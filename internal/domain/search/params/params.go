package params

import (
	"slices"
	"strings"

	"github.com/kailas-cloud/cinefind/internal/domain/search/kind"
	"github.com/kailas-cloud/cinefind/internal/domain/search/order"
	"github.com/kailas-cloud/cinefind/internal/domain/vocab"
)

// Params is the structured form of a free-text search.
// Zero values mean "absent": Genre "", Year 0, MinRating 0, Country "", Season "", Setting "".
type Params struct {
	Query     string      `json:"query"`
	Type      kind.Kind   `json:"type"`
	Genre     string      `json:"genre,omitempty"`
	Year      int         `json:"year,omitempty"`
	MinRating float64     `json:"minRating,omitempty"`
	SortBy    order.Order `json:"sortBy"`
	Country   string      `json:"country,omitempty"`
	Keywords  []string    `json:"keywords,omitempty"`
	Season    string      `json:"season,omitempty"`
	Setting   string      `json:"setting,omitempty"`
}

// Default returns the fallback parameters for text: a movie title search by popularity.
func Default(text string) Params {
	return Params{Query: text, Type: kind.Movie, SortBy: order.Popularity}
}

// Normalize fills defaults and drops values outside the vocabularies.
// text is the original input and becomes the query when none was given.
func (p Params) Normalize(text string) Params {
	p.Query = strings.TrimSpace(p.Query)
	if p.Query == "" {
		p.Query = text
	}
	if !p.Type.IsValid() {
		p.Type = kind.Movie
	}
	if !p.SortBy.IsValid() {
		p.SortBy = order.Popularity
	}
	if p.Genre != "" {
		p.Genre, _ = vocab.CanonicalGenre(p.Genre)
	}
	if p.Year < 0 {
		p.Year = 0
	}
	if p.MinRating < 0 || p.MinRating > 10 {
		p.MinRating = 0
	}
	p.Country = strings.TrimSpace(p.Country)
	p.Season = strings.TrimSpace(p.Season)
	p.Setting = strings.TrimSpace(p.Setting)

	var kws []string
	for _, k := range p.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			kws = append(kws, k)
		}
	}
	p.Keywords = kws
	return p
}

// IsDomestic reports whether the country is the domestic token.
func (p Params) IsDomestic() bool { return vocab.IsDomestic(p.Country) }

// HasSemanticHints reports whether season, setting or keywords are present.
func (p Params) HasSemanticHints() bool {
	return p.Season != "" || p.Setting != "" || len(p.Keywords) > 0
}

// HasKeyword reports whether kw is one of the supplementary keywords (exact match).
func (p Params) HasKeyword(kw string) bool {
	return slices.Contains(p.Keywords, kw)
}

// WithoutKeyword returns a copy with every exact occurrence of kw removed from Keywords.
func (p Params) WithoutKeyword(kw string) Params {
	out := make([]string, 0, len(p.Keywords))
	for _, k := range p.Keywords {
		if k != kw {
			out = append(out, k)
		}
	}
	p.Keywords = out
	return p
}

// GenreID returns the catalog id of the requested genre, or 0 when absent or unknown.
func (p Params) GenreID() int {
	if p.Genre == "" {
		return 0
	}
	return vocab.GenreID(p.Genre)
}
