package search

import (
	"context"

	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	"github.com/kailas-cloud/cinefind/internal/domain/search/strategy"
)

// Catalog is the slice of the catalog API the search pipeline reads from.
type Catalog interface {
	SearchMovies(ctx context.Context, query string, page int) (catalog.Page[catalog.Movie], error)
	DiscoverMovies(ctx context.Context, d strategy.Discovery) (catalog.Page[catalog.Movie], error)
	SearchTV(ctx context.Context, query string, page int) (catalog.Page[catalog.TVShow], error)
	SearchPeople(ctx context.Context, query string, page int) (catalog.Page[catalog.Person], error)
}

// Interpreter converts free text into a raw JSON parameter payload.
type Interpreter interface {
	ExtractParameters(ctx context.Context, text string) ([]byte, error)
}

// Narrator writes a short recommendation for a rendered list of picks.
type Narrator interface {
	Narrate(ctx context.Context, query, listing string) (string, error)
}
