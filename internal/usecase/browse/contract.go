package browse

import (
	"context"

	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
)

// Catalog is the read surface of the content catalog used for browsing.
type Catalog interface {
	SearchMovies(ctx context.Context, query string, page int) (catalog.Page[catalog.Movie], error)
	Popular(ctx context.Context, page int) (catalog.Page[catalog.Movie], error)
	NowPlaying(ctx context.Context, page int) (catalog.Page[catalog.Movie], error)
	TopRated(ctx context.Context, page int) (catalog.Page[catalog.Movie], error)
	Upcoming(ctx context.Context, page int) (catalog.Page[catalog.Movie], error)
	Recommendations(ctx context.Context, id, page int) (catalog.Page[catalog.Movie], error)
	Similar(ctx context.Context, id, page int) (catalog.Page[catalog.Movie], error)

	Movie(ctx context.Context, id int) (catalog.MovieDetails, error)
	MovieCredits(ctx context.Context, id int) (catalog.Credits, error)
	MovieImages(ctx context.Context, id int) (catalog.Images, error)
	MovieVideos(ctx context.Context, id int) (catalog.Videos, error)

	SearchPeople(ctx context.Context, query string, page int) (catalog.Page[catalog.Person], error)
	Person(ctx context.Context, id int) (catalog.PersonDetails, error)
	PersonCredits(ctx context.Context, id int) (catalog.PersonCredits, error)

	SearchTV(ctx context.Context, query string, page int) (catalog.Page[catalog.TVShow], error)
	TV(ctx context.Context, id int) (catalog.TVDetails, error)
}
