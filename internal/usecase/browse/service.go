package browse

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/cinefind/internal/domain"
	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	logpkg "github.com/kailas-cloud/cinefind/internal/logger"
)

// MaxPage is the deepest page the catalog serves.
const MaxPage = 500

// List names a curated movie listing.
type List string

// Curated listings.
const (
	Popular    List = "popular"
	NowPlaying List = "now-playing"
	TopRated   List = "top-rated"
	Upcoming   List = "upcoming"
)

// IsValid checks if the list is one of the curated listings.
func (l List) IsValid() bool {
	return l == Popular || l == NowPlaying || l == TopRated || l == Upcoming
}

// Service exposes catalog listings and detail lookups.
type Service struct {
	cat Catalog
}

// New creates a browse service.
func New(cat Catalog) *Service {
	return &Service{cat: cat}
}

// ClampPage maps a requested page into the served range. Zero means the first page.
func ClampPage(page int) int {
	switch {
	case page < 1:
		return 1
	case page > MaxPage:
		return MaxPage
	default:
		return page
	}
}

// List returns one page of a curated listing.
func (s *Service) List(ctx context.Context, l List, page int) (catalog.Page[catalog.Movie], error) {
	page = ClampPage(page)

	var fetch func(context.Context, int) (catalog.Page[catalog.Movie], error)
	switch l {
	case Popular:
		fetch = s.cat.Popular
	case NowPlaying:
		fetch = s.cat.NowPlaying
	case TopRated:
		fetch = s.cat.TopRated
	case Upcoming:
		fetch = s.cat.Upcoming
	default:
		return catalog.Page[catalog.Movie]{}, fmt.Errorf("%w: unknown list %q", domain.ErrInvalidInput, l)
	}

	res, err := fetch(ctx, page)
	if err != nil {
		return catalog.Page[catalog.Movie]{}, fmt.Errorf("list %s: %w", l, err)
	}
	return res, nil
}

// SearchMovies runs a plain title search.
func (s *Service) SearchMovies(ctx context.Context, query string, page int) (catalog.Page[catalog.Movie], error) {
	if err := checkQuery(query); err != nil {
		return catalog.Page[catalog.Movie]{}, err
	}
	res, err := s.cat.SearchMovies(ctx, strings.TrimSpace(query), ClampPage(page))
	if err != nil {
		return catalog.Page[catalog.Movie]{}, fmt.Errorf("search movies: %w", err)
	}
	return res, nil
}

// SearchPeople runs a name search.
func (s *Service) SearchPeople(ctx context.Context, query string, page int) (catalog.Page[catalog.Person], error) {
	if err := checkQuery(query); err != nil {
		return catalog.Page[catalog.Person]{}, err
	}
	res, err := s.cat.SearchPeople(ctx, strings.TrimSpace(query), ClampPage(page))
	if err != nil {
		return catalog.Page[catalog.Person]{}, fmt.Errorf("search people: %w", err)
	}
	return res, nil
}

// SearchTV runs a series title search.
func (s *Service) SearchTV(ctx context.Context, query string, page int) (catalog.Page[catalog.TVShow], error) {
	if err := checkQuery(query); err != nil {
		return catalog.Page[catalog.TVShow]{}, err
	}
	res, err := s.cat.SearchTV(ctx, strings.TrimSpace(query), ClampPage(page))
	if err != nil {
		return catalog.Page[catalog.TVShow]{}, fmt.Errorf("search tv: %w", err)
	}
	return res, nil
}

// Movie returns the full movie record.
func (s *Service) Movie(ctx context.Context, id int) (catalog.MovieDetails, error) {
	return lookup(ctx, id, "movie", s.cat.Movie)
}

// MovieCredits returns the cast and crew of a movie.
func (s *Service) MovieCredits(ctx context.Context, id int) (catalog.Credits, error) {
	return lookup(ctx, id, "movie credits", s.cat.MovieCredits)
}

// MovieImages returns the artwork of a movie.
func (s *Service) MovieImages(ctx context.Context, id int) (catalog.Images, error) {
	return lookup(ctx, id, "movie images", s.cat.MovieImages)
}

// MovieVideos returns the videos of a movie.
func (s *Service) MovieVideos(ctx context.Context, id int) (catalog.Videos, error) {
	return lookup(ctx, id, "movie videos", s.cat.MovieVideos)
}

// Recommendations returns movies the catalog recommends for a movie.
func (s *Service) Recommendations(ctx context.Context, id, page int) (catalog.Page[catalog.Movie], error) {
	return related(ctx, id, page, "recommendations", s.cat.Recommendations)
}

// Similar returns movies similar to a movie.
func (s *Service) Similar(ctx context.Context, id, page int) (catalog.Page[catalog.Movie], error) {
	return related(ctx, id, page, "similar", s.cat.Similar)
}

// Person returns the full person record.
func (s *Service) Person(ctx context.Context, id int) (catalog.PersonDetails, error) {
	return lookup(ctx, id, "person", s.cat.Person)
}

// PersonCredits returns a person's movie filmography.
func (s *Service) PersonCredits(ctx context.Context, id int) (catalog.PersonCredits, error) {
	return lookup(ctx, id, "person credits", s.cat.PersonCredits)
}

// TV returns the full series record.
func (s *Service) TV(ctx context.Context, id int) (catalog.TVDetails, error) {
	return lookup(ctx, id, "tv", s.cat.TV)
}

// MovieBundle fetches a movie with its credits, images and videos concurrently.
// A details failure fails the bundle; the other parts are left empty on error.
func (s *Service) MovieBundle(ctx context.Context, id int) (catalog.MovieBundle, error) {
	if err := checkID(id); err != nil {
		return catalog.MovieBundle{}, err
	}
	log := logpkg.FromContext(ctx)

	var b catalog.MovieBundle
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		d, err := s.cat.Movie(gctx, id)
		if err != nil {
			return fmt.Errorf("movie: %w", err)
		}
		b.Details = d
		return nil
	})
	g.Go(func() error {
		c, err := s.cat.MovieCredits(gctx, id)
		if err != nil {
			log.Warn("bundle credits unavailable", zap.Int("movie_id", id), zap.Error(err))
			return nil
		}
		b.Credits = c
		return nil
	})
	g.Go(func() error {
		im, err := s.cat.MovieImages(gctx, id)
		if err != nil {
			log.Warn("bundle images unavailable", zap.Int("movie_id", id), zap.Error(err))
			return nil
		}
		b.Images = im
		return nil
	})
	g.Go(func() error {
		v, err := s.cat.MovieVideos(gctx, id)
		if err != nil {
			log.Warn("bundle videos unavailable", zap.Int("movie_id", id), zap.Error(err))
			return nil
		}
		b.Videos = v
		return nil
	})

	if err := g.Wait(); err != nil {
		return catalog.MovieBundle{}, err
	}
	return b, nil
}

func lookup[T any](ctx context.Context, id int, what string, fetch func(context.Context, int) (T, error)) (T, error) {
	var zero T
	if err := checkID(id); err != nil {
		return zero, err
	}
	v, err := fetch(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("get %s %d: %w", what, id, err)
	}
	return v, nil
}

func related(
	ctx context.Context, id, page int, what string,
	fetch func(context.Context, int, int) (catalog.Page[catalog.Movie], error),
) (catalog.Page[catalog.Movie], error) {
	if err := checkID(id); err != nil {
		return catalog.Page[catalog.Movie]{}, err
	}
	res, err := fetch(ctx, id, ClampPage(page))
	if err != nil {
		return catalog.Page[catalog.Movie]{}, fmt.Errorf("get %s %d: %w", what, id, err)
	}
	return res, nil
}

func checkID(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", domain.ErrInvalidInput, id)
	}
	return nil
}

func checkQuery(q string) error {
	if strings.TrimSpace(q) == "" {
		return fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	return nil
}
