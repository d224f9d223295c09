package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	"github.com/kailas-cloud/cinefind/internal/domain/search/strategy"
)

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}

func searchParams(query string, page int) url.Values {
	v := pageParams(page)
	v.Set("query", query)
	return v
}

// SearchMovies searches movies by title keyword.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (catalog.Page[catalog.Movie], error) {
	return get[catalog.Page[catalog.Movie]](ctx, c, "search_movie", "/search/movie", searchParams(query, page))
}

// DiscoverMovies runs a structured discovery query. Zero constraints are omitted.
func (c *Client) DiscoverMovies(ctx context.Context, d strategy.Discovery) (catalog.Page[catalog.Movie], error) {
	v := pageParams(1)
	if d.CountryCode != "" {
		v.Set("with_origin_country", d.CountryCode)
	}
	if d.Year > 0 {
		v.Set("primary_release_year", strconv.Itoa(d.Year))
	}
	if d.GenreID > 0 {
		v.Set("with_genres", strconv.Itoa(d.GenreID))
	}
	sortKey := d.SortKey
	if sortKey == "" {
		sortKey = "popularity.desc"
	}
	v.Set("sort_by", sortKey)
	return get[catalog.Page[catalog.Movie]](ctx, c, "discover_movie", "/discover/movie", v)
}

// Popular lists popular movies.
func (c *Client) Popular(ctx context.Context, page int) (catalog.Page[catalog.Movie], error) {
	return get[catalog.Page[catalog.Movie]](ctx, c, "movie_popular", "/movie/popular", pageParams(page))
}

// NowPlaying lists movies in theaters.
func (c *Client) NowPlaying(ctx context.Context, page int) (catalog.Page[catalog.Movie], error) {
	return get[catalog.Page[catalog.Movie]](ctx, c, "movie_now_playing", "/movie/now_playing", pageParams(page))
}

// TopRated lists the highest rated movies.
func (c *Client) TopRated(ctx context.Context, page int) (catalog.Page[catalog.Movie], error) {
	return get[catalog.Page[catalog.Movie]](ctx, c, "movie_top_rated", "/movie/top_rated", pageParams(page))
}

// Upcoming lists movies about to be released.
func (c *Client) Upcoming(ctx context.Context, page int) (catalog.Page[catalog.Movie], error) {
	return get[catalog.Page[catalog.Movie]](ctx, c, "movie_upcoming", "/movie/upcoming", pageParams(page))
}

// Movie returns the full movie record.
func (c *Client) Movie(ctx context.Context, id int) (catalog.MovieDetails, error) {
	return get[catalog.MovieDetails](ctx, c, "movie", fmt.Sprintf("/movie/%d", id), nil)
}

// MovieCredits returns the cast and crew of a movie.
func (c *Client) MovieCredits(ctx context.Context, id int) (catalog.Credits, error) {
	return get[catalog.Credits](ctx, c, "movie_credits", fmt.Sprintf("/movie/%d/credits", id), nil)
}

// MovieImages returns the artwork of a movie.
func (c *Client) MovieImages(ctx context.Context, id int) (catalog.Images, error) {
	return get[catalog.Images](ctx, c, "movie_images", fmt.Sprintf("/movie/%d/images", id), nil)
}

// MovieVideos returns the trailers and clips of a movie.
func (c *Client) MovieVideos(ctx context.Context, id int) (catalog.Videos, error) {
	return get[catalog.Videos](ctx, c, "movie_videos", fmt.Sprintf("/movie/%d/videos", id), nil)
}

// Recommendations lists movies recommended for a movie.
func (c *Client) Recommendations(ctx context.Context, id, page int) (catalog.Page[catalog.Movie], error) {
	return get[catalog.Page[catalog.Movie]](ctx, c, "movie_recommendations",
		fmt.Sprintf("/movie/%d/recommendations", id), pageParams(page))
}

// Similar lists movies similar to a movie.
func (c *Client) Similar(ctx context.Context, id, page int) (catalog.Page[catalog.Movie], error) {
	return get[catalog.Page[catalog.Movie]](ctx, c, "movie_similar",
		fmt.Sprintf("/movie/%d/similar", id), pageParams(page))
}

// SearchPeople searches people by name.
func (c *Client) SearchPeople(ctx context.Context, query string, page int) (catalog.Page[catalog.Person], error) {
	return get[catalog.Page[catalog.Person]](ctx, c, "search_person", "/search/person", searchParams(query, page))
}

// Person returns the full person record.
func (c *Client) Person(ctx context.Context, id int) (catalog.PersonDetails, error) {
	return get[catalog.PersonDetails](ctx, c, "person", fmt.Sprintf("/person/%d", id), nil)
}

// PersonCredits returns a person's movie filmography.
func (c *Client) PersonCredits(ctx context.Context, id int) (catalog.PersonCredits, error) {
	return get[catalog.PersonCredits](ctx, c, "person_credits", fmt.Sprintf("/person/%d/movie_credits", id), nil)
}

// SearchTV searches series by title keyword.
func (c *Client) SearchTV(ctx context.Context, query string, page int) (catalog.Page[catalog.TVShow], error) {
	return get[catalog.Page[catalog.TVShow]](ctx, c, "search_tv", "/search/tv", searchParams(query, page))
}

// TV returns the full series record.
func (c *Client) TV(ctx context.Context, id int) (catalog.TVDetails, error) {
	return get[catalog.TVDetails](ctx, c, "tv", fmt.Sprintf("/tv/%d", id), nil)
}

// Ping checks that the API answers and accepts the key.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := get[struct{}](ctx, c, "configuration", "/configuration", nil); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
