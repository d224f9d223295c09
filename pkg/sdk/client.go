package cinefind

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	"github.com/kailas-cloud/cinefind/internal/domain/search/result"
	"github.com/kailas-cloud/cinefind/internal/transport/openai"
	"github.com/kailas-cloud/cinefind/internal/transport/tmdb"
	browseuc "github.com/kailas-cloud/cinefind/internal/usecase/browse"
	"github.com/kailas-cloud/cinefind/internal/usecase/budget"
	healthuc "github.com/kailas-cloud/cinefind/internal/usecase/health"
	searchuc "github.com/kailas-cloud/cinefind/internal/usecase/search"
)

const (
	tmdbTimeout   = 10 * time.Second
	openaiTimeout = 20 * time.Second
)

// Internal interfaces, swapped out in tests.
type searchUseCase interface {
	Search(ctx context.Context, text string) result.Result
}

type browseUseCase interface {
	List(ctx context.Context, l browseuc.List, page int) (catalog.Page[catalog.Movie], error)
	Movie(ctx context.Context, id int) (catalog.MovieDetails, error)
	MovieBundle(ctx context.Context, id int) (catalog.MovieBundle, error)
}

// Client is the cinefind SDK entry point. It is safe for concurrent use.
type Client struct {
	searchSvc searchUseCase
	browseSvc browseUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. WithTMDB is required.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.tmdbKey == "" {
		return nil, errors.New("cinefind: tmdb api key required (use WithTMDB)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return wireClient(cfg, obs), nil
}

func wireClient(cfg *clientConfig, obs *observer) *Client {
	logger := zap.NewNop()

	cat := tmdb.New(&tmdb.Config{
		APIKey:     cfg.tmdbKey,
		BaseURL:    cfg.tmdbBaseURL,
		Language:   cfg.language,
		Timeout:    tmdbTimeout,
		RatePerSec: 40,
		Burst:      20,
		HTTPClient: cfg.httpClient,
		Logger:     logger,
	})

	// nil interfaces, not typed nil pointers, when no key is given
	var (
		interp       searchuc.Interpreter
		narr         searchuc.Narrator
		interpHealth healthuc.InterpreterChecker
	)
	if cfg.openaiKey != "" {
		var tokenBudget openai.TokenBudget
		if cfg.dailyTokens > 0 || cfg.monthlyTokens > 0 {
			tokenBudget = budget.NewTracker(cfg.model, cfg.dailyTokens, cfg.monthlyTokens, budget.ActionReject, logger)
		}
		llm := openai.New(&openai.Config{
			APIKey:     cfg.openaiKey,
			BaseURL:    cfg.openaiBaseURL,
			Model:      cfg.model,
			Timeout:    openaiTimeout,
			HTTPClient: cfg.httpClient,
			Budget:     tokenBudget,
			Logger:     logger,
		})
		interp, narr, interpHealth = llm, llm, llm
	}

	return &Client{
		searchSvc: searchuc.New(cat, interp, narr).WithResultCap(cfg.resultCap),
		browseSvc: browseuc.New(cat),
		healthSvc: healthuc.New(cat, interpHealth),
		obs:       obs,
	}
}

// Search interprets text and returns ranked results. Catalog or interpreter
// failures degrade to a title search or an empty result; only blank text errors.
func (c *Client) Search(ctx context.Context, text string) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	if strings.TrimSpace(text) == "" {
		return SearchResult{}, fmt.Errorf("search: %w: empty query", ErrInvalidInput)
	}
	res = searchResultFromDomain(c.searchSvc.Search(ctx, text))
	c.obs.observeSearch(res)
	return res, nil
}

// Popular returns a page of popular movies.
func (c *Client) Popular(ctx context.Context, page int) (MoviePage, error) {
	return c.list(ctx, "popular", browseuc.Popular, page)
}

// NowPlaying returns a page of movies in theaters.
func (c *Client) NowPlaying(ctx context.Context, page int) (MoviePage, error) {
	return c.list(ctx, "now_playing", browseuc.NowPlaying, page)
}

// TopRated returns a page of the highest rated movies.
func (c *Client) TopRated(ctx context.Context, page int) (MoviePage, error) {
	return c.list(ctx, "top_rated", browseuc.TopRated, page)
}

// Upcoming returns a page of movies about to be released.
func (c *Client) Upcoming(ctx context.Context, page int) (MoviePage, error) {
	return c.list(ctx, "upcoming", browseuc.Upcoming, page)
}

func (c *Client) list(ctx context.Context, op string, l browseuc.List, page int) (res MoviePage, err error) {
	start := time.Now()
	defer func() { c.obs.observe(op, start, err) }()

	res, err = c.browseSvc.List(ctx, l, page)
	if err != nil {
		return MoviePage{}, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Movie returns the full record of a movie.
func (c *Client) Movie(ctx context.Context, id int) (res MovieDetails, err error) {
	start := time.Now()
	defer func() { c.obs.observe("movie", start, err) }()

	res, err = c.browseSvc.Movie(ctx, id)
	if err != nil {
		return MovieDetails{}, fmt.Errorf("movie %d: %w", id, err)
	}
	return res, nil
}

// MovieBundle returns a movie with its credits, images and videos.
func (c *Client) MovieBundle(ctx context.Context, id int) (res MovieBundle, err error) {
	start := time.Now()
	defer func() { c.obs.observe("movie_bundle", start, err) }()

	res, err = c.browseSvc.MovieBundle(ctx, id)
	if err != nil {
		return MovieBundle{}, fmt.Errorf("movie bundle %d: %w", id, err)
	}
	return res, nil
}
