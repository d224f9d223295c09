// Package tmdb is the content catalog client for The Movie Database REST API v3.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/cinefind/internal/domain"
	"github.com/kailas-cloud/cinefind/internal/metrics"
	"github.com/kailas-cloud/cinefind/internal/version"
)

const (
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultLanguage is the response locale.
	DefaultLanguage = "ko-KR"

	maxErrorBody = 512
)

// Config holds the catalog client settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration
	// RatePerSec caps outgoing requests. Zero disables client-side limiting.
	RatePerSec float64
	Burst      int
	Breaker    BreakerConfig
	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client calls the catalog API. It is safe for concurrent use.
type Client struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	language string
	limiter  *rate.Limiter
	breaker  *breaker
	logger   *zap.Logger
}

// New creates a catalog client.
func New(cfg *Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	language := cfg.Language
	if language == "" {
		language = DefaultLanguage
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		http:     httpClient,
		baseURL:  baseURL,
		apiKey:   cfg.APIKey,
		language: language,
		logger:   logger,
	}
	if cfg.RatePerSec > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), burst)
	}
	if !cfg.Breaker.Disabled {
		c.breaker = newBreaker("tmdb", cfg.Breaker, logger)
	}
	return c
}

// get performs one GET and decodes the JSON body into T.
// endpoint is the low-cardinality metrics label; path is the URL path under the base.
func get[T any](ctx context.Context, c *Client, endpoint, path string, params url.Values) (T, error) {
	var zero T

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return zero, fmt.Errorf("tmdb %s: rate limiter: %w: %w", endpoint, domain.ErrCatalogUnavailable, err)
		}
	}

	call := func() (any, error) {
		var out T
		if err := c.do(ctx, endpoint, path, params, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	if c.breaker == nil {
		v, err := call()
		if err != nil {
			return zero, err
		}
		return v.(T), nil
	}
	return castResult[T](c.breaker.execute(call))
}

func (c *Client) do(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	reqURL := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("tmdb %s: create request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.CatalogRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("tmdb %s: %w: %w", endpoint, domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	metrics.CatalogRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	c.logger.Debug("catalog request",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return statusError(endpoint, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tmdb %s: decode response: %w: %w", endpoint, domain.ErrCatalogUnavailable, err)
	}
	return nil
}

// apiStatus is the error envelope of the catalog API.
type apiStatus struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

func statusError(endpoint string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := strings.TrimSpace(string(body))
	var st apiStatus
	if json.Unmarshal(body, &st) == nil && st.StatusMessage != "" {
		detail = st.StatusMessage
	}

	sentinel := domain.ErrCatalogUnavailable
	switch resp.StatusCode {
	case http.StatusNotFound:
		sentinel = domain.ErrNotFound
	case http.StatusTooManyRequests:
		sentinel = domain.ErrRateLimited
	}
	return fmt.Errorf("tmdb %s: status %d: %s: %w", endpoint, resp.StatusCode, detail, sentinel)
}

// isServiceFailure reports whether err says the catalog itself is unhealthy.
// A missing item is a valid answer and does not count against the breaker.
func isServiceFailure(err error) bool {
	return err != nil && !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, context.Canceled)
}
