package cinefind

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	tmdbKey     string
	tmdbBaseURL string
	language    string

	openaiKey     string
	openaiBaseURL string
	model         string
	dailyTokens   int64
	monthlyTokens int64

	resultCap  int
	httpClient *http.Client

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithTMDB sets the TMDB API key. Required.
func WithTMDB(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.tmdbKey = apiKey
	})
}

// WithTMDBBaseURL points the catalog client at another API root, e.g. a proxy.
func WithTMDBBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.tmdbBaseURL = baseURL
	})
}

// WithLanguage sets the catalog response locale. Default: ko-KR.
func WithLanguage(lang string) Option {
	return optionFunc(func(c *clientConfig) {
		c.language = lang
	})
}

// WithOpenAI enables query interpretation and narration.
// baseURL may be empty for the public OpenAI endpoint.
func WithOpenAI(apiKey, baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openaiKey = apiKey
		c.openaiBaseURL = baseURL
	})
}

// WithModel sets the chat model. Default: gpt-3.5-turbo.
func WithModel(model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.model = model
	})
}

// WithTokenBudget caps interpreter tokens per UTC day and month (0 = unlimited).
// Once spent, searches run on fallback parameters until the window rolls over.
func WithTokenBudget(daily, monthly int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.dailyTokens = daily
		c.monthlyTokens = monthly
	})
}

// WithResultCap sets the maximum number of search results. Default: 20.
func WithResultCap(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.resultCap = n
	})
}

// WithHTTPClient sets the HTTP client used for both upstream APIs.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
