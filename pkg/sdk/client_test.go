package cinefind

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/cinefind/internal/domain"
	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	"github.com/kailas-cloud/cinefind/internal/domain/search/params"
	"github.com/kailas-cloud/cinefind/internal/domain/search/result"
	browseuc "github.com/kailas-cloud/cinefind/internal/usecase/browse"
	healthuc "github.com/kailas-cloud/cinefind/internal/usecase/health"
)

// --- Mocks ---

type mockSearchUC struct {
	fn func(ctx context.Context, text string) result.Result
}

func (m *mockSearchUC) Search(ctx context.Context, text string) result.Result {
	return m.fn(ctx, text)
}

type mockBrowseUC struct {
	lastList browseuc.List
	lastPage int
	err      error
}

func (m *mockBrowseUC) List(_ context.Context, l browseuc.List, page int) (catalog.Page[catalog.Movie], error) {
	m.lastList, m.lastPage = l, page
	if m.err != nil {
		return catalog.Page[catalog.Movie]{}, m.err
	}
	return catalog.Page[catalog.Movie]{Page: page, Results: []catalog.Movie{{ID: 1, Title: "기생충"}}}, nil
}

func (m *mockBrowseUC) Movie(_ context.Context, id int) (catalog.MovieDetails, error) {
	if m.err != nil {
		return catalog.MovieDetails{}, m.err
	}
	return catalog.MovieDetails{Movie: catalog.Movie{ID: id}}, nil
}

func (m *mockBrowseUC) MovieBundle(_ context.Context, id int) (catalog.MovieBundle, error) {
	if m.err != nil {
		return catalog.MovieBundle{}, m.err
	}
	return catalog.MovieBundle{Details: catalog.MovieDetails{Movie: catalog.Movie{ID: id}}}, nil
}

type mockHealthUC struct{ report healthuc.Report }

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

func newMockClient(s searchUseCase, b browseUseCase, reg prometheus.Registerer) *Client {
	obs, err := newObserver(nil, reg)
	if err != nil {
		panic(err)
	}
	return &Client{searchSvc: s, browseSvc: b, healthSvc: &mockHealthUC{}, obs: obs}
}

// --- Tests ---

func TestNew_NoTMDBKey(t *testing.T) {
	_, err := New(WithOpenAI("sk-test", ""))
	if err == nil {
		t.Fatal("expected error when no tmdb key provided")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithTMDB("tmdb-key").apply(cfg)
	WithTMDBBaseURL("http://localhost:9999").apply(cfg)
	WithLanguage("en-US").apply(cfg)
	WithOpenAI("sk-test", "http://llm.local/v1").apply(cfg)
	WithModel("gpt-4o-mini").apply(cfg)
	WithResultCap(5).apply(cfg)
	WithTokenBudget(1000, 20000).apply(cfg)

	if cfg.tmdbKey != "tmdb-key" || cfg.tmdbBaseURL != "http://localhost:9999" || cfg.language != "en-US" {
		t.Errorf("unexpected tmdb config %+v", cfg)
	}
	if cfg.openaiKey != "sk-test" || cfg.openaiBaseURL != "http://llm.local/v1" || cfg.model != "gpt-4o-mini" {
		t.Errorf("unexpected openai config %+v", cfg)
	}
	if cfg.resultCap != 5 {
		t.Errorf("resultCap = %d, want 5", cfg.resultCap)
	}
	if cfg.dailyTokens != 1000 || cfg.monthlyTokens != 20000 {
		t.Errorf("unexpected token budget %d / %d", cfg.dailyTokens, cfg.monthlyTokens)
	}

	hc := &http.Client{}
	WithHTTPClient(hc).apply(cfg)
	if cfg.httpClient != hc {
		t.Error("expected http client to be set")
	}

	logger := slog.Default()
	WithLogger(logger).apply(cfg)
	if cfg.logger != logger {
		t.Error("expected logger to be set")
	}

	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg)
	if cfg.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestSearch(t *testing.T) {
	var got string
	c := newMockClient(&mockSearchUC{fn: func(_ context.Context, text string) result.Result {
		got = text
		p := params.Default(text)
		p.Genre, p.Year = "로맨스", 2020
		return result.Movies(p, text, []catalog.Movie{{ID: 7, Title: "부산행"}}, "추천합니다")
	}}, &mockBrowseUC{}, nil)

	res, err := c.Search(context.Background(), "2020년 로맨스 영화")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2020년 로맨스 영화" {
		t.Errorf("search text = %q", got)
	}
	if res.Type != TypeMovie || res.Len() != 1 || res.Movies[0].Title != "부산행" {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Params.Genre != "로맨스" || res.Params.Year != 2020 || res.Params.SortBy != "popularity" {
		t.Errorf("unexpected params %+v", res.Params)
	}
	if res.Recommendation != "추천합니다" || res.Query != "2020년 로맨스 영화" {
		t.Errorf("unexpected envelope %+v", res)
	}
}

func TestSearch_Blank(t *testing.T) {
	called := false
	c := newMockClient(&mockSearchUC{fn: func(_ context.Context, text string) result.Result {
		called = true
		return result.Empty(text)
	}}, &mockBrowseUC{}, nil)

	_, err := c.Search(context.Background(), "  \n ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if called {
		t.Error("blank text must not reach the engine")
	}
}

func TestLists(t *testing.T) {
	b := &mockBrowseUC{}
	c := newMockClient(nil, b, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		call func(context.Context, int) (MoviePage, error)
		want browseuc.List
	}{
		{"popular", c.Popular, browseuc.Popular},
		{"now playing", c.NowPlaying, browseuc.NowPlaying},
		{"top rated", c.TopRated, browseuc.TopRated},
		{"upcoming", c.Upcoming, browseuc.Upcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := tt.call(ctx, 3)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b.lastList != tt.want || b.lastPage != 3 {
				t.Errorf("called %s page %d", b.lastList, b.lastPage)
			}
			if len(page.Results) != 1 {
				t.Errorf("expected 1 result, got %d", len(page.Results))
			}
		})
	}
}

func TestMovie_ErrorWrapping(t *testing.T) {
	c := newMockClient(nil, &mockBrowseUC{err: fmt.Errorf("tmdb: %w", domain.ErrNotFound)}, nil)

	if _, err := c.Movie(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Movie: expected ErrNotFound, got %v", err)
	}
	if _, err := c.MovieBundle(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("MovieBundle: expected ErrNotFound, got %v", err)
	}
	if _, err := c.Popular(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Popular: expected ErrNotFound, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	c := newMockClient(nil, nil, nil)
	c.healthSvc = &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"catalog": healthuc.CheckOK, "interpreter": healthuc.CheckError},
	}}

	h := c.Health(context.Background())
	if h.Status != "degraded" || h.Checks["catalog"] != "ok" || h.Checks["interpreter"] != "error" {
		t.Errorf("unexpected health %+v", h)
	}
}

func TestObserver_NilSafe(t *testing.T) {
	// nil observer should not panic.
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newMockClient(nil, &mockBrowseUC{}, reg)

	_, _ = c.Movie(context.Background(), 1)
	_, _ = c.Movie(context.Background(), 2)
	c.browseSvc = &mockBrowseUC{err: errors.New("fail")}
	_, _ = c.Movie(context.Background(), 3)

	obs := c.obs.metrics.operations
	if got := testutil.ToFloat64(obs.WithLabelValues("movie", "ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(obs.WithLabelValues("movie", "error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "cinefind_sdk_operations_total" {
			found = true
		}
	}
	if !found {
		t.Error("cinefind_sdk_operations_total not found")
	}
}

func TestObserver_SearchOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	hits := true
	c := newMockClient(&mockSearchUC{fn: func(_ context.Context, text string) result.Result {
		if !hits {
			return result.Empty(text)
		}
		return result.Shows(params.Default(text), text, []catalog.TVShow{{ID: 1}, {ID: 2}})
	}}, &mockBrowseUC{}, reg)

	_, _ = c.Search(context.Background(), "무빙")
	hits = false
	_, _ = c.Search(context.Background(), "없는 드라마")
	_, _ = c.Search(context.Background(), " ")

	searches := c.obs.metrics.searches
	if got := testutil.ToFloat64(searches.WithLabelValues("tv", "results")); got != 1 {
		t.Errorf("tv results = %v, want 1", got)
	}
	if got := testutil.ToFloat64(searches.WithLabelValues("movie", "empty")); got != 1 {
		t.Errorf("movie empty = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(searches); got != 2 {
		t.Errorf("expected blank text to be left out, got %d series", got)
	}
	if got := testutil.CollectAndCount(c.obs.metrics.results); got != 2 {
		t.Errorf("expected 2 result histograms, got %d", got)
	}
}

func TestObserver_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("first observer: %v", err)
	}
	second, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second observer: %v", err)
	}
	if first.metrics.operations != second.metrics.operations {
		t.Error("expected the registered counter to be reused")
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), nil)
	obs.observe("test.op", time.Now(), ErrNotFound)
	obs.observe("test.op", time.Now(), errors.New("test error"))
}

func TestClient_TMDBRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "tmdb-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/movie/popular":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"page":1,"total_pages":1,"total_results":1,"results":[{"id":496243,"title":"기생충"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status_code":34,"status_message":"not found"}`))
		}
	}))
	defer srv.Close()

	c, err := New(WithTMDB("tmdb-key"), WithTMDBBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	page, err := c.Popular(context.Background(), 1)
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].Title != "기생충" {
		t.Errorf("unexpected page %+v", page)
	}

	if _, err := c.Movie(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
