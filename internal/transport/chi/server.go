package chi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinefind/internal/domain"
	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	browseuc "github.com/kailas-cloud/cinefind/internal/usecase/browse"
	healthuc "github.com/kailas-cloud/cinefind/internal/usecase/health"
	searchuc "github.com/kailas-cloud/cinefind/internal/usecase/search"
	usageuc "github.com/kailas-cloud/cinefind/internal/usecase/usage"
	"github.com/kailas-cloud/cinefind/internal/version"
)

// Client-facing messages.
const (
	msgQueryRequired   = "검색어가 필요합니다."
	msgQueryTooLong    = "검색어는 500자 이하로 입력해주세요."
	msgInvalidRequest  = "잘못된 요청입니다."
	msgNotFound        = "요청한 정보를 찾을 수 없습니다."
	msgRateLimited     = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요."
	msgUpstream        = "영화 정보 서비스에 연결할 수 없습니다."
	msgInternal        = "서버 내부 오류가 발생했습니다."
	msgAPIRouteMissing = "API 엔드포인트를 찾을 수 없습니다."
	msgPageMissing     = "페이지를 찾을 수 없습니다."
	msgMethodNotAllow  = "허용되지 않는 메서드입니다."
)

// Error codes.
const (
	codeBadRequest  = "bad_request"
	codeNotFound    = "not_found"
	codeRateLimited = "rate_limited"
	codeUpstream    = "upstream_unavailable"
	codeInternal    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ListResponse wraps a listing page.
type ListResponse[T any] struct {
	Results      []T `json:"results"`
	Page         int `json:"page"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}

// Server serves the REST API over chi.
type Server struct {
	search        *searchuc.Service
	browse        *browseuc.Service
	health        *healthuc.Service
	usage         *usageuc.Service
	static        http.Handler
	apiMiddleware []func(http.Handler) http.Handler
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	browse *browseuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search: search,
		browse: browse,
		health: health,
		usage:  usageuc.New(nil),
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeBadRequest, msgInvalidRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound, msgNotFound),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited, msgRateLimited),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusBadGateway, codeUpstream, msgUpstream),
		sentinelHandler(domain.ErrInterpreterUnavailable, http.StatusBadGateway, codeUpstream, msgUpstream),
	}
	return s
}

// WithStaticDir serves the frontend from dir for non-API paths.
func (s *Server) WithStaticDir(dir string) *Server {
	if dir != "" {
		s.static = http.FileServer(http.Dir(dir))
	}
	return s
}

// WithUsage reports interpreter token usage from svc instead of an unlimited budget.
func (s *Server) WithUsage(svc *usageuc.Service) *Server {
	if svc != nil {
		s.usage = svc
	}
	return s
}

// WithAPIMiddleware adds middleware that runs only for /api routes.
func (s *Server) WithAPIMiddleware(mw ...func(http.Handler) http.Handler) *Server {
	s.apiMiddleware = append(s.apiMiddleware, mw...)
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r gochi.Router) {
		r.Use(s.apiMiddleware...)
		r.Post("/search", s.Search)

		r.Route("/movies", func(r gochi.Router) {
			r.Get("/popular", s.listHandler(browseuc.Popular))
			r.Get("/now-playing", s.listHandler(browseuc.NowPlaying))
			r.Get("/top-rated", s.listHandler(browseuc.TopRated))
			r.Get("/upcoming", s.listHandler(browseuc.Upcoming))

			r.Route("/{id}", func(r gochi.Router) {
				r.Get("/", s.GetMovie)
				r.Get("/full", s.GetMovieBundle)
				r.Get("/credits", s.GetMovieCredits)
				r.Get("/images", s.GetMovieImages)
				r.Get("/videos", s.GetMovieVideos)
				r.Get("/recommendations", s.GetRecommendations)
				r.Get("/similar", s.GetSimilar)
			})
		})

		r.Get("/people/{id}", s.GetPerson)
		r.Get("/people/{id}/credits", s.GetPersonCredits)
		r.Get("/tv/{id}", s.GetTV)
		r.Get("/usage", s.GetUsage)

		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusNotFound, codeNotFound, msgAPIRouteMissing)
		})
	})

	r.NotFound(s.notFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, msgMethodNotAllow)
	})
}

// Handler returns a router with the API registered and no middleware.
func (s *Server) Handler() http.Handler {
	r := gochi.NewRouter()
	s.Routes(r)
	return r
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeError(w, http.StatusNotFound, codeNotFound, msgAPIRouteMissing)
		return
	}
	if s.static != nil && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		s.static.ServeHTTP(w, r)
		return
	}
	writeError(w, http.StatusNotFound, codeNotFound, msgPageMissing)
}

// Search handles POST /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, msgQueryRequired)
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if msg, ok := req.validate(); !ok {
		writeError(w, http.StatusBadRequest, codeBadRequest, msg)
		return
	}

	res := s.search.Search(r.Context(), req.Query)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) listHandler(l browseuc.List) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, ok := s.pageParam(w, r)
		if !ok {
			return
		}
		res, err := s.browse.List(r.Context(), l, page)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, listResponse(res))
	}
}

// GetMovie handles GET /api/movies/{id}.
func (s *Server) GetMovie(w http.ResponseWriter, r *http.Request) {
	byID(s, w, r, s.browse.Movie)
}

// GetMovieBundle handles GET /api/movies/{id}/full.
func (s *Server) GetMovieBundle(w http.ResponseWriter, r *http.Request) {
	byID(s, w, r, s.browse.MovieBundle)
}

// GetMovieCredits handles GET /api/movies/{id}/credits.
func (s *Server) GetMovieCredits(w http.ResponseWriter, r *http.Request) {
	byID(s, w, r, s.browse.MovieCredits)
}

// GetMovieImages handles GET /api/movies/{id}/images.
func (s *Server) GetMovieImages(w http.ResponseWriter, r *http.Request) {
	byID(s, w, r, s.browse.MovieImages)
}

// GetMovieVideos handles GET /api/movies/{id}/videos.
func (s *Server) GetMovieVideos(w http.ResponseWriter, r *http.Request) {
	byID(s, w, r, s.browse.MovieVideos)
}

// GetRecommendations handles GET /api/movies/{id}/recommendations.
func (s *Server) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	s.relatedPage(w, r, s.browse.Recommendations)
}

// GetSimilar handles GET /api/movies/{id}/similar.
func (s *Server) GetSimilar(w http.ResponseWriter, r *http.Request) {
	s.relatedPage(w, r, s.browse.Similar)
}

// GetPerson handles GET /api/people/{id}.
func (s *Server) GetPerson(w http.ResponseWriter, r *http.Request) {
	byID(s, w, r, s.browse.Person)
}

// GetPersonCredits handles GET /api/people/{id}/credits.
func (s *Server) GetPersonCredits(w http.ResponseWriter, r *http.Request) {
	byID(s, w, r, s.browse.PersonCredits)
}

// GetTV handles GET /api/tv/{id}.
func (s *Server) GetTV(w http.ResponseWriter, r *http.Request) {
	byID(s, w, r, s.browse.TV)
}

func (s *Server) relatedPage(
	w http.ResponseWriter, r *http.Request,
	fetch func(ctx context.Context, id, page int) (catalog.Page[catalog.Movie], error),
) {
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}
	page, ok := s.pageParam(w, r)
	if !ok {
		return
	}
	res, err := fetch(r.Context(), id, page)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(res))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func byID[T any](s *Server, w http.ResponseWriter, r *http.Request, fetch func(context.Context, int) (T, error)) {
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}
	v, err := fetch(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func listResponse[T any](p catalog.Page[T]) ListResponse[T] {
	results := p.Results
	if results == nil {
		results = []T{}
	}
	return ListResponse[T]{
		Results:      results,
		Page:         p.Page,
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, msgInternal)
}
