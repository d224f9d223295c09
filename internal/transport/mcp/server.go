// Package mcp serves catalog lookups and natural-language search as MCP tools over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinefind/internal/domain"
	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	"github.com/kailas-cloud/cinefind/internal/domain/search/kind"
	"github.com/kailas-cloud/cinefind/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/cinefind/internal/logger"
	browseuc "github.com/kailas-cloud/cinefind/internal/usecase/browse"
	searchuc "github.com/kailas-cloud/cinefind/internal/usecase/search"
)

const movieURIPrefix = "movie://"

// Server is the MCP tool server.
type Server struct {
	search *searchuc.Service
	browse *browseuc.Service
	logger *zap.Logger
	mcp    *mcpserver.MCPServer
}

// NewServer creates the tool server and registers every tool and resource.
func NewServer(name, version string, search *searchuc.Service, browse *browseuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{search: search, browse: browse, logger: logger}
	s.mcp = mcpserver.NewMCPServer(name, version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithToolHandlerMiddleware(s.withLogger),
		mcpserver.WithRecovery(),
	)
	s.mcp.AddTools(s.tools()...)
	s.mcp.AddResourceTemplate(
		mcpgo.NewResourceTemplate(movieURIPrefix+"{movieId}", "movie-by-id",
			mcpgo.WithTemplateDescription("TMDB ID로 영화 정보를 조회합니다."),
			mcpgo.WithTemplateMIMEType("text/plain"),
		),
		s.readMovie,
	)
	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve speaks JSON-RPC on in/out until ctx is done or in is closed.
// out carries protocol frames only; diagnostics go to the logger.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))
	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp stdio: %w", err)
	}
	return nil
}

// withLogger puts a per-call logger in the context and logs one line per call.
func (s *Server) withLogger(next mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		log := s.logger.With(zap.String("tool", req.Params.Name))
		start := time.Now()

		res, err := next(logpkg.ContextWithLogger(ctx, log), req)

		log.Info("tool_call",
			zap.Duration("latency", time.Since(start)),
			zap.Bool("tool_error", res != nil && res.IsError),
			zap.Error(err),
		)
		return res, err
	}
}

func pageOption() mcpgo.ToolOption {
	return mcpgo.WithNumber("page",
		mcpgo.Description("페이지 번호 (기본값 1)"),
		mcpgo.Min(1),
		mcpgo.DefaultNumber(1),
	)
}

func queryOption() mcpgo.ToolOption {
	return mcpgo.WithString("query", mcpgo.Required(), mcpgo.Description("검색어"))
}

func idOption(name, desc string) mcpgo.ToolOption {
	return mcpgo.WithNumber(name, mcpgo.Required(), mcpgo.Min(1), mcpgo.Description(desc))
}

func (s *Server) tools() []mcpserver.ServerTool {
	return []mcpserver.ServerTool{
		{
			Tool: mcpgo.NewTool("search-movies",
				mcpgo.WithDescription("영화 제목, 키워드, 장르로 영화를 검색합니다. 한국영화, 외국영화, 최신영화, 개봉영화 등 모든 영화 검색에 사용됩니다."),
				queryOption(), pageOption()),
			Handler: s.searchMovies,
		},
		{
			Tool: mcpgo.NewTool("natural-search",
				mcpgo.WithDescription("\"가을 배경의 한국 영화\"처럼 자연어로 영화, TV 프로그램, 인물을 찾고 추천 설명을 함께 제공합니다."),
				mcpgo.WithString("query", mcpgo.Required(), mcpgo.Description("자연어 검색 문장"))),
			Handler: s.naturalSearch,
		},
		{
			Tool: mcpgo.NewTool("get-now-playing-movies",
				mcpgo.WithDescription("현재 극장에서 상영 중인 영화 목록을 가져옵니다. 최신 개봉작, 현재 상영작 정보를 제공합니다."),
				pageOption()),
			Handler: s.listTool(browseuc.NowPlaying, "현재 상영 중인 영화", "현재 상영 중인 영화 정보 없음"),
		},
		{
			Tool: mcpgo.NewTool("get-upcoming-movies",
				mcpgo.WithDescription("개봉 예정인 영화 목록을 가져옵니다. 앞으로 개봉할 영화, 예정작 정보를 제공합니다."),
				pageOption()),
			Handler: s.listTool(browseuc.Upcoming, "개봉 예정 영화", "개봉 예정 영화 정보 없음"),
		},
		{
			Tool: mcpgo.NewTool("get-popular-movies",
				mcpgo.WithDescription("현재 인기 있는 영화 순위를 가져옵니다. 화제작, 인기작, 트렌딩 영화 정보를 제공합니다."),
				pageOption()),
			Handler: s.listTool(browseuc.Popular, "인기 영화", "인기 영화 정보 없음"),
		},
		{
			Tool: mcpgo.NewTool("get-top-rated-movies",
				mcpgo.WithDescription("평점이 높은 영화 순위를 가져옵니다. 명작, 고평점 영화, 추천작 정보를 제공합니다."),
				pageOption()),
			Handler: s.listTool(browseuc.TopRated, "평점 높은 영화", "평점 높은 영화 정보 없음"),
		},
		{
			Tool: mcpgo.NewTool("get-movie-details",
				mcpgo.WithDescription("특정 영화의 상세 정보를 가져옵니다. 줄거리, 출연진, 제작진, 평점, 박스오피스 등 자세한 정보를 제공합니다."),
				idOption("movieId", "TMDB 영화 ID")),
			Handler: byID(s, "movieId", s.browse.Movie, movieDetails),
		},
		{
			Tool: mcpgo.NewTool("get-movie-credits",
				mcpgo.WithDescription("영화의 출연진과 제작진 정보를 가져옵니다. 배우, 감독, 제작자 등의 정보를 제공합니다."),
				idOption("movieId", "TMDB 영화 ID")),
			Handler: byID(s, "movieId", s.browse.MovieCredits, movieCredits),
		},
		{
			Tool: mcpgo.NewTool("get-movie-images",
				mcpgo.WithDescription("영화의 이미지를 가져옵니다. 포스터, 백드롭 등의 이미지 정보를 제공합니다."),
				idOption("movieId", "TMDB 영화 ID")),
			Handler: byID(s, "movieId", s.browse.MovieImages, movieImages),
		},
		{
			Tool: mcpgo.NewTool("get-movie-videos",
				mcpgo.WithDescription("영화의 예고편, 티저, 클립 등의 비디오 정보를 가져옵니다."),
				idOption("movieId", "TMDB 영화 ID")),
			Handler: byID(s, "movieId", s.browse.MovieVideos, movieVideos),
		},
		{
			Tool: mcpgo.NewTool("get-movie-recommendations",
				mcpgo.WithDescription("특정 영화를 기반으로 추천 영화 목록을 가져옵니다. 비슷한 취향의 영화를 제안합니다."),
				idOption("movieId", "TMDB 영화 ID"), pageOption()),
			Handler: s.relatedTool(s.browse.Recommendations, "추천 영화", "추천 영화 정보 없음"),
		},
		{
			Tool: mcpgo.NewTool("get-similar-movies",
				mcpgo.WithDescription("특정 영화와 비슷한 장르나 스타일의 영화 목록을 가져옵니다."),
				idOption("movieId", "TMDB 영화 ID"), pageOption()),
			Handler: s.relatedTool(s.browse.Similar, "비슷한 영화", "비슷한 영화 정보 없음"),
		},
		{
			Tool: mcpgo.NewTool("search-person",
				mcpgo.WithDescription("배우, 감독, 제작자 등 영화 관련 인물을 검색합니다. 출연작, 필모그래피 정보를 제공합니다."),
				queryOption(), pageOption()),
			Handler: s.searchPerson,
		},
		{
			Tool: mcpgo.NewTool("get-person-details",
				mcpgo.WithDescription("특정 인물의 상세 정보를 가져옵니다. 생년월일, 출생지, 경력 등을 제공합니다."),
				idOption("personId", "TMDB 인물 ID")),
			Handler: byID(s, "personId", s.browse.Person, personDetails),
		},
		{
			Tool: mcpgo.NewTool("get-person-credits",
				mcpgo.WithDescription("특정 인물의 출연작이나 참여작 목록을 가져옵니다. 배우의 필모그래피나 감독의 작품 목록을 제공합니다."),
				idOption("personId", "TMDB 인물 ID")),
			Handler: byID(s, "personId", s.browse.PersonCredits, personCredits),
		},
		{
			Tool: mcpgo.NewTool("search-tv",
				mcpgo.WithDescription("TV 드라마, 예능, 다큐멘터리 등을 검색합니다. 제목이나 키워드로 TV 프로그램을 찾을 수 있습니다."),
				queryOption(), pageOption()),
			Handler: s.searchTV,
		},
		{
			Tool: mcpgo.NewTool("get-tv-details",
				mcpgo.WithDescription("특정 TV 프로그램의 상세 정보를 가져옵니다. 줄거리, 출연진, 방영 정보 등을 제공합니다."),
				idOption("tvId", "TMDB TV 프로그램 ID")),
			Handler: byID(s, "tvId", s.browse.TV, tvDetails),
		},
	}
}

func (s *Server) searchMovies(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	query, errRes := queryArg(req)
	if errRes != nil {
		return errRes, nil
	}
	page := browseuc.ClampPage(req.GetInt("page", 1))

	res, err := s.browse.SearchMovies(ctx, query, page)
	if err != nil {
		return s.fail(ctx, err), nil
	}
	if len(res.Results) == 0 {
		return mcpgo.NewToolResultText(fmt.Sprintf("\"%s\"에 대한 검색 결과가 없습니다.", query)), nil
	}
	return mcpgo.NewToolResultText(fmt.Sprintf("\"%s\" 검색 결과 (총 %d개 중 %d페이지)\n\n%s",
		query, res.TotalResults, page, movieEntries(res.Results))), nil
}

func (s *Server) searchPerson(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	query, errRes := queryArg(req)
	if errRes != nil {
		return errRes, nil
	}
	page := browseuc.ClampPage(req.GetInt("page", 1))

	res, err := s.browse.SearchPeople(ctx, query, page)
	if err != nil {
		return s.fail(ctx, err), nil
	}
	if len(res.Results) == 0 {
		return mcpgo.NewToolResultText(fmt.Sprintf("\"%s\"에 대한 인물 검색 결과가 없습니다.", query)), nil
	}
	return mcpgo.NewToolResultText(fmt.Sprintf("\"%s\" 인물 검색 결과 (총 %d개 중 %d페이지)\n\n%s",
		query, res.TotalResults, page, personEntries(res.Results))), nil
}

func (s *Server) searchTV(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	query, errRes := queryArg(req)
	if errRes != nil {
		return errRes, nil
	}
	page := browseuc.ClampPage(req.GetInt("page", 1))

	res, err := s.browse.SearchTV(ctx, query, page)
	if err != nil {
		return s.fail(ctx, err), nil
	}
	if len(res.Results) == 0 {
		return mcpgo.NewToolResultText(fmt.Sprintf("\"%s\"에 대한 TV 프로그램 검색 결과가 없습니다.", query)), nil
	}
	return mcpgo.NewToolResultText(fmt.Sprintf("\"%s\" TV 프로그램 검색 결과 (총 %d개 중 %d페이지)\n\n%s",
		query, res.TotalResults, page, showEntries(res.Results))), nil
}

func (s *Server) naturalSearch(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	query, errRes := queryArg(req)
	if errRes != nil {
		return errRes, nil
	}
	res := s.search.Search(ctx, query)
	return mcpgo.NewToolResultText(naturalSearchText(res)), nil
}

func naturalSearchText(res result.Result) string {
	if res.Len() == 0 {
		return fmt.Sprintf("\"%s\"에 대한 검색 결과가 없습니다.", res.OriginalQuery())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\"%s\" 검색 결과 (%s, %d개)\n\n", res.OriginalQuery(), res.Type(), res.Len())
	if rec := res.Recommendation(); rec != "" {
		b.WriteString(rec)
		b.WriteString("\n\n")
	}
	switch res.Type() {
	case kind.TV:
		b.WriteString(showEntries(res.Shows()))
	case kind.Person:
		b.WriteString(personEntries(res.People()))
	default:
		b.WriteString(movieEntries(res.Movies()))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Server) listTool(l browseuc.List, title, empty string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		res, err := s.browse.List(ctx, l, req.GetInt("page", 1))
		if err != nil {
			return s.fail(ctx, err), nil
		}
		return mcpgo.NewToolResultText(section(title, shortMovieList(res.Results), empty)), nil
	}
}

type relatedFunc = func(ctx context.Context, id, page int) (catalog.Page[catalog.Movie], error)

func (s *Server) relatedTool(fetch relatedFunc, title, empty string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		id, errRes := idArg(req, "movieId")
		if errRes != nil {
			return errRes, nil
		}
		res, err := fetch(ctx, id, req.GetInt("page", 1))
		if err != nil {
			return s.fail(ctx, err), nil
		}
		return mcpgo.NewToolResultText(section(title, shortMovieList(res.Results), empty)), nil
	}
}

func byID[T any](
	s *Server, key string,
	fetch func(context.Context, int) (T, error),
	render func(T) string,
) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		id, errRes := idArg(req, key)
		if errRes != nil {
			return errRes, nil
		}
		v, err := fetch(ctx, id)
		if err != nil {
			return s.fail(ctx, err), nil
		}
		return mcpgo.NewToolResultText(render(v)), nil
	}
}

func (s *Server) readMovie(ctx context.Context, req mcpgo.ReadResourceRequest) ([]mcpgo.ResourceContents, error) {
	uri := req.Params.URI
	raw := strings.TrimPrefix(uri, movieURIPrefix)
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		raw = raw[i+1:]
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid movie uri %q: %w", uri, domain.ErrInvalidInput)
	}

	m, err := s.browse.Movie(ctx, id)
	if err != nil {
		s.logger.Warn("movie resource failed", zap.String("uri", uri), zap.Error(err))
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}
	return []mcpgo.ResourceContents{
		mcpgo.TextResourceContents{URI: uri, MIMEType: "text/plain", Text: movieResource(m)},
	}, nil
}

func queryArg(req mcpgo.CallToolRequest) (string, *mcpgo.CallToolResult) {
	q, err := req.RequireString("query")
	if err != nil || strings.TrimSpace(q) == "" {
		return "", mcpgo.NewToolResultError("검색어를 입력해주세요.")
	}
	return strings.TrimSpace(q), nil
}

func idArg(req mcpgo.CallToolRequest, key string) (int, *mcpgo.CallToolResult) {
	id, err := req.RequireInt(key)
	if err != nil || id <= 0 {
		return 0, mcpgo.NewToolResultError(fmt.Sprintf("%s는 양의 정수여야 합니다.", key))
	}
	return id, nil
}

// fail logs err and returns a tool-level error result with a client-safe message.
func (s *Server) fail(ctx context.Context, err error) *mcpgo.CallToolResult {
	logpkg.FromContext(ctx).Warn("tool call failed", zap.Error(err))

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return mcpgo.NewToolResultError("요청한 정보를 찾을 수 없습니다.")
	case errors.Is(err, domain.ErrInvalidInput):
		return mcpgo.NewToolResultError("잘못된 요청입니다.")
	case errors.Is(err, domain.ErrRateLimited):
		return mcpgo.NewToolResultError("요청이 너무 많습니다. 잠시 후 다시 시도해주세요.")
	default:
		return mcpgo.NewToolResultError("영화 정보를 가져오는 중 오류가 발생했습니다.")
	}
}
