package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/cinefind/internal/config"
	logpkg "github.com/kailas-cloud/cinefind/internal/logger"
	"github.com/kailas-cloud/cinefind/internal/metrics"
	chiTransport "github.com/kailas-cloud/cinefind/internal/transport/chi"
	mcpTransport "github.com/kailas-cloud/cinefind/internal/transport/mcp"
	openaiLLM "github.com/kailas-cloud/cinefind/internal/transport/openai"
	"github.com/kailas-cloud/cinefind/internal/transport/tmdb"
	browseuc "github.com/kailas-cloud/cinefind/internal/usecase/browse"
	"github.com/kailas-cloud/cinefind/internal/usecase/budget"
	healthuc "github.com/kailas-cloud/cinefind/internal/usecase/health"
	searchuc "github.com/kailas-cloud/cinefind/internal/usecase/search"
	usageuc "github.com/kailas-cloud/cinefind/internal/usecase/usage"
	"github.com/kailas-cloud/cinefind/internal/version"
)

func main() {
	webMode := flag.Bool("web", false, "serve the REST API and web frontend")
	mcpMode := flag.Bool("mcp", false, "serve MCP tools over stdio (default)")
	bothMode := flag.Bool("both", false, "serve the REST API and MCP tools together")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	runWeb := *webMode || *bothMode
	runMCP := *mcpMode || *bothMode || !*webMode

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config: "+err.Error())
		os.Exit(1)
	}

	// stdout carries JSON-RPC frames in MCP mode
	logOpts := []logpkg.Option{logpkg.WithLevel(cfg.Logging.Level)}
	if runMCP {
		logOpts = append(logOpts, logpkg.WithStderr())
	}
	logger, err := logpkg.NewLogger(env, logOpts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger: "+err.Error())
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cinefind",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Bool("web", runWeb),
		zap.Bool("mcp", runMCP),
	)

	metrics.Register()

	catalog := tmdb.New(&tmdb.Config{
		APIKey:     cfg.TMDB.APIKey,
		BaseURL:    cfg.TMDB.BaseURL,
		Language:   cfg.TMDB.Language,
		Timeout:    time.Duration(cfg.TMDB.TimeoutSec) * time.Second,
		RatePerSec: cfg.TMDB.RatePerSec,
		Burst:      cfg.TMDB.Burst,
		Breaker: tmdb.BreakerConfig{
			Disabled:     cfg.Breaker.Disabled,
			MinRequests:  cfg.Breaker.MinRequests,
			FailureRatio: cfg.Breaker.FailureRatio,
			Interval:     time.Duration(cfg.Breaker.IntervalSec) * time.Second,
			OpenTimeout:  time.Duration(cfg.Breaker.OpenTimeoutSec) * time.Second,
			HalfOpenMax:  cfg.Breaker.HalfOpenMax,
		},
		Logger: logger,
	})

	// Pass nil interfaces (not typed nil pointers) when no interpreter is configured.
	var (
		interp       searchuc.Interpreter
		narr         searchuc.Narrator
		interpHealth healthuc.InterpreterChecker
		tokenBudget  openaiLLM.TokenBudget
		budgetReader usageuc.BudgetReader
	)
	if cfg.OpenAI.DailyTokenLimit > 0 || cfg.OpenAI.MonthlyTokenLimit > 0 {
		tracker := budget.NewTracker(cfg.OpenAI.Model,
			cfg.OpenAI.DailyTokenLimit, cfg.OpenAI.MonthlyTokenLimit,
			budget.ParseAction(cfg.OpenAI.BudgetAction), logger)
		tokenBudget, budgetReader = tracker, tracker
		logger.Info("Token budget enabled",
			zap.Int64("daily_limit", cfg.OpenAI.DailyTokenLimit),
			zap.Int64("monthly_limit", cfg.OpenAI.MonthlyTokenLimit),
			zap.String("action", cfg.OpenAI.BudgetAction),
		)
	}
	if cfg.OpenAI.APIKey != "" {
		llm := openaiLLM.New(&openaiLLM.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Timeout: time.Duration(cfg.OpenAI.TimeoutSec) * time.Second,
			Budget:  tokenBudget,
			Logger:  logger,
		})
		interp, narr, interpHealth = llm, llm, llm
		logger.Info("Interpreter configured", zap.String("model", cfg.OpenAI.Model))
	} else {
		logger.Warn("openai.api_key is empty, searches run on fallback parameters")
	}

	searchSvc := searchuc.New(catalog, interp, narr).
		WithResultCap(cfg.Search.ResultCap).
		WithWeights(searchuc.Weights{
			Season:  cfg.Search.SeasonWeight,
			Setting: cfg.Search.SettingWeight,
			Keyword: cfg.Search.KeywordWeight,
		})
	if cfg.Search.DisableNarration {
		searchSvc.WithoutNarration()
	}
	browseSvc := browseuc.New(catalog)
	healthSvc := healthuc.New(catalog, interpHealth)
	usageSvc := usageuc.New(budgetReader)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	if runWeb {
		srv := newHTTPServer(cfg, searchSvc, browseSvc, healthSvc, usageSvc, logger)
		g.Go(func() error {
			logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("Shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("http shutdown: %w", err)
			}
			return nil
		})
	}

	if runMCP {
		tools := mcpTransport.NewServer(cfg.MCP.Name, version.Version, searchSvc, browseSvc, logger)
		g.Go(func() error {
			logger.Info("Serving MCP over stdio", zap.String("name", cfg.MCP.Name))
			err := tools.Serve(gctx, os.Stdin, os.Stdout)
			if !runWeb {
				// stdin closed: nothing left to serve
				stop()
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Server error", zap.Error(err))
		return
	}
	logger.Info("Server stopped gracefully")
}

func newHTTPServer(
	cfg config.Config,
	search *searchuc.Service,
	browse *browseuc.Service,
	health *healthuc.Service,
	usage *usageuc.Service,
	logger *zap.Logger,
) *http.Server {
	mw := chiTransport.MiddlewareConfig{
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		MaxAge:            time.Duration(cfg.CORS.MaxAgeSec) * time.Second,
		RateLimitDisabled: cfg.RateLimit.Disabled,
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitWindow:   time.Duration(cfg.RateLimit.WindowSec) * time.Second,
	}

	server := chiTransport.NewServer(search, browse, health, logger).
		WithStaticDir(cfg.Web.StaticDir).
		WithUsage(usage).
		WithAPIMiddleware(chiTransport.RateLimit(mw))

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.Use(chiTransport.CORS(mw))
	server.Routes(r)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           r,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Error: "서버 내부 오류가 발생했습니다.",
						Code:  "internal_error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
