package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{TMDB: TMDBConfig{APIKey: "tmdb-key"}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_MissingTMDBKey(t *testing.T) {
	cfg := validConfig()
	cfg.TMDB.APIKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing tmdb key")
	}
	if err.Error() != "tmdb.api_key is required" {
		t.Errorf("unexpected error: %q", err.Error())
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_BadBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.TMDB.BaseURL = "api.themoviedb.org/3"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for scheme-less base url")
	}
}

func TestValidate_ResultCapAndRatio(t *testing.T) {
	cfg := validConfig()
	cfg.Search.ResultCap = 500
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for oversized result cap")
	}

	cfg = validConfig()
	cfg.Breaker.FailureRatio = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for failure ratio above 1")
	}
}

func TestValidate_Budget(t *testing.T) {
	cfg := validConfig()
	if cfg.OpenAI.BudgetAction != "warn" {
		t.Errorf("expected default budget action warn, got %q", cfg.OpenAI.BudgetAction)
	}

	cfg.OpenAI.BudgetAction = "block"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown budget action")
	}

	cfg = validConfig()
	cfg.OpenAI.DailyTokenLimit = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative token limit")
	}

	cfg = validConfig()
	cfg.OpenAI.MonthlyTokenLimit = 1000000
	cfg.OpenAI.BudgetAction = "reject"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_StaticDir(t *testing.T) {
	cfg := validConfig()
	cfg.Web.StaticDir = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error for existing dir: %v", err)
	}

	cfg.Web.StaticDir = cfg.Web.StaticDir + "/missing"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing static dir")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 3030 {
		t.Errorf("expected Port=3030, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("unexpected BaseURL %q", cfg.TMDB.BaseURL)
	}
	if cfg.TMDB.Language != "ko-KR" {
		t.Errorf("expected Language=ko-KR, got %q", cfg.TMDB.Language)
	}
	if cfg.OpenAI.Model != "gpt-3.5-turbo" {
		t.Errorf("unexpected Model %q", cfg.OpenAI.Model)
	}
	if cfg.Search.ResultCap != 20 {
		t.Errorf("expected ResultCap=20, got %d", cfg.Search.ResultCap)
	}
	if cfg.Search.SeasonWeight != 2 || cfg.Search.SettingWeight != 1 || cfg.Search.KeywordWeight != 1 {
		t.Errorf("unexpected weights: %+v", cfg.Search)
	}
	if cfg.Breaker.MinRequests != 10 || cfg.Breaker.FailureRatio != 0.6 {
		t.Errorf("unexpected breaker defaults: %+v", cfg.Breaker)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.MCP.Name != "cinefind" {
		t.Errorf("unexpected MCP name %q", cfg.MCP.Name)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080, ReadTimeoutSec: 30},
		TMDB:   TMDBConfig{Language: "en-US", RatePerSec: 5},
		Search: SearchConfig{ResultCap: 10, SeasonWeight: 3},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 || cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("http overridden: %+v", cfg.HTTP)
	}
	if cfg.TMDB.Language != "en-US" || cfg.TMDB.RatePerSec != 5 {
		t.Errorf("tmdb overridden: %+v", cfg.TMDB)
	}
	if cfg.Search.ResultCap != 10 || cfg.Search.SeasonWeight != 3 {
		t.Errorf("search overridden: %+v", cfg.Search)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("CINEFIND_TEST_TMDB_KEY", "from-env")

	cfg, err := Parse([]byte(`
http:
  port: ${CINEFIND_TEST_PORT:-4040}
tmdb:
  api_key: ${CINEFIND_TEST_TMDB_KEY}
openai:
  api_key: ${CINEFIND_TEST_OPENAI_KEY:-}
search:
  disable_narration: true
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HTTP.Port != 4040 {
		t.Errorf("expected default port from expansion, got %d", cfg.HTTP.Port)
	}
	if cfg.TMDB.APIKey != "from-env" {
		t.Errorf("expected key from env, got %q", cfg.TMDB.APIKey)
	}
	if cfg.OpenAI.APIKey != "" {
		t.Errorf("expected empty openai key, got %q", cfg.OpenAI.APIKey)
	}
	if !cfg.Search.DisableNarration {
		t.Error("expected narration disabled")
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("tmdb: [unclosed"))
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("expected parse error, got %v", err)
	}

	_, err = Parse([]byte("http:\n  port: 8080\n"))
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("expected validation error, got %v", err)
	}
}
