package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the cinefind configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	TMDB      TMDBConfig      `yaml:"tmdb"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Search    SearchConfig    `yaml:"search"`
	Breaker   BreakerConfig   `yaml:"breaker"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	CORS      CORSConfig      `yaml:"cors"`
	Web       WebConfig       `yaml:"web"`
	MCP       MCPConfig       `yaml:"mcp"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// TMDBConfig holds catalog API settings.
type TMDBConfig struct {
	APIKey     string  `yaml:"api_key"`
	BaseURL    string  `yaml:"base_url"`
	Language   string  `yaml:"language"`
	TimeoutSec int     `yaml:"timeout_sec"`
	RatePerSec float64 `yaml:"rate_per_sec"` // client-side limit, 0 = default
	Burst      int     `yaml:"burst"`
}

// OpenAIConfig holds language-interpretation service settings.
// An empty APIKey disables the interpreter; searches then run on fallback parameters.
type OpenAIConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`

	// Token budget, 0 = unlimited. Counters live in memory and reset at UTC day/month boundaries.
	DailyTokenLimit   int64  `yaml:"daily_token_limit"`
	MonthlyTokenLimit int64  `yaml:"monthly_token_limit"`
	BudgetAction      string `yaml:"budget_action"` // "warn" | "reject"
}

// SearchConfig holds search pipeline settings.
type SearchConfig struct {
	ResultCap        int  `yaml:"result_cap"`
	DisableNarration bool `yaml:"disable_narration"`
	SeasonWeight     int  `yaml:"season_weight"`
	SettingWeight    int  `yaml:"setting_weight"`
	KeywordWeight    int  `yaml:"keyword_weight"`
}

// BreakerConfig holds catalog circuit breaker settings.
type BreakerConfig struct {
	Disabled       bool    `yaml:"disabled"`
	MinRequests    uint32  `yaml:"min_requests"`
	FailureRatio   float64 `yaml:"failure_ratio"`
	IntervalSec    int     `yaml:"interval_sec"`
	OpenTimeoutSec int     `yaml:"open_timeout_sec"`
	HalfOpenMax    uint32  `yaml:"half_open_max"`
}

// RateLimitConfig holds inbound per-IP rate limiting settings.
type RateLimitConfig struct {
	Disabled  bool `yaml:"disabled"`
	Requests  int  `yaml:"requests"`
	WindowSec int  `yaml:"window_sec"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxAgeSec      int      `yaml:"max_age_sec"`
}

// WebConfig holds static frontend settings.
type WebConfig struct {
	StaticDir string `yaml:"static_dir"` // empty = no static files
}

// MCPConfig holds tool server settings.
type MCPConfig struct {
	Name string `yaml:"name"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references, then applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 3030
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}

	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = "https://api.themoviedb.org/3"
	}
	if c.TMDB.Language == "" {
		c.TMDB.Language = "ko-KR"
	}
	if c.TMDB.TimeoutSec <= 0 {
		c.TMDB.TimeoutSec = 10
	}
	if c.TMDB.RatePerSec <= 0 {
		c.TMDB.RatePerSec = 40
	}
	if c.TMDB.Burst <= 0 {
		c.TMDB.Burst = 20
	}

	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-3.5-turbo"
	}
	if c.OpenAI.TimeoutSec <= 0 {
		c.OpenAI.TimeoutSec = 20
	}
	if c.OpenAI.BudgetAction == "" {
		c.OpenAI.BudgetAction = "warn"
	}

	if c.Search.ResultCap <= 0 {
		c.Search.ResultCap = 20
	}
	if c.Search.SeasonWeight <= 0 {
		c.Search.SeasonWeight = 2
	}
	if c.Search.SettingWeight <= 0 {
		c.Search.SettingWeight = 1
	}
	if c.Search.KeywordWeight <= 0 {
		c.Search.KeywordWeight = 1
	}

	if c.Breaker.MinRequests == 0 {
		c.Breaker.MinRequests = 10
	}
	if c.Breaker.FailureRatio <= 0 {
		c.Breaker.FailureRatio = 0.6
	}
	if c.Breaker.IntervalSec <= 0 {
		c.Breaker.IntervalSec = 60
	}
	if c.Breaker.OpenTimeoutSec <= 0 {
		c.Breaker.OpenTimeoutSec = 30
	}
	if c.Breaker.HalfOpenMax == 0 {
		c.Breaker.HalfOpenMax = 3
	}

	if c.RateLimit.Requests <= 0 {
		c.RateLimit.Requests = 60
	}
	if c.RateLimit.WindowSec <= 0 {
		c.RateLimit.WindowSec = 60
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if c.CORS.MaxAgeSec <= 0 {
		c.CORS.MaxAgeSec = 300
	}

	if c.MCP.Name == "" {
		c.MCP.Name = "cinefind"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("tmdb.api_key is required")
	}
	if !strings.HasPrefix(c.TMDB.BaseURL, "http://") && !strings.HasPrefix(c.TMDB.BaseURL, "https://") {
		return fmt.Errorf("tmdb.base_url must be an http(s) URL, got %q", c.TMDB.BaseURL)
	}
	if c.Search.ResultCap > 100 {
		return fmt.Errorf("search.result_cap must be at most 100, got %d", c.Search.ResultCap)
	}
	if c.OpenAI.DailyTokenLimit < 0 || c.OpenAI.MonthlyTokenLimit < 0 {
		return fmt.Errorf("openai token limits must not be negative")
	}
	if c.OpenAI.BudgetAction != "warn" && c.OpenAI.BudgetAction != "reject" {
		return fmt.Errorf("openai.budget_action must be warn or reject, got %q", c.OpenAI.BudgetAction)
	}
	if c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("breaker.failure_ratio must be in (0, 1], got %v", c.Breaker.FailureRatio)
	}
	if c.Web.StaticDir != "" {
		info, err := os.Stat(c.Web.StaticDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("web.static_dir %q is not a directory", c.Web.StaticDir)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
