package model

import "time"

// Strategy selects how comparable data is produced from the document.
type Strategy string

const (
	// StrategyDirect only runs substring matching over the raw text.
	StrategyDirect Strategy = "direct"
	// StrategyStructured requires the extraction backend; if it fails
	// the verification fails with VerificationUnavailable.
	StrategyStructured Strategy = "structured"
	// StrategyStructuredWithFallback prefers the backend and falls back
	// to direct matching for the request when extraction fails.
	StrategyStructuredWithFallback Strategy = "structured-with-fallback"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyDirect, StrategyStructured, StrategyStructuredWithFallback:
		return true
	}
	return false
}

// Config is the complete application configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	LLM    LLMConfig    `yaml:"llm"`
	HTTP   HTTPConfig   `yaml:"http"`
	Cache  CacheConfig  `yaml:"cache"`
	Rate   RateConfig   `yaml:"rate"`
	Output OutputConfig `yaml:"output"`
}

// EngineConfig controls the verification engine.
type EngineConfig struct {
	// Strategy: direct, structured, or structured-with-fallback.
	Strategy Strategy `yaml:"strategy"`
	// ExtractionTimeout bounds the single outbound backend call.
	ExtractionTimeout time.Duration `yaml:"extraction_timeout"`
	// DepositPattern overrides the deposit extraction regex. Must keep
	// exactly one capture group for the amount. Empty means built-in.
	DepositPattern string `yaml:"deposit_pattern"`
}

// LLMConfig holds extraction backend settings.
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama".
	Provider string `yaml:"provider"`
	// Model name (provider-specific).
	Model string `yaml:"model"`
	// APIKey for OpenAI/Anthropic.
	APIKey string `yaml:"api_key"`
	// BaseURL for custom endpoints (e.g., Ollama).
	BaseURL string `yaml:"base_url"`
	// Timeout for API requests, seconds.
	Timeout int `yaml:"timeout"`
	// MaxTokens for response generation.
	MaxTokens int `yaml:"max_tokens"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// HTTPConfig controls document fetching over HTTP.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// CacheConfig controls the in-process extraction cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// RateConfig bounds the backend call rate per provider.
type RateConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// OutputConfig controls CLI output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Strategy:          StrategyStructuredWithFallback,
			ExtractionTimeout: 30 * time.Second,
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "",
			Timeout:   30,
			MaxTokens: 1500,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Rentproof/0.1 (+https://github.com/rentproof/rentproof)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Rate: RateConfig{
			RequestsPerSecond: 2,
			Burst:             5,
		},
	}
}
