package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rentproof/rentproof/internal/cache"
	"github.com/rentproof/rentproof/internal/docsource"
	"github.com/rentproof/rentproof/internal/extract"
	"github.com/rentproof/rentproof/internal/llm"
	"github.com/rentproof/rentproof/internal/model"
	"github.com/rentproof/rentproof/internal/verify"
	"github.com/rentproof/rentproof/internal/worker"
)

// buildEngine wires the verification engine from configuration: backend
// provider, rate limiter, extractor, cache.
func buildEngine(cfg *model.Config, log *slog.Logger) (*verify.Engine, error) {
	var extractor verify.RecordExtractor

	if cfg.Engine.Strategy != model.StrategyDirect {
		if err := resolveAPIKey(&cfg.LLM); err != nil {
			return nil, err
		}

		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return nil, err
		}
		if provider == nil {
			return nil, fmt.Errorf("strategy %q requires an extraction backend (set --llm-provider)", cfg.Engine.Strategy)
		}

		if cfg.Output.Verbose {
			preflightBackend(provider, log)
		}

		limiter := worker.NewLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst)
		extractor, err = extract.NewExtractor(provider, limiter, log)
		if err != nil {
			return nil, err
		}
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	return verify.NewEngine(cfg.Engine, extractor, store, cfg.Cache, log)
}

// buildLoader wires the document loader with per-host rate limiting.
func buildLoader(cfg *model.Config) *docsource.Loader {
	limiter := worker.NewLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst)
	return docsource.NewLoader(docsource.NewFetcher(cfg.HTTP, limiter))
}

// preflightBackend probes the extraction backend once and warns when it
// is unreachable. Verification still proceeds: the fallback strategy
// covers a dead backend, and a structured-only run surfaces the failure
// on the actual call.
func preflightBackend(provider llm.Provider, log *slog.Logger) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if provider.IsAvailable(ctx) {
		return true
	}
	log.Warn("llm.backend_unavailable", "provider", provider.Name())
	return false
}

// resolveAPIKey fills in the backend API key from the environment when
// the config does not set one.
func resolveAPIKey(llmCfg *model.LLMConfig) error {
	if llmCfg.APIKey != "" {
		return nil
	}

	switch llmCfg.Provider {
	case "openai":
		llmCfg.APIKey = os.Getenv("OPENAI_API_KEY")
		if llmCfg.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		llmCfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if llmCfg.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			llmCfg.BaseURL = baseURL
		}
	}
	return nil
}
