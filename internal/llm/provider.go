package llm

import "context"

// Provider defines the interface for completion backends. The engine
// treats the backend as a black box: one prompt in, one textual
// completion out. Providers must honor context cancellation so an
// abandoned verification does not leave work behind.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete generates a single completion for the request
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for a completion call.
type CompletionRequest struct {
	// System is the system/instruction message
	System string

	// Prompt is the user message containing the document and schema
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// JSONOnly asks the provider for a raw JSON object with no
	// surrounding delimiters, where the API supports enforcing it
	JSONOnly bool
}

// CompletionResponse contains the backend's completion output.
type CompletionResponse struct {
	// Text is the raw completion text
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds completion backend configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Model:     "",
		Timeout:   30,
		MaxTokens: 1500,
	}
}
