package llm

import "fmt"

// ProviderConfig is the provider-agnostic configuration the factory
// consumes. Zero values fall back to per-provider defaults.
type ProviderConfig struct {
	Provider string // "ollama" (default), "openai", or "anthropic"
	BaseURL  string
	APIKey   string
	Model    string
}

// NewClient creates the appropriate provider client for the configuration.
func NewClient(cfg ProviderConfig) (Client, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL}), nil
	case "anthropic":
		return NewAnthropicClient(AnthropicConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL}), nil
	case "ollama", "":
		return NewOllamaClient(OllamaConfig{BaseURL: cfg.BaseURL, Model: cfg.Model}), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}
