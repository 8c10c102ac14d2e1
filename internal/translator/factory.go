package translator

import (
	"fmt"
	"net/http"
	"strings"
)

// ProviderConfig selects and configures the language-model provider.
type ProviderConfig struct {
	// Provider is "openai", "anthropic" or "" to pick by available key.
	Provider      string
	OpenAIKey     string
	OpenAIBaseURL string
	AnthropicKey  string
	Model         string
}

// NewProvider returns the configured provider, or nil when no credential is
// set for it. A missing credential is not an error: the rules take over.
func NewProvider(cfg ProviderConfig, client *http.Client) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "auto":
		if cfg.OpenAIKey != "" {
			return NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.Model, client), nil
		}
		if cfg.AnthropicKey != "" {
			return NewAnthropicProvider(cfg.AnthropicKey, cfg.Model), nil
		}
		return nil, nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, nil
		}
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.Model, client), nil
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, nil
		}
		return NewAnthropicProvider(cfg.AnthropicKey, cfg.Model), nil
	case "none", "rules":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
