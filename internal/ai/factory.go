package ai

import (
	"context"
)

// ProviderConfig is the explicit input to provider selection. Selection is a
// static choice at startup; nothing here reads the environment.
type ProviderConfig struct {
	// Backend names the live variant: "openai" or "gemini".
	Backend string
	// APIKey is the live-generation credential. Empty selects the mock.
	APIKey string
	// Model overrides the backend's default model name.
	Model string
	// ForceMock selects the mock even when a credential is present.
	ForceMock bool
}

// NewProvider returns the Provider variant for cfg: the mock when no
// credential is configured or mock mode is forced, otherwise the named
// live backend (defaulting to OpenAI).
func NewProvider(ctx context.Context, cfg ProviderConfig) (Provider, error) {
	if cfg.ForceMock || cfg.APIKey == "" {
		return NewMockProvider(), nil
	}
	switch cfg.Backend {
	case "gemini":
		return NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	default:
		return NewOpenAIProvider(cfg.APIKey, cfg.Model)
	}
}
