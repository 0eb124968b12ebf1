package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/lingodrill/internal/store"
	"go.uber.org/zap"
)

// ErrNoCredentials is returned by NewProviderFromEnv when no provider has
// an API key configured.
var ErrNoCredentials = errors.New("no LLM credentials configured")

// EventRecorder receives one event per LLM call.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, events EventRecorder, log *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	logged := WithLogging(base, events, log)
	return WithRetry(logged, cfg.Retry, log), nil
}

// NewProviderFromEnv resolves configuration from the environment and
// builds a provider. It returns ErrNoCredentials when no key is set, which
// callers treat as "handwriting grading unavailable".
func NewProviderFromEnv(ctx context.Context, events EventRecorder, log *zap.Logger) (Provider, Config, error) {
	cfg, ok := ResolveConfig()
	if !ok {
		return nil, cfg, ErrNoCredentials
	}
	p, err := NewProvider(ctx, cfg, events, log)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}
