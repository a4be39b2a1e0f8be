package llm

import (
	"context"
	"fmt"
)

// NewProvider assembles the full generation stack from configuration: one
// SDK client per credential, each wrapped with request logging, composed
// behind the failover rotation.
//
// A nil Provider with a nil error means the pool is empty: no live
// generation capability. Callers fall back to placeholder exercises; this
// is the documented offline/demo mode, not a failure.
func NewProvider(ctx context.Context, cfg Config, logger RequestLogger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}

	if len(cfg.Credentials) == 0 {
		return nil, nil
	}

	pool := make([]Provider, 0, len(cfg.Credentials))
	for _, cred := range cfg.Credentials {
		base, err := newBaseProvider(ctx, cfg, cred)
		if err != nil {
			return nil, fmt.Errorf("initializing %s provider for key %s: %w", cfg.Provider, cred.Redacted(), err)
		}
		if logger != nil {
			base = WithLogging(base, logger, cfg.Provider, cred)
		}
		pool = append(pool, base)
	}

	return NewFailover(pool, cfg.AttemptTimeout), nil
}

func newBaseProvider(ctx context.Context, cfg Config, cred Credential) (Provider, error) {
	model := cfg.ModelOrDefault()
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(ctx, cred, model)
	case "openai":
		return NewOpenAIProvider(cred, model)
	case "anthropic":
		return NewAnthropicProvider(cred, model)
	default:
		return nil, fmt.Errorf("unknown generation provider: %q", cfg.Provider)
	}
}
