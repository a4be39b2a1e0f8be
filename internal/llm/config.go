package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// maxKeySlots is the number of numbered credential slots probed.
const maxKeySlots = 10

// Config holds generation-service configuration.
type Config struct {
	// Provider selects the service behind the credential pool.
	// Values: "gemini" (default), "openai", "anthropic", "mock".
	Provider string

	// Credentials is the ordered API key pool. Discovery order is
	// numbered slots first, then the legacy single slot, duplicates
	// removed and placeholder values excluded. Empty is valid and means
	// the generator runs in placeholder mode.
	Credentials []Credential

	// Model is the friendly or literal model name for the selected
	// provider. Empty selects the provider's default.
	Model string

	// AttemptTimeout bounds a single generation call against one
	// credential. A hung call must not stall the whole rotation.
	AttemptTimeout time.Duration
}

// Credential is one opaque API key for the generation service.
type Credential string

// Redacted returns the last four characters of the key for log lines.
func (c Credential) Redacted() string {
	s := string(c)
	if len(s) <= 4 {
		return "..." + s
	}
	return "..." + s[len(s)-4:]
}

// DefaultConfig returns a Config with defaults and an empty pool.
func DefaultConfig() Config {
	return Config{
		Provider:       "gemini",
		AttemptTimeout: 30 * time.Second,
	}
}

// defaultModels holds the per-provider default model name.
var defaultModels = map[string]string{
	"gemini":    "gemini-flash",
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-haiku",
}

// ModelOrDefault returns the configured model, or the provider default.
func (c Config) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

// ConfigFromEnv builds a Config from the environment. A .env file in the
// working directory is loaded first when present (ignored otherwise).
func ConfigFromEnv() Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if p := os.Getenv("TINYHABITS_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if m := os.Getenv("TINYHABITS_LLM_MODEL"); m != "" {
		cfg.Model = m
	}
	cfg.Credentials = poolFromEnv(os.Getenv)

	return cfg
}

// Validate checks that the configuration is internally consistent.
// An empty credential pool is not an error.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini", "openai", "anthropic", "mock":
		return nil
	default:
		return fmt.Errorf("unknown generation provider: %q", c.Provider)
	}
}
