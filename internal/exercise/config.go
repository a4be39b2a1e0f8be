package exercise

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every parsed exercise; the first
	// failure rejects the payload.
	Validators []Validator

	// MaxTokens is the token budget for the service response.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators:  []Validator{&StructuralValidator{}},
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}
