package exercise

import "fmt"

// Validator checks a parsed exercise before it reaches the quiz engine.
// Implementations are stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for error messages, e.g. "structural".
	Name() string

	// Validate returns nil if the exercise passes, or a ValidationError
	// describing the first problem found.
	Validate(ex *Exercise) *ValidationError
}

// ValidationError describes why a generated exercise was rejected. It is
// the malformed-response case for payloads that parsed but violate the
// exercise invariants.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
