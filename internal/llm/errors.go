package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrRateLimit indicates the service returned HTTP 429 for one credential.
// The failover layer treats it as non-fatal and moves to the next credential.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the service answered successfully but the
// body was unparsable or did not conform to the requested schema. This is
// fatal to the whole request: the rotation does not advance past it.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid generation response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers non-429 API errors and network-level
// failures. Non-fatal for the credential that hit it.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation service unavailable: %v", e.Err)
	}
	return "generation service unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrQuotaExhausted is returned once every credential in the pool has been
// tried and none produced a usable response. User-visible as "try again
// later".
type ErrQuotaExhausted struct {
	Attempts int
	LastErr  error
}

func (e *ErrQuotaExhausted) Error() string {
	return fmt.Sprintf("all %d credentials exhausted: %v", e.Attempts, e.LastErr)
}

func (e *ErrQuotaExhausted) Unwrap() error { return e.LastErr }
