package llm

import (
	"context"
	"errors"
	"time"
)

// FailoverProvider is a decorator that walks an ordered pool of providers,
// one per credential, until one answers. There is no backoff and no second
// attempt against the same credential: the rotation itself is the whole
// retry policy. Attempts are strictly sequential so a burst never hits
// several accounts at once.
type FailoverProvider struct {
	pool           []Provider
	attemptTimeout time.Duration
}

// NewFailover wraps an ordered provider pool. The pool must be non-empty;
// callers handle the empty-pool case before constructing one.
func NewFailover(pool []Provider, attemptTimeout time.Duration) *FailoverProvider {
	return &FailoverProvider{pool: pool, attemptTimeout: attemptTimeout}
}

// Generate tries each credential in order and returns the first success.
//
//   - rate limit (429), API error, network failure: advance to the next
//     credential
//   - unparsable or schema-invalid success body: fatal, returned as-is
//   - all credentials tried without success: ErrQuotaExhausted
func (f *FailoverProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error

	for _, p := range f.pool {
		resp, err := f.attempt(ctx, p, req)
		if err == nil {
			return resp, nil
		}
		if !advances(err) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}

	return nil, &ErrQuotaExhausted{Attempts: len(f.pool), LastErr: lastErr}
}

// ModelID reports the model of the first pool entry; every entry targets
// the same model, only the credential differs.
func (f *FailoverProvider) ModelID() string {
	if len(f.pool) == 0 {
		return ""
	}
	return f.pool[0].ModelID()
}

func (f *FailoverProvider) attempt(ctx context.Context, p Provider, req Request) (*Response, error) {
	if f.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.attemptTimeout)
		defer cancel()
	}
	return p.Generate(ctx, req)
}

// advances reports whether an attempt error is recoverable by moving to
// the next credential. A schema-invalid success body is the one error the
// rotation never skips past.
func advances(err error) bool {
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return true
}
