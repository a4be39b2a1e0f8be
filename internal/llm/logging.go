package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// RequestRecord captures one generation call for the local request log.
type RequestRecord struct {
	Provider     string
	Model        string
	Purpose      string
	Credential   string // redacted, last four characters only
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestLogger persists RequestRecords. Implemented by the profile store.
type RequestLogger interface {
	AppendRequest(ctx context.Context, rec RequestRecord) error
}

// LoggingProvider is a decorator that records every generation attempt.
// It wraps the per-credential provider, so a failover chain produces one
// record per credential tried.
type LoggingProvider struct {
	inner      Provider
	logger     RequestLogger
	name       string
	credential Credential
}

// WithLogging wraps a Provider with request logging. name is the backend
// name ("gemini", "openai", ...) recorded alongside the model.
func WithLogging(p Provider, logger RequestLogger, name string, cred Credential) Provider {
	return &LoggingProvider{inner: p, logger: logger, name: name, credential: cred}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	rec := RequestRecord{
		Provider:   l.name,
		Model:      l.inner.ModelID(),
		Purpose:    PurposeFrom(ctx),
		Credential: l.credential.Redacted(),
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
	}

	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// A logging failure must not fail the generation itself.
	if logErr := l.logger.AppendRequest(ctx, rec); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log generation request: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
