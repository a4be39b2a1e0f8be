package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func okJSON() json.RawMessage {
	return json.RawMessage(`{"ok": true}`)
}

func TestFailover_FirstSuccessShortCircuits(t *testing.T) {
	first := NewMockProvider(MockResponse{Content: okJSON()})
	second := NewMockProvider(MockResponse{Content: json.RawMessage(`{"ok": false}`)})

	f := NewFailover([]Provider{first, second}, time.Second)
	resp, err := f.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok": true}` {
		t.Errorf("unexpected content: %s", resp.Content)
	}
	if second.CallCount() != 0 {
		t.Errorf("second credential was attempted %d times, want 0", second.CallCount())
	}
}

func TestFailover_RateLimitAdvances(t *testing.T) {
	first := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}})
	second := NewMockProvider(MockResponse{Content: okJSON()})

	f := NewFailover([]Provider{first, second}, time.Second)
	resp, err := f.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok": true}` {
		t.Errorf("unexpected content: %s", resp.Content)
	}
	if first.CallCount() != 1 || second.CallCount() != 1 {
		t.Errorf("call counts = %d, %d, want 1, 1", first.CallCount(), second.CallCount())
	}
}

func TestFailover_NetworkErrorAdvances(t *testing.T) {
	first := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection refused")}})
	second := NewMockProvider(MockResponse{Content: okJSON()})

	f := NewFailover([]Provider{first, second}, time.Second)
	if _, err := f.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFailover_AllRateLimitedExhaustsQuota(t *testing.T) {
	pool := []Provider{
		NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}}),
		NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}}),
		NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}}),
	}

	f := NewFailover(pool, time.Second)
	_, err := f.Generate(context.Background(), Request{})

	var exhausted *ErrQuotaExhausted
	if !errors.As(err, &exhausted) {
		t.Fatalf("error = %v, want ErrQuotaExhausted", err)
	}
	if exhausted.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", exhausted.Attempts)
	}
}

func TestFailover_InvalidResponseIsFatal(t *testing.T) {
	first := NewMockProvider(MockResponse{Err: &ErrInvalidResponse{Err: errors.New("not json")}})
	second := NewMockProvider(MockResponse{Content: okJSON()})

	f := NewFailover([]Provider{first, second}, time.Second)
	_, err := f.Generate(context.Background(), Request{})

	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
	if second.CallCount() != 0 {
		t.Errorf("rotation advanced past a fatal parse error")
	}
}

func TestFailover_CancelledContextStopsRotation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}})
	second := NewMockProvider(MockResponse{Content: okJSON()})

	f := NewFailover([]Provider{slow, second}, time.Second)
	_, err := f.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if second.CallCount() != 0 {
		t.Errorf("rotation continued after cancellation")
	}
}
