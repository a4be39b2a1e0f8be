// Package tts turns audio exercise scripts into playable audio through an
// external synthesis service. The service contract is a single JSON POST:
// {"text": ..., "speech_rate": ...} in, {"audio_url": ...} out.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/yichen/tinyhabits/internal/exercise"
)

const defaultTimeout = 20 * time.Second

// Client calls the synthesis endpoint.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// NewClient builds a client for the given endpoint URL.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FromEnv builds a client from TINYHABITS_TTS_URL and, optionally,
// TINYHABITS_TTS_TOKEN. Returns nil when no endpoint is configured;
// audio exercises then run without playback.
func FromEnv() *Client {
	url := strings.TrimSpace(os.Getenv("TINYHABITS_TTS_URL"))
	if url == "" {
		return nil
	}
	return NewClient(url, WithToken(os.Getenv("TINYHABITS_TTS_TOKEN")))
}

type synthesizeRequest struct {
	Text       string `json:"text"`
	SpeechRate int    `json:"speech_rate"`
}

type synthesizeResponse struct {
	AudioURL string `json:"audio_url"`
}

// Synthesize sends the script with the level-appropriate speech rate and
// returns the URL of the rendered audio.
func (c *Client) Synthesize(ctx context.Context, script string, level exercise.Level) (string, error) {
	body, err := json.Marshal(synthesizeRequest{
		Text:       script,
		SpeechRate: int(RateFor(level)),
	})
	if err != nil {
		return "", fmt.Errorf("tts: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("tts: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("tts: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("tts: service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out synthesizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("tts: decode response: %w", err)
	}
	if out.AudioURL == "" {
		return "", fmt.Errorf("tts: response missing audio_url")
	}
	return out.AudioURL, nil
}
