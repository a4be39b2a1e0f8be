package account

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
)

const authTimeout = 15 * time.Second

// Client talks to the auth service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client for the auth service at baseURL. apiKey is
// the public project key sent with every request.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: authTimeout},
	}
}

// ClientFromEnv builds a client from TINYHABITS_AUTH_URL and
// TINYHABITS_AUTH_KEY. Returns nil when no auth service is configured.
func ClientFromEnv() *Client {
	url := strings.TrimSpace(os.Getenv("TINYHABITS_AUTH_URL"))
	if url == "" {
		return nil
	}
	return NewClient(url, os.Getenv("TINYHABITS_AUTH_KEY"))
}

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// SignUp registers a new account and returns a live session.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return c.tokenCall(ctx, "/auth/v1/signup", credentialsPayload{Email: email, Password: password})
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.tokenCall(ctx, "/auth/v1/token?grant_type=password", credentialsPayload{Email: email, Password: password})
}

// SignOut revokes the session's tokens server-side. A failure here is
// not fatal; the local session file is removed regardless.
func (c *Client) SignOut(ctx context.Context, sess *Session) error {
	req, err := c.newRequest(ctx, "/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth: sign out: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("auth: sign out returned %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) tokenCall(ctx context.Context, path string, payload credentialsPayload) (*Session, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("auth: encode request: %w", err)
	}

	req, err := c.newRequest(ctx, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("auth: service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("auth: decode response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("auth: response missing access token")
	}

	userID := tok.User.ID
	if userID == "" {
		// Older service versions omit the user object.
		userID, err = userIDFromToken(tok.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("auth: %w", err)
		}
	}

	return &Session{
		UserID:       userID,
		Email:        tok.User.Email,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("auth: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	return req, nil
}
