// Package client is a typed Go client for the homeledger REST API. It owns
// the bearer token pair: every request carries the access token, and a 401
// triggers one silent refresh-and-retry before the error is surfaced as
// ErrSessionExpired.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// ErrSessionExpired is returned when a request got a 401 and the silent token
// refresh failed too. The caller should send the user back to login.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to the homeledger API.
type Client struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTokenPair seeds the client with an existing session's tokens.
func WithTokenPair(access, refresh string) Option {
	return func(c *Client) {
		c.accessToken = access
		c.refreshToken = refresh
	}
}

// New creates a Client for the API at baseURL (e.g. "http://localhost:5001").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokens returns the current token pair, for persisting a session.
func (c *Client) Tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *Client) setTokens(access, refresh string) {
	c.mu.Lock()
	c.accessToken = access
	c.refreshToken = refresh
	c.mu.Unlock()
}

// do issues one API request, decoding a 2xx body into out (out may be nil).
// On a 401 it refreshes the token pair once and retries; a second 401 maps to
// ErrSessionExpired.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	status, err := c.send(ctx, method, path, body, out)
	if err != nil || status != http.StatusUnauthorized {
		return err
	}

	if err := c.refreshSession(ctx); err != nil {
		return ErrSessionExpired
	}

	status, err = c.send(ctx, method, path, body, out)
	if status == http.StatusUnauthorized {
		return ErrSessionExpired
	}
	return err
}

// send issues the request once. A 401 is reported via the returned status
// with a nil error so do can decide whether to refresh; other non-2xx
// statuses come back as *APIError.
func (c *Client) send(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	access := c.accessToken
	c.mu.Unlock()
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Nothing useful to do with a close error on a read body

	if resp.StatusCode == http.StatusUnauthorized {
		return resp.StatusCode, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil {
			apiErr.Message = errBody.Error
			apiErr.Detail = errBody.Detail
		}
		if apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return resp.StatusCode, apiErr
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// refreshSession exchanges the stored refresh token for a new pair. The
// refresh call itself bypasses do to avoid recursing on its own 401.
func (c *Client) refreshSession(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()
	if refresh == "" {
		return ErrSessionExpired
	}

	var pair TokenPair
	status, err := c.send(ctx, http.MethodPost, "/api/auth/refresh",
		map[string]string{"refresh_token": refresh}, &pair)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return ErrSessionExpired
	}

	c.setTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}
