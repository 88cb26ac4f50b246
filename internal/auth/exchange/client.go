// Package exchange calls the upstream session provider that resolves an
// X-Session-ID header into user data and an opaque session token.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// ErrInvalidSessionID is returned when the upstream rejects the session id (non-200).
var ErrInvalidSessionID = errors.New("invalid session ID")

// SessionData is the upstream's view of the authenticated user.
type SessionData struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// Client resolves session ids against the upstream provider. The provider is
// treated as opaque: one GET per exchange, no retries, timeout fatal to the request.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client for the given exchange endpoint with the given timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Exchange resolves sessionID to user data. Returns ErrInvalidSessionID when
// the upstream answers non-200; transport errors and timeouts are returned as-is
// and are fatal to the calling request.
func (c *Client) Exchange(ctx context.Context, sessionID string) (*SessionData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Session-ID", sessionID)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session exchange failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidSessionID
	}
	var data SessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("session exchange failed: %w", err)
	}
	return &data, nil
}
