package api

import (
	"context"
	"net/http"
)

// StatusAuthenticated is the only /authenticate status that means signed in.
const StatusAuthenticated = "auth"

// AuthResponse is the body of GET /authenticate.
type AuthResponse struct {
	Status  string `json:"status"`
	IsAdmin bool   `json:"is_admin,omitempty"`
}

// Authenticate asks the API whether the forwarded session is valid.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if _, err := c.call(ctx, creds, http.MethodGet, "/authenticate", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExtendSession renews the server-side session. The returned cookies carry
// the renewed session and should be relayed to the browser.
func (c *Client) ExtendSession(ctx context.Context, creds Credentials) ([]*http.Cookie, error) {
	return c.call(ctx, creds, http.MethodPost, "/extend-session", nil, nil)
}
