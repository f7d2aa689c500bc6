package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 10 * time.Second

	// maxErrorBody caps how much of an error response is kept for logging
	maxErrorBody = 512
)

// Client talks to the community API on behalf of the browser, forwarding
// the browser's cookies so the API sees its own session.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// LoginURL is where the browser goes to start the identity provider flow.
func (c *Client) LoginURL() string {
	return c.baseURL + "/login"
}

// LogoutURL terminates the session server-side; it must be reached by a
// full browser navigation, not a background request.
func (c *Client) LogoutURL() string {
	return c.baseURL + "/logout"
}

// Credentials are the browser cookies forwarded with each call.
type Credentials []*http.Cookie

// CredentialsFrom copies the cookies of an incoming request.
func CredentialsFrom(r *http.Request) Credentials {
	return Credentials(r.Cookies())
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Body)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

func (c *Client) doRequest(ctx context.Context, creds Credentials, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for _, cookie := range creds {
		req.AddCookie(cookie)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return c.httpClient.Do(req)
}

// call performs a request and decodes a 2xx JSON body into out (if non-nil).
// It returns the response cookies so callers can relay renewed sessions.
func (c *Client) call(ctx context.Context, creds Credentials, method, path string, in, out any) ([]*http.Cookie, error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	resp, err := c.doRequest(ctx, creds, method, path, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return nil, &DecodeError{Err: err}
		}
	}

	return resp.Cookies(), nil
}

// DecodeError marks a 2xx response whose body could not be parsed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
