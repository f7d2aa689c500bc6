package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/handlers"
)

// testConfig returns a config pointed at apiURL
func testConfig(apiURL string) *Config {
	config := &Config{
		Environment: "test",
		Port:        "8080",
		BaseURL:     "http://localhost:8080",
	}
	config.API.URL = apiURL
	config.API.Timeout = 2 * time.Second
	config.Session.Secret = "test-session-secret"
	config.Session.Timeout = 30 * time.Minute
	config.Session.MonitorTTL = 2 * time.Hour
	return config
}

// setupTestEcho creates an Echo instance with routes registered against a
// fake community API
func setupTestEcho(t *testing.T, fake *handlers.FakeAPI) (*echo.Echo, *Service) {
	t.Helper()
	return setupTestEchoWithConfig(t, testConfig(fake.Server.URL))
}

func setupTestEchoWithConfig(t *testing.T, config *Config) (*echo.Echo, *Service) {
	t.Helper()

	e := echo.New()
	svc := New(config)
	e.HTTPErrorHandler = svc.Handler().ErrorHandler
	svc.RegisterRoutes(e)
	t.Cleanup(svc.Stop)

	return e, svc
}

func newFakeAPI(t *testing.T) *handlers.FakeAPI {
	t.Helper()
	fake := handlers.NewFakeAPI()
	t.Cleanup(fake.Close)
	return fake
}

// get performs a GET with the given cookies
func get(e *echo.Echo, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// post sends a JSON POST carrying the CSRF token the way the timeout dialog
// does
func post(e *echo.Echo, path, body, csrf string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if csrf != "" {
		req.Header.Set("X-CSRF-Token", csrf)
		req.AddCookie(&http.Cookie{Name: "_csrf", Value: csrf})
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
