package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/api"
	"github.com/socialcircles/circles-web/internal/auth"
	"github.com/socialcircles/circles-web/internal/profile"
	"github.com/socialcircles/circles-web/internal/session"
	"github.com/socialcircles/circles-web/internal/timeout"
)

type testEnv struct {
	api      *FakeAPI
	handler  *Handler
	monitors *timeout.Registry
	echo     *echo.Echo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	f := NewFakeAPI()
	t.Cleanup(f.Close)

	client := f.Client()
	monitors := timeout.NewRegistry(client, client.LogoutURL(), timeout.Config{Timeout: time.Hour})
	t.Cleanup(monitors.Stop)

	h := New(Options{
		API:      client,
		Hints:    session.NewHintManager("test-secret", false),
		Monitors: monitors,
		SiteURL:  "https://circles.example.com",
	})

	e := echo.New()
	e.HTTPErrorHandler = h.ErrorHandler

	return &testEnv{api: f, handler: h, monitors: monitors, echo: e}
}

// context builds a request context that already went through the session
// check with the given outcome
func (env *testEnv) context(method, path string, body io.Reader, st session.State) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)

	store := session.NewStore()
	store.Settle(st, session.ReasonAuthenticated)
	c.Set(auth.StoreKey, store)
	c.Set(profile.LoaderKey, profile.NewLoader(env.api.Client(), store, api.CredentialsFrom(req)))

	return c, rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
