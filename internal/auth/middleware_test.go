package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/api"
	"github.com/socialcircles/circles-web/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serve builds a tiny echo app with the auth middleware and a guarded route
func serve(t *testing.T, client *api.Client, hints *session.HintManager, wait time.Duration, capability Capability, req *http.Request) (*httptest.ResponseRecorder, *session.State) {
	t.Helper()

	var seen *session.State
	e := echo.New()
	e.Use(Authenticate(NewAuthenticator(client), hints, wait))

	loading := func(c echo.Context) error {
		return c.String(http.StatusOK, "placeholder")
	}
	e.GET("/page", func(c echo.Context) error {
		st := GetSessionState(c)
		seen = &st
		return c.String(http.StatusOK, "page")
	}, Guard(capability, "/login", loading))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthenticate_AdminReachesAdminRoute(t *testing.T) {
	client := newAPI(t, http.StatusOK, `{"status":"auth","is_admin":true}`)

	rec, seen := serve(t, client, nil, 0, CapabilityAdmin, httptest.NewRequest(http.MethodGet, "/page", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "page", rec.Body.String())
	require.NotNil(t, seen)
	assert.Equal(t, session.State{Authenticated: true, IsAdmin: true}, *seen)
}

func TestAuthenticate_ServerErrorRedirectsToLogin(t *testing.T) {
	client := newAPI(t, http.StatusInternalServerError, `boom`)

	for _, capability := range []Capability{CapabilityAuthenticated, CapabilityAdmin} {
		rec, seen := serve(t, client, nil, 0, capability, httptest.NewRequest(http.MethodGet, "/page", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
		assert.Nil(t, seen, "guarded handler must not run")
	}
}

func TestAuthenticate_MemberRedirectedFromAdminRoute(t *testing.T) {
	client := newAPI(t, http.StatusOK, `{"status":"auth","is_admin":false}`)

	rec, _ := serve(t, client, nil, 0, CapabilityAdmin, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.Equal(t, http.StatusFound, rec.Code)

	rec, _ = serve(t, client, nil, 0, CapabilityAuthenticated, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_WritesHint(t *testing.T) {
	client := newAPI(t, http.StatusOK, `{"status":"auth","is_admin":false}`)
	hints := session.NewHintManager("test-secret", false)

	rec, _ := serve(t, client, hints, 0, CapabilityAuthenticated, httptest.NewRequest(http.MethodGet, "/page", nil))

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "circles_hint" {
			found = true
		}
	}
	assert.True(t, found, "settled check should leave a hint cookie")
}

func TestAuthenticate_HintNeverGrantsAccess(t *testing.T) {
	hints := session.NewHintManager("test-secret", false)

	// Get a genuine admin hint cookie first
	admin := newAPI(t, http.StatusOK, `{"status":"auth","is_admin":true}`)
	rec, _ := serve(t, admin, hints, 0, CapabilityAdmin, httptest.NewRequest(http.MethodGet, "/page", nil))

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	// The server now says the session is gone
	signedOut := newAPI(t, http.StatusUnauthorized, `{"status":"not auth"}`)
	rec, seen := serve(t, signedOut, hints, 0, CapabilityAdmin, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Nil(t, seen)
}

func TestAuthenticate_PendingCheckShowsPlaceholderAndIsCancelled(t *testing.T) {
	cancelled := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			close(cancelled)
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	client := api.NewClient(srv.URL, 10*time.Second)

	rec, seen := serve(t, client, nil, 20*time.Millisecond, CapabilityAuthenticated, httptest.NewRequest(http.MethodGet, "/page", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "placeholder", rec.Body.String())
	assert.Equal(t, "1", rec.Header().Get("Refresh"))
	assert.Equal(t, "no-store", rec.Header().Get(echo.HeaderCacheControl))
	assert.Nil(t, seen)

	select {
	case <-cancelled:
	case <-time.After(3 * time.Second):
		t.Fatal("in-flight session check was not cancelled when the request finished")
	}
}

func TestGuard_NoStoreFailsClosed(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Guard(CapabilityAuthenticated, "/login", nil)(func(c echo.Context) error {
		return c.String(http.StatusOK, "page")
	})

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestGuard_DefaultPlaceholder(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(StoreKey, session.NewStore())

	h := Guard(CapabilityNone, "/login", nil)(func(c echo.Context) error {
		return c.String(http.StatusOK, "page")
	})

	require.NoError(t, h(c))
	assert.Equal(t, "Loading...", rec.Body.String())
}
