package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/auth"
	"github.com/socialcircles/circles-web/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLogin_Guest(t *testing.T) {
	env := newTestEnv(t)
	c, rec := env.context(http.MethodGet, "/login", nil, session.SignedOut())

	require.NoError(t, env.handler.HandleLogin(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), env.api.Server.URL+"/login")
}

func TestHandleLogin_SignedInGoesToDashboard(t *testing.T) {
	env := newTestEnv(t)

	c, rec := env.context(http.MethodGet, "/login", nil, session.SignedIn(false))
	require.NoError(t, env.handler.HandleLogin(c))
	assert.Equal(t, "/user-dashboard", rec.Header().Get(echo.HeaderLocation))

	c, rec = env.context(http.MethodGet, "/login", nil, session.SignedIn(true))
	require.NoError(t, env.handler.HandleLogin(c))
	assert.Equal(t, "/admin-dashboard", rec.Header().Get(echo.HeaderLocation))
}

func TestHandleLogin_ShowsBlockedReason(t *testing.T) {
	env := newTestEnv(t)

	store := session.NewStore()
	store.Settle(session.SignedOut(), session.ReasonBlocked)

	c, rec := env.context(http.MethodGet, "/login", nil, session.SignedOut())
	c.Set(auth.StoreKey, store)

	require.NoError(t, env.handler.HandleLogin(c))
	assert.Contains(t, rec.Body.String(), "Your account has been blocked.")
}

func TestHandleLogout(t *testing.T) {
	env := newTestEnv(t)
	m := env.monitors.Ensure("")

	c, rec := env.context(http.MethodGet, "/logout", nil, session.SignedIn(false))
	c.Request().AddCookie(&http.Cookie{Name: ClientCookieName, Value: m.ID()})

	require.NoError(t, env.handler.HandleLogout(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, env.api.Server.URL+"/logout", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, session.SignedOut(), auth.GetSessionState(c))
	assert.Equal(t, session.ReasonLoggedOut, auth.GetReason(c))

	_, ok := env.monitors.Get(m.ID())
	assert.False(t, ok)

	hint := cookieNamed(rec, "circles_hint")
	require.NotNil(t, hint)
	assert.Equal(t, -1, hint.MaxAge)
}

func TestHandleUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	c, rec := env.context(http.MethodGet, "/unauthorized", nil, session.SignedIn(false))

	require.NoError(t, env.handler.HandleUnauthorized(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
