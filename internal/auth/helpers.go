package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/session"
)

// GetStore returns the read-only session store for this page load
func GetStore(c echo.Context) (session.Reader, bool) {
	store, ok := c.Get(StoreKey).(*session.Store)
	return store, ok && store != nil
}

// GetSessionState returns the current session state. A request that never
// went through Authenticate is treated as signed out.
func GetSessionState(c echo.Context) session.State {
	store, ok := GetStore(c)
	if !ok {
		return session.SignedOut()
	}
	return store.State()
}

// GetReason returns why the session check settled the way it did
func GetReason(c echo.Context) session.Reason {
	store, ok := GetStore(c)
	if !ok {
		return session.ReasonPending
	}
	return store.Reason()
}

// IsAuthenticated checks if the current request is authenticated
func IsAuthenticated(c echo.Context) bool {
	st := GetSessionState(c)
	return !st.Loading && st.Authenticated
}

// IsAdmin checks if the current request belongs to an administrator
func IsAdmin(c echo.Context) bool {
	st := GetSessionState(c)
	return !st.Loading && st.Authenticated && st.IsAdmin
}

// ClearSession is the logout transition for this page load.
func ClearSession(c echo.Context) {
	if store, ok := c.Get(StoreKey).(*session.Store); ok && store != nil {
		var w session.Writer = store
		w.Clear()
	}
}
