package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/session"
)

// Context holds authentication data to be passed to templates
type Context struct {
	Role session.Role
	// Provisional is set when Role came from the cached hint because the
	// real check has not settled. It only ever changes navigation chrome.
	Provisional bool
}

// IsGuest reports whether templates should show the guest navigation
func (a *Context) IsGuest() bool {
	return a.Role == session.RoleGuest || a.Role == session.RoleUnknown
}

// IsAdmin reports whether templates should show the admin navigation
func (a *Context) IsAdmin() bool {
	return a.Role == session.RoleAdmin
}

// GetAuthContext gets the auth context for templates from the settled state.
// While the check is loading and a hint manager is supplied, the cached
// hint stands in for the role.
func GetAuthContext(c echo.Context, hints *session.HintManager) *Context {
	st := GetSessionState(c)
	if !st.Loading {
		return &Context{Role: st.Role()}
	}

	if hints == nil {
		return &Context{Role: session.RoleUnknown, Provisional: true}
	}

	return &Context{Role: hints.Load(c), Provisional: true}
}
