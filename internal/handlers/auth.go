package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/auth"
	"github.com/socialcircles/circles-web/internal/session"
	"github.com/socialcircles/circles-web/views"
)

// loginReasons are shown on the login page after a failed session check
var loginReasons = map[session.Reason]string{
	session.ReasonBlocked:     "Your account has been blocked. Please contact the administrator.",
	session.ReasonUnreachable: "We could not reach the server. Please try again in a moment.",
	session.ReasonRejected:    "Something went wrong checking your session. Please sign in again.",
	session.ReasonMalformed:   "Something went wrong checking your session. Please sign in again.",
}

// HandleLogin renders the sign-in page, or sends signed-in members on to
// their dashboard
func (h *Handler) HandleLogin(c echo.Context) error {
	st := auth.GetSessionState(c)
	if !st.Loading && st.Authenticated {
		if st.IsAdmin {
			return c.Redirect(http.StatusFound, "/admin-dashboard")
		}
		return c.Redirect(http.StatusFound, "/user-dashboard")
	}

	return Render(c, views.Login(h.page(c), views.LoginData{
		LoginURL: h.api.LoginURL(),
		Reason:   loginReasons[auth.GetReason(c)],
	}))
}

// HandleLogout clears everything this site knows about the session, then
// hands the browser to the API's logout, which ends the session server-side
func (h *Handler) HandleLogout(c echo.Context) error {
	slog.Debug("logging out", "path", c.Request().URL.Path, "reason", auth.GetReason(c))

	auth.ClearSession(c)

	if h.hints != nil {
		if err := h.hints.Destroy(c); err != nil {
			slog.Warn("failed to clear session hint", "error", err)
		}
	}

	h.dropMonitor(c)
	h.clearReturnTo(c)

	return c.Redirect(http.StatusFound, h.api.LogoutURL())
}

func (h *Handler) HandleUnauthorized(c echo.Context) error {
	return RenderStatus(c, http.StatusForbidden, views.Unauthorized(h.page(c)))
}
