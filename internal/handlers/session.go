package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/api"
	"github.com/socialcircles/circles-web/internal/auth"
	"github.com/socialcircles/circles-web/internal/session"
	"github.com/socialcircles/circles-web/internal/timeout"
)

// ClientCookieName identifies the browser's timeout monitor
const ClientCookieName = "circles_client"

type stateResponse struct {
	session.State
	Role   string         `json:"role"`
	Reason session.Reason `json:"reason"`
}

type activityRequest struct {
	Kind string `json:"kind" form:"kind"`
}

type redirectResponse struct {
	Redirect string `json:"redirect"`
}

func (h *Handler) clientID(c echo.Context) string {
	cookie, err := c.Cookie(ClientCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *Handler) setClientID(c echo.Context, id string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     ClientCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// ensureMonitor returns this browser's monitor, issuing a client ID when
// the browser has none
func (h *Handler) ensureMonitor(c echo.Context) *timeout.Monitor {
	id := h.clientID(c)
	m := h.monitors.Ensure(id)
	if m.ID() != id {
		h.setClientID(c, m.ID(), 0)
	}
	return m
}

func (h *Handler) existingMonitor(c echo.Context) (*timeout.Monitor, bool) {
	if h.monitors == nil {
		return nil, false
	}
	id := h.clientID(c)
	if id == "" {
		return nil, false
	}
	return h.monitors.Get(id)
}

func (h *Handler) dropMonitor(c echo.Context) {
	if h.monitors == nil {
		return
	}
	if id := h.clientID(c); id != "" {
		h.monitors.Remove(id)
		h.setClientID(c, "", -1)
	}
}

// HandleSessionState reports the session check for this request
func (h *Handler) HandleSessionState(c echo.Context) error {
	st := auth.GetSessionState(c)
	return c.JSON(http.StatusOK, stateResponse{
		State:  st,
		Role:   st.Role().String(),
		Reason: auth.GetReason(c),
	})
}

// HandleSessionStatus is polled by the timeout dialog. Polling does not
// count as activity.
func (h *Handler) HandleSessionStatus(c echo.Context) error {
	m, ok := h.existingMonitor(c)
	if !ok {
		return c.JSON(http.StatusOK, timeout.Status{State: "none"})
	}
	m.Touch()
	return c.JSON(http.StatusOK, m.Status())
}

// HandleSessionActivity records a click, keypress or fetch in the browser
func (h *Handler) HandleSessionActivity(c echo.Context) error {
	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid activity")
	}

	m, ok := h.existingMonitor(c)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}

	if err := m.Activity(req.Kind); err != nil {
		if errors.Is(err, timeout.ErrUnknownActivity) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, timeout.ErrEnded) {
			return c.NoContent(http.StatusNoContent)
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// HandleSessionContinue renews the session and relays the renewed cookies
// to the browser. The dialog stays up if renewal fails.
func (h *Handler) HandleSessionContinue(c echo.Context) error {
	m := h.ensureMonitor(c)

	cookies, err := m.Continue(c.Request().Context(), api.CredentialsFrom(c.Request()))
	switch {
	case errors.Is(err, timeout.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "Please wait a moment before trying again.")
	case errors.Is(err, timeout.ErrEnded):
		return echo.NewHTTPError(http.StatusConflict, "This session has already ended.")
	case err != nil:
		slog.Warn("failed to extend session", "client_id", m.ID(), "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Could not extend your session.")
	}

	for _, cookie := range cookies {
		relayed := *cookie
		relayed.Domain = ""
		c.SetCookie(&relayed)
	}

	return c.JSON(http.StatusOK, m.Status())
}

// HandleSessionDismiss closes the dialog without renewing
func (h *Handler) HandleSessionDismiss(c echo.Context) error {
	if m, ok := h.existingMonitor(c); ok {
		m.Dismiss()
		return c.JSON(http.StatusOK, m.Status())
	}
	return c.JSON(http.StatusOK, timeout.Status{State: "none"})
}

// HandleSessionEnd stops the countdown and tells the browser to navigate to
// the API's logout
func (h *Handler) HandleSessionEnd(c echo.Context) error {
	target := h.api.LogoutURL()
	if m, ok := h.existingMonitor(c); ok {
		target = m.End()
	}

	h.dropMonitor(c)
	if h.hints != nil {
		if err := h.hints.Destroy(c); err != nil {
			slog.Warn("failed to clear session hint", "error", err)
		}
	}

	return c.JSON(http.StatusOK, redirectResponse{Redirect: target})
}
