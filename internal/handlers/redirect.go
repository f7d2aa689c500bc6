package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/auth"
)

const returnToCookieName = "circles_return_to"

var disallowedReturnTo = map[string]struct{}{
	"/login":        {},
	"/logout":       {},
	"/unauthorized": {},
}

func sanitizeReturnTo(path string) (string, bool) {
	if path == "" {
		return "", false
	}

	if strings.ContainsAny(path, "\r\n") {
		return "", false
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "//") {
		return "", false
	}

	if !strings.HasPrefix(path, "/") {
		return "", false
	}

	base := path
	if idx := strings.IndexAny(path, "?#"); idx != -1 {
		base = path[:idx]
	}

	if _, blocked := disallowedReturnTo[base]; blocked {
		return "", false
	}

	if strings.HasPrefix(base, "/session/") {
		return "", false
	}

	return path, true
}

func (h *Handler) rememberReturnTo(c echo.Context, path string) {
	if sanitized, ok := sanitizeReturnTo(path); ok {
		c.SetCookie(&http.Cookie{
			Name:     returnToCookieName,
			Value:    url.QueryEscape(sanitized),
			Path:     "/",
			HttpOnly: true,
			Secure:   h.secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   300, // 5 minutes
		})
	}
}

func (h *Handler) clearReturnTo(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     returnToCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (h *Handler) popReturnTo(c echo.Context) string {
	cookie, err := c.Cookie(returnToCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	h.clearReturnTo(c)

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}

	sanitized, ok := sanitizeReturnTo(decoded)
	if !ok {
		return ""
	}

	return sanitized
}

// RememberBlocked records the page a signed-out visitor was turned away
// from so the dashboard can send them back after they sign in. It runs
// ahead of the route guard and never changes its decision.
func (h *Handler) RememberBlocked(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		st := auth.GetSessionState(c)
		if !st.Loading && !st.Authenticated && c.Request().Method == http.MethodGet {
			h.rememberReturnTo(c, c.Request().URL.RequestURI())
		}
		return next(c)
	}
}
