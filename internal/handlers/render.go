package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/auth"
	"github.com/socialcircles/circles-web/views"
)

// Render renders a templ component and writes it to the response
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// RenderStatus renders a component with a non-200 status code
func RenderStatus(c echo.Context, code int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// ErrorHandler renders errors as an HTML page, or as JSON for session
// endpoints and clients that asked for JSON.
func (h *Handler) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.Request().URL.Path, "status", code, "error", err)
	}

	if wantsJSON(c) {
		if err := c.JSON(code, map[string]string{"message": message}); err != nil {
			slog.Error("failed to write error response", "error", err)
		}
		return
	}

	if c.Request().Method == http.MethodHead {
		c.NoContent(code)
		return
	}

	p := views.NewPage(c, h.siteURL, auth.GetAuthContext(c, h.hints))
	if err := RenderStatus(c, code, views.Error(p, views.ErrorData{Code: code, Message: message})); err != nil {
		slog.Error("failed to render error page", "error", err)
	}
}

func wantsJSON(c echo.Context) bool {
	if strings.HasPrefix(c.Request().URL.Path, "/session/") {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
