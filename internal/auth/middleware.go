package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/api"
	"github.com/socialcircles/circles-web/internal/session"
)

// Context keys for storing auth data
const (
	StoreKey = "session_store"
)

// Authenticate runs the session check once per page load and stores the
// result in the Echo context.
//
// With wait == 0 the request blocks until the check settles. With wait > 0
// the request continues once the budget is spent and downstream guards see
// a loading state. The check runs under a child context that is cancelled
// when the request finishes, so a late answer is dropped rather than
// written into a finished page.
func Authenticate(authn *Authenticator, hints *session.HintManager, wait time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			store := session.NewStore()
			c.Set(StoreKey, store)

			ctx, cancel := context.WithCancel(c.Request().Context())
			defer func() {
				cancel()
				store.Close()
			}()

			creds := api.CredentialsFrom(c.Request())
			done := make(chan struct{})

			go func() {
				defer close(done)
				st, reason := authn.Check(ctx, creds)
				if !store.Settle(st, reason) {
					slog.Debug("discarded late session check", "path", path, "reason", reason)
				}
			}()

			var budget <-chan time.Time
			if wait > 0 {
				timer := time.NewTimer(wait)
				defer timer.Stop()
				budget = timer.C
			}

			select {
			case <-done:
				st := store.State()
				slog.Debug("session checked",
					"path", path,
					"role", st.Role(),
					"reason", store.Reason())

				if hints != nil {
					if err := hints.Save(c, st); err != nil {
						slog.Warn("failed to save session hint", "error", err)
					}
				}
			case <-budget:
				slog.Debug("session check still pending", "path", path, "wait", wait)
			}

			return next(c)
		}
	}
}

// Guard wraps a route with a capability requirement. While the session is
// loading it serves the loading handler; when the requirement is not met it
// redirects to loginPath.
func Guard(capability Capability, loginPath string, loading echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := Decide(GetSessionState(c), capability, loginPath)

			switch d.Outcome {
			case Allow:
				return next(c)
			case ShowLoading:
				c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
				c.Response().Header().Set("Refresh", "1")
				if loading == nil {
					return c.String(http.StatusOK, "Loading...")
				}
				return loading(c)
			default:
				slog.Debug("route guard redirect",
					"path", c.Request().URL.Path,
					"capability", capability,
					"target", d.Target)
				return c.Redirect(http.StatusFound, d.Target)
			}
		}
	}
}
