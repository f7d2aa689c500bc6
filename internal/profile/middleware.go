package profile

import (
	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/api"
	"github.com/socialcircles/circles-web/internal/auth"
)

// LoaderKey is the Echo context key for the page load's profile loader.
const LoaderKey = "profile_loader"

// Middleware attaches a Loader to every request that went through
// auth.Authenticate. Nothing is fetched until a handler calls Load.
func Middleware(client Fetcher) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if store, ok := auth.GetStore(c); ok {
				c.Set(LoaderKey, NewLoader(client, store, api.CredentialsFrom(c.Request())))
			}
			return next(c)
		}
	}
}

// FromContext returns the loader for this page load, if any.
func FromContext(c echo.Context) (*Loader, bool) {
	l, ok := c.Get(LoaderKey).(*Loader)
	return l, ok && l != nil
}

// Load is a shortcut for handlers: it loads the profile for the current
// request and returns its state. Requests without a loader look signed out.
func Load(c echo.Context) State {
	l, ok := FromContext(c)
	if !ok {
		return State{Status: StatusSignedOut}
	}
	return l.Load(c.Request().Context())
}
