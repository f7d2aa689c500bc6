package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/api"
	"github.com/socialcircles/circles-web/internal/auth"
	"github.com/socialcircles/circles-web/internal/session"
	"github.com/socialcircles/circles-web/internal/timeout"
	"github.com/socialcircles/circles-web/views"
)

// Handler serves the site's pages and session endpoints
type Handler struct {
	api      *api.Client
	hints    *session.HintManager
	monitors *timeout.Registry
	siteURL  string
	secure   bool
}

// Options wires a Handler to its collaborators
type Options struct {
	API      *api.Client
	Hints    *session.HintManager
	Monitors *timeout.Registry
	SiteURL  string
	// Secure marks cookies Secure (production)
	Secure bool
}

func New(opts Options) *Handler {
	return &Handler{
		api:      opts.API,
		hints:    opts.Hints,
		monitors: opts.Monitors,
		siteURL:  opts.SiteURL,
		secure:   opts.Secure,
	}
}

// page builds the chrome for the current request. A page rendered for a
// signed-in member counts as activity for their timeout monitor.
func (h *Handler) page(c echo.Context) views.Page {
	p := views.NewPage(c, h.siteURL, auth.GetAuthContext(c, h.hints))
	if p.Monitor && h.monitors != nil {
		m := h.ensureMonitor(c)
		_ = m.Activity(timeout.ActivityFetch)
	}
	return p
}

// Loading is the placeholder served by route guards while the session check
// is still running
func (h *Handler) Loading(c echo.Context) error {
	p := views.NewPage(c, h.siteURL, auth.GetAuthContext(c, h.hints))
	return Render(c, views.Loading(p, c.Request().URL.RequestURI()))
}
