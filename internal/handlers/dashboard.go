package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/api"
	"github.com/socialcircles/circles-web/internal/profile"
	"github.com/socialcircles/circles-web/views"
	"golang.org/x/sync/errgroup"
)

const errLists = "We could not load all of your events and communities."

// HandleUserDashboard loads the profile and the member's registrations
// side by side. A member without a profile is sent to set one up; list
// failures are shown on the page without blocking it.
func (h *Handler) HandleUserDashboard(c echo.Context) error {
	if target := h.popReturnTo(c); target != "" && target != c.Request().URL.RequestURI() {
		return c.Redirect(http.StatusFound, target)
	}

	ctx := c.Request().Context()
	creds := api.CredentialsFrom(c.Request())

	var (
		ps          profile.State
		events      []api.Event
		communities []api.Community
		g           errgroup.Group
	)

	g.Go(func() error {
		ps = profile.Load(c)
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = h.api.RegisteredEvents(ctx, creds)
		return err
	})
	g.Go(func() error {
		var err error
		communities, err = h.api.RegisteredCommunities(ctx, creds)
		return err
	})

	data := views.DashboardData{Welcome: c.QueryParam("welcome") == "1"}
	if err := g.Wait(); err != nil {
		slog.Warn("failed to load dashboard lists", "error", err)
		data.ListError = errLists
	}

	if ps.Status == profile.StatusNeedsSetup {
		return c.Redirect(http.StatusFound, "/profile")
	}

	data.Profile = ps.Profile
	data.ProfileError = ps.Error
	data.Events = upcoming(events)
	data.Communities = communities

	return Render(c, views.Dashboard(h.page(c), data))
}

// HandleAdminDashboard shows what is currently on offer
func (h *Handler) HandleAdminDashboard(c echo.Context) error {
	g, ctx := errgroup.WithContext(c.Request().Context())
	creds := api.CredentialsFrom(c.Request())

	var (
		events      []api.Event
		communities []api.Community
	)

	g.Go(func() error {
		var err error
		events, err = h.api.AvailableEvents(ctx, creds)
		return err
	})
	g.Go(func() error {
		var err error
		communities, err = h.api.AvailableCommunities(ctx, creds)
		return err
	})

	data := views.AdminData{}
	if err := g.Wait(); err != nil {
		slog.Warn("failed to load admin dashboard", "error", err)
		data.Error = errLists
	}
	data.EventCount = len(upcoming(events))
	data.CommunityCount = len(communities)

	return Render(c, views.Admin(h.page(c), data))
}

func upcoming(events []api.Event) []api.Event {
	out := make([]api.Event, 0, len(events))
	for _, ev := range events {
		if !ev.InPast {
			out = append(out, ev)
		}
	}
	return out
}
