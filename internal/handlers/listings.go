package handlers

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/api"
	"github.com/socialcircles/circles-web/views"
)

const (
	errEvents      = "We could not load events right now."
	errCommunities = "We could not load communities right now."
)

func (h *Handler) HandleEvents(c echo.Context) error {
	events, err := h.api.AvailableEvents(c.Request().Context(), api.CredentialsFrom(c.Request()))
	data := views.EventsData{Title: "Events", Events: upcoming(events)}
	if err != nil {
		slog.Warn("failed to load events", "error", err)
		data.Error = errEvents
	}
	return Render(c, views.Events(h.page(c), data))
}

func (h *Handler) HandleRegisteredEvents(c echo.Context) error {
	events, err := h.api.RegisteredEvents(c.Request().Context(), api.CredentialsFrom(c.Request()))
	data := views.EventsData{Title: "My Events", Events: events}
	if err != nil {
		slog.Warn("failed to load registered events", "error", err)
		data.Error = errEvents
	}
	return Render(c, views.Events(h.page(c), data))
}

func (h *Handler) HandleCalendar(c echo.Context) error {
	events, err := h.api.AvailableEvents(c.Request().Context(), api.CredentialsFrom(c.Request()))
	data := views.CalendarData{Days: views.GroupByDay(events)}
	if err != nil {
		slog.Warn("failed to load calendar", "error", err)
		data.Error = errEvents
	}
	return Render(c, views.Calendar(h.page(c), data))
}

func (h *Handler) HandleCommunities(c echo.Context) error {
	communities, err := h.api.AvailableCommunities(c.Request().Context(), api.CredentialsFrom(c.Request()))
	data := views.CommunitiesData{Title: "Communities", Communities: communities}
	if err != nil {
		slog.Warn("failed to load communities", "error", err)
		data.Error = errCommunities
	}
	return Render(c, views.Communities(h.page(c), data))
}

func (h *Handler) HandleMyCommunities(c echo.Context) error {
	communities, err := h.api.RegisteredCommunities(c.Request().Context(), api.CredentialsFrom(c.Request()))
	data := views.CommunitiesData{Title: "My Communities", Communities: communities}
	if err != nil {
		slog.Warn("failed to load registered communities", "error", err)
		data.Error = errCommunities
	}
	return Render(c, views.Communities(h.page(c), data))
}
