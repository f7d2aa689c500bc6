package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/api"
	"github.com/socialcircles/circles-web/internal/profile"
	"github.com/socialcircles/circles-web/views"
)

const errProfileSave = "We could not save your profile. Please try again."

// HandleProfile shows the member's profile, or the setup form when they
// have none yet
func (h *Handler) HandleProfile(c echo.Context) error {
	ps := profile.Load(c)
	data := profileData(ps)
	data.Editing = data.New || c.QueryParam("edit") == "1"
	if ps.Status == profile.StatusFailed {
		data.Editing = false
	}
	return Render(c, views.Profile(h.page(c), data))
}

// HandleProfileSave creates or updates the profile with whatever changed
func (h *Handler) HandleProfileSave(c echo.Context) error {
	loader, ok := profile.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Please sign in again.")
	}

	var form profile.UserProfile
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid profile form")
	}

	ps := loader.Load(c.Request().Context())
	if ps.Status == profile.StatusFailed || ps.Status == profile.StatusSignedOut {
		data := profileData(ps)
		return RenderStatus(c, http.StatusBadGateway, views.Profile(h.page(c), data))
	}

	ch := profile.Diff(ps, form)
	if !ch.Changed() {
		return c.Redirect(http.StatusSeeOther, "/profile")
	}

	creds := api.CredentialsFrom(c.Request())
	var err error
	if ch.New {
		err = h.api.AddUser(c.Request().Context(), creds, ch.Request)
	} else {
		err = h.api.UpdateUser(c.Request().Context(), creds, ch.Request)
	}
	if err != nil {
		slog.Error("failed to save profile", "new", ch.New, "fields", ch.Fields, "error", err)
		data := profileData(ps)
		data.Form = form
		data.Editing = true
		data.Error = errProfileSave
		return RenderStatus(c, http.StatusBadGateway, views.Profile(h.page(c), data))
	}

	loader.Set(ch.Profile)
	slog.Info("profile saved", "new", ch.New, "fields", ch.Fields)

	if ch.New {
		return c.Redirect(http.StatusSeeOther, "/user-dashboard?welcome=1")
	}
	return c.Redirect(http.StatusSeeOther, "/user-dashboard")
}

func profileData(ps profile.State) views.ProfileData {
	data := views.ProfileData{
		Profile: ps.Profile,
		Form:    ps.Profile,
		Email:   ps.Profile.Email,
		Error:   ps.Error,
	}

	if ps.Status == profile.StatusNeedsSetup {
		data.New = true
		data.Email = ps.Identity.Email
		first, last, _ := strings.Cut(ps.Identity.Name, " ")
		data.Form = profile.UserProfile{FirstName: first, LastName: last}
	}
	return data
}
