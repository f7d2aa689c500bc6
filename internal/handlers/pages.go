package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/views"
)

func (h *Handler) HandleHome(c echo.Context) error {
	return Render(c, views.Home(h.page(c)))
}

func (h *Handler) HandleAbout(c echo.Context) error {
	return Render(c, views.About(h.page(c)))
}

func (h *Handler) HandleContact(c echo.Context) error {
	return Render(c, views.Contact(h.page(c)))
}

func (h *Handler) HandleResources(c echo.Context) error {
	return Render(c, views.Resources(h.page(c)))
}
