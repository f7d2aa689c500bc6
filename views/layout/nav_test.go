package layout

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/session"
	"github.com/stretchr/testify/assert"
)

func hrefs(items []NavItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Href
	}
	return out
}

func TestNav_ByRole(t *testing.T) {
	assert.Contains(t, hrefs(Nav(session.RoleGuest, "/")), "/login")
	assert.Contains(t, hrefs(Nav(session.RoleUnknown, "/")), "/login")
	assert.NotContains(t, hrefs(Nav(session.RoleMember, "/")), "/admin-dashboard")
	assert.Contains(t, hrefs(Nav(session.RoleAdmin, "/")), "/admin-dashboard")
}

func TestNav_ActiveItem(t *testing.T) {
	items := Nav(session.RoleMember, "/events")

	for _, item := range items {
		if item.Href == "/events" {
			assert.True(t, item.Active)
			assert.Contains(t, item.Class, "text-white")
			assert.NotContains(t, item.Class, "text-slate-700")
		} else {
			assert.False(t, item.Active)
		}
	}
}

func TestNavClass_ExtraOverrides(t *testing.T) {
	class := NavClass(false, "px-6")
	assert.Contains(t, class, "px-6")
	assert.NotContains(t, class, "px-3")
}

func TestNewPageMeta(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/about", nil), httptest.NewRecorder())

	pm := NewPageMeta(c, "https://circles.example.com/").WithTitle("About")

	assert.Equal(t, "About - Social Circles", pm.Title)
	assert.Equal(t, "https://circles.example.com/about", pm.CanonicalURL)
	assert.False(t, pm.NoIndex)
	assert.True(t, pm.Private().NoIndex)
}

func TestBuildAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://a.example", BuildAbsoluteURL("https://a.example", ""))
	assert.Equal(t, "https://b.example/x", BuildAbsoluteURL("https://a.example", "https://b.example/x"))
	assert.Equal(t, "https://a.example/x", BuildAbsoluteURL("https://a.example/", "x"))
}
