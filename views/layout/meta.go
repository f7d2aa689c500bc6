package layout

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	SiteName           = "Social Circles"
	DefaultDescription = "Events, communities and resources for the Social Circles community"
)

// PageMeta contains the metadata rendered into every page head
type PageMeta struct {
	Title        string
	Description  string
	CanonicalURL string
	SiteName     string
	SiteURL      string
	// NoIndex is set on member pages so search engines skip them
	NoIndex bool
}

// NewPageMeta creates a PageMeta with site-wide defaults.
// Chain .WithTitle() or other modifiers afterwards.
func NewPageMeta(c echo.Context, siteURL string) PageMeta {
	return PageMeta{
		Title:        SiteName,
		Description:  DefaultDescription,
		CanonicalURL: BuildAbsoluteURL(siteURL, c.Request().URL.Path),
		SiteName:     SiteName,
		SiteURL:      siteURL,
	}
}

// WithTitle sets the page title, suffixed with the site name
func (pm PageMeta) WithTitle(title string) PageMeta {
	if title != "" {
		pm.Title = title + " - " + pm.SiteName
	}
	return pm
}

func (pm PageMeta) WithDescription(description string) PageMeta {
	if description != "" {
		pm.Description = description
	}
	return pm
}

func (pm PageMeta) Private() PageMeta {
	pm.NoIndex = true
	return pm
}

// BuildAbsoluteURL constructs an absolute URL from a path
func BuildAbsoluteURL(siteURL, path string) string {
	if path == "" {
		return siteURL
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	siteURL = strings.TrimRight(siteURL, "/")

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return siteURL + path
}
