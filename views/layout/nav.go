package layout

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/socialcircles/circles-web/internal/session"
)

const (
	navLinkBase   = "px-3 py-2 rounded-md text-sm font-medium text-slate-700 hover:bg-slate-100"
	navLinkActive = "bg-indigo-600 text-white hover:bg-indigo-700"
)

type NavItem struct {
	Label  string
	Href   string
	Class  string
	Active bool
}

var (
	guestNav = []NavItem{
		{Label: "Home", Href: "/"},
		{Label: "About", Href: "/about"},
		{Label: "Resources", Href: "/resources"},
		{Label: "Contact", Href: "/contact"},
		{Label: "Log in", Href: "/login"},
	}

	memberNav = []NavItem{
		{Label: "Dashboard", Href: "/user-dashboard"},
		{Label: "Events", Href: "/events"},
		{Label: "My Events", Href: "/registered-events"},
		{Label: "Calendar", Href: "/calendar"},
		{Label: "Communities", Href: "/communities"},
		{Label: "My Communities", Href: "/my-communities"},
		{Label: "Profile", Href: "/profile"},
		{Label: "Log out", Href: "/logout"},
	}

	adminNav = []NavItem{
		{Label: "Admin", Href: "/admin-dashboard"},
		{Label: "Events", Href: "/events"},
		{Label: "Communities", Href: "/communities"},
		{Label: "Calendar", Href: "/calendar"},
		{Label: "Resources", Href: "/resources"},
		{Label: "Profile", Href: "/profile"},
		{Label: "Log out", Href: "/logout"},
	}
)

// Nav returns the navigation for a role with the current path highlighted.
// Unknown roles get the guest navigation.
func Nav(role session.Role, path string) []NavItem {
	var src []NavItem
	switch role {
	case session.RoleAdmin:
		src = adminNav
	case session.RoleMember:
		src = memberNav
	default:
		src = guestNav
	}

	items := make([]NavItem, len(src))
	for i, item := range src {
		item.Active = item.Href == path
		item.Class = NavClass(item.Active)
		items[i] = item
	}
	return items
}

// NavClass merges the active classes over the base link classes
func NavClass(active bool, extra ...string) string {
	classes := []string{navLinkBase}
	if active {
		classes = append(classes, navLinkActive)
	}
	return twmerge.Merge(append(classes, extra...)...)
}
