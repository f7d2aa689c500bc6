// Package views renders the site's pages as templ components backed by
// embedded templates.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/socialcircles/circles-web/internal/api"
	"github.com/socialcircles/circles-web/internal/auth"
	"github.com/socialcircles/circles-web/internal/profile"
	"github.com/socialcircles/circles-web/internal/session"
	"github.com/socialcircles/circles-web/views/helpers"
	"github.com/socialcircles/circles-web/views/layout"
)

//go:embed templates
var templateFS embed.FS

// DefaultPollInterval is how often the timeout script asks for the monitor status
const DefaultPollInterval = 15 * time.Second

var funcs = template.FuncMap{
	"eventWindow": helpers.FormatEventWindow,
	"eventTime":   helpers.FormatEventTime,
	"spotsLeft":   helpers.SpotsLeft,
	"pluralize":   helpers.Pluralize,
}

var pages = mustParse()

func mustParse() map[string]*template.Template {
	base := template.Must(template.New("base").Funcs(funcs).ParseFS(templateFS,
		"templates/layout.html",
		"templates/timeout.html",
		"templates/partials.html",
	))

	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		panic(err)
	}

	out := make(map[string]*template.Template, len(files))
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		out[name] = template.Must(template.Must(base.Clone()).ParseFS(templateFS, file))
	}
	return out
}

// Page is the chrome shared by every view
type Page struct {
	Meta        layout.PageMeta
	Role        session.Role
	Provisional bool
	Nav         []layout.NavItem
	CSRF        string
	// Monitor includes the session timeout dialog and its polling script
	Monitor bool
	PollMS  int64
}

// NewPage builds the page chrome for the current request. The timeout
// dialog is only included once the session check has confirmed a signed-in
// member.
func NewPage(c echo.Context, siteURL string, ac *auth.Context) Page {
	if ac == nil {
		ac = &auth.Context{Role: session.RoleGuest}
	}

	p := Page{
		Meta:        layout.NewPageMeta(c, siteURL),
		Role:        ac.Role,
		Provisional: ac.Provisional,
		Nav:         layout.Nav(ac.Role, c.Request().URL.Path),
		Monitor:     !ac.Provisional && !ac.IsGuest(),
		PollMS:      DefaultPollInterval.Milliseconds(),
	}
	if token, ok := c.Get("csrf").(string); ok {
		p.CSRF = token
	}
	if p.Monitor {
		p.Meta = p.Meta.Private()
	}
	return p
}

type view struct {
	Page Page
	Data any
}

func render(name string, p Page, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := pages[name]
		if !ok {
			return fmt.Errorf("unknown view %q", name)
		}
		return t.ExecuteTemplate(w, "layout", view{Page: p, Data: data})
	})
}

func Home(p Page) templ.Component {
	return render("home", p, nil)
}

func About(p Page) templ.Component {
	p.Meta = p.Meta.WithTitle("About")
	return render("about", p, nil)
}

func Contact(p Page) templ.Component {
	p.Meta = p.Meta.WithTitle("Contact")
	return render("contact", p, nil)
}

func Resources(p Page) templ.Component {
	p.Meta = p.Meta.WithTitle("Resources")
	return render("resources", p, nil)
}

type LoginData struct {
	LoginURL string
	Reason   string
}

func Login(p Page, data LoginData) templ.Component {
	p.Meta = p.Meta.WithTitle("Log in")
	return render("login", p, data)
}

func Unauthorized(p Page) templ.Component {
	p.Meta = p.Meta.WithTitle("Not allowed")
	return render("unauthorized", p, nil)
}

// Loading is the placeholder served while the session check is still running
func Loading(p Page, requestPath string) templ.Component {
	p.Meta = p.Meta.WithTitle("Loading").Private()
	p.Monitor = false
	return render("loading", p, struct{ Path string }{requestPath})
}

type ErrorData struct {
	Code    int
	Message string
}

func Error(p Page, data ErrorData) templ.Component {
	p.Meta = p.Meta.WithTitle("Error")
	return render("error", p, data)
}

type DashboardData struct {
	Profile      profile.UserProfile
	ProfileError string
	Events       []api.Event
	Communities  []api.Community
	ListError    string
	Welcome      bool
}

func Dashboard(p Page, data DashboardData) templ.Component {
	p.Meta = p.Meta.WithTitle("Dashboard")
	return render("dashboard", p, data)
}

type ProfileData struct {
	Profile profile.UserProfile
	Form    profile.UserProfile
	Email   string
	New     bool
	Editing bool
	Error   string
}

func Profile(p Page, data ProfileData) templ.Component {
	p.Meta = p.Meta.WithTitle("Profile")
	return render("profile", p, data)
}

type EventsData struct {
	Title  string
	Events []api.Event
	Error  string
}

func Events(p Page, data EventsData) templ.Component {
	p.Meta = p.Meta.WithTitle(data.Title)
	return render("events", p, data)
}

type CommunitiesData struct {
	Title       string
	Communities []api.Community
	Error       string
}

func Communities(p Page, data CommunitiesData) templ.Component {
	p.Meta = p.Meta.WithTitle(data.Title)
	return render("communities", p, data)
}

type CalendarDay struct {
	Label  string
	Events []api.Event
}

type CalendarData struct {
	Days  []CalendarDay
	Error string
}

func Calendar(p Page, data CalendarData) templ.Component {
	p.Meta = p.Meta.WithTitle("Calendar")
	return render("calendar", p, data)
}

type AdminData struct {
	EventCount     int
	CommunityCount int
	Error          string
}

func Admin(p Page, data AdminData) templ.Component {
	p.Meta = p.Meta.WithTitle("Admin")
	return render("admin", p, data)
}

// GroupByDay buckets events by start date, keeping the API's order. Events
// with unparseable times land under "Unscheduled" at the end.
func GroupByDay(events []api.Event) []CalendarDay {
	var days []CalendarDay
	index := map[string]int{}
	var unscheduled []api.Event

	for _, ev := range events {
		t, ok := helpers.ParseEventTime(ev.StartTime)
		if !ok {
			unscheduled = append(unscheduled, ev)
			continue
		}
		label := t.Format("Monday, Jan 2, 2006")
		i, seen := index[label]
		if !seen {
			i = len(days)
			index[label] = i
			days = append(days, CalendarDay{Label: label})
		}
		days[i].Events = append(days[i].Events, ev)
	}

	if len(unscheduled) > 0 {
		days = append(days, CalendarDay{Label: "Unscheduled", Events: unscheduled})
	}
	return days
}
