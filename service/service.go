package service

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/socialcircles/circles-web/internal/api"
	"github.com/socialcircles/circles-web/internal/auth"
	"github.com/socialcircles/circles-web/internal/handlers"
	"github.com/socialcircles/circles-web/internal/profile"
	"github.com/socialcircles/circles-web/internal/session"
	"github.com/socialcircles/circles-web/internal/timeout"
)

type Service struct {
	config   *Config
	api      *api.Client
	hints    *session.HintManager
	monitors *timeout.Registry
	authn    *auth.Authenticator
	handler  *handlers.Handler
}

func New(config *Config) *Service {
	client := api.NewClient(config.API.URL, config.API.Timeout)
	hints := session.NewHintManager(config.Session.Secret, config.IsProduction())
	monitors := timeout.NewRegistry(client, client.LogoutURL(), timeout.Config{
		Timeout: config.Session.Timeout,
		TTL:     config.Session.MonitorTTL,
	})

	return &Service{
		config:   config,
		api:      client,
		hints:    hints,
		monitors: monitors,
		authn:    auth.NewAuthenticator(client),
		handler: handlers.New(handlers.Options{
			API:      client,
			Hints:    hints,
			Monitors: monitors,
			SiteURL:  config.BaseURL,
			Secure:   config.IsProduction(),
		}),
	}
}

// Handler exposes the page handlers, mainly for the HTTP error handler
func (s *Service) Handler() *handlers.Handler {
	return s.handler
}

// Start begins sweeping idle timeout monitors
func (s *Service) Start() error {
	return s.monitors.Start()
}

func (s *Service) Stop() {
	s.monitors.Stop()
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	h := s.handler

	csrf := middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "form:_csrf,header:X-CSRF-Token",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   s.config.IsProduction(),
		CookieSameSite: http.SameSiteLaxMode,
	})

	// Static files - no auth middleware
	e.Static("/public", "public")

	// Health check - no auth
	e.GET("/health", s.handleHealth)

	// Timeout dialog endpoints. These answer from the monitor registry and must
	// not start a session check of their own.
	sess := e.Group("/session", csrf)
	sess.GET("/status", h.HandleSessionStatus)
	sess.POST("/activity", h.HandleSessionActivity)
	sess.POST("/continue", h.HandleSessionContinue)
	sess.POST("/dismiss", h.HandleSessionDismiss)
	sess.POST("/end", h.HandleSessionEnd)

	// Everything else runs the session check once per request
	site := e.Group("")
	site.Use(csrf)
	site.Use(auth.Authenticate(s.authn, s.hints, s.config.Session.AuthWait))
	site.Use(profile.Middleware(s.api))

	// Public pages
	site.GET("/", h.HandleHome)
	site.GET("/about", h.HandleAbout)
	site.GET("/contact", h.HandleContact)
	site.GET("/resources", h.HandleResources)

	// Auth routes
	site.GET("/login", h.HandleLogin)
	site.GET("/logout", h.HandleLogout)
	site.GET("/unauthorized", h.HandleUnauthorized)
	site.GET("/session/state", h.HandleSessionState)

	// Guards are attached per route; a second group on the same prefix would
	// also catch unmatched paths and turn 404s into login redirects.
	member := []echo.MiddlewareFunc{
		h.RememberBlocked,
		auth.Guard(auth.CapabilityAuthenticated, "/login", h.Loading),
	}
	site.GET("/user-dashboard", h.HandleUserDashboard, member...)
	site.GET("/profile", h.HandleProfile, member...)
	site.POST("/profile", h.HandleProfileSave, member...)
	site.GET("/events", h.HandleEvents, member...)
	site.GET("/registered-events", h.HandleRegisteredEvents, member...)
	site.GET("/calendar", h.HandleCalendar, member...)
	site.GET("/communities", h.HandleCommunities, member...)
	site.GET("/my-communities", h.HandleMyCommunities, member...)

	admin := []echo.MiddlewareFunc{
		h.RememberBlocked,
		auth.Guard(auth.CapabilityAdmin, "/login", h.Loading),
	}
	site.GET("/admin-dashboard", h.HandleAdminDashboard, admin...)
}

func (s *Service) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":      "healthy",
		"environment": s.config.Environment,
		"monitors":    s.monitors.Len(),
	})
}
