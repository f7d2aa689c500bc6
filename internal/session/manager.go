package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	hintName = "circles_hint"
	roleKey  = "role"
)

// HintManager keeps the coarse role hint in a signed cookie so the loading
// placeholder can show the right navigation before the real check returns.
// The hint is never used for access decisions.
type HintManager struct {
	store sessions.Store
}

// NewHintManager creates a hint manager signing cookies with secret
func NewHintManager(secret string, secure bool) *HintManager {
	store := sessions.NewCookieStore([]byte(secret))

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &HintManager{
		store: store,
	}
}

// Save writes the hint for a settled state. Loading states are not cached.
func (m *HintManager) Save(c echo.Context, state State) error {
	if state.Loading {
		return nil
	}

	hint, err := m.store.Get(c.Request(), hintName)
	if err != nil {
		// A cookie signed with an old secret decodes with an error but
		// still yields a fresh session we can overwrite.
		if hint == nil {
			return fmt.Errorf("failed to get hint: %w", err)
		}
	}

	hint.Values[roleKey] = state.Role().String()

	if err := hint.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("failed to save hint: %w", err)
	}

	return nil
}

// Load returns the cached role, or RoleUnknown when there is none.
func (m *HintManager) Load(c echo.Context) Role {
	hint, err := m.store.Get(c.Request(), hintName)
	if err != nil || hint == nil {
		return RoleUnknown
	}

	role, ok := hint.Values[roleKey].(string)
	if !ok {
		return RoleUnknown
	}

	return ParseRole(role)
}

// Destroy clears the hint cookie
func (m *HintManager) Destroy(c echo.Context) error {
	hint, err := m.store.Get(c.Request(), hintName)
	if err != nil && hint == nil {
		return fmt.Errorf("failed to get hint: %w", err)
	}

	hint.Options.MaxAge = -1
	delete(hint.Values, roleKey)

	if err := hint.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("failed to destroy hint: %w", err)
	}

	return nil
}
