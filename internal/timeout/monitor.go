// Package timeout tracks idle time per browser and asks the member whether
// to keep the session going once the countdown runs out.
package timeout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/socialcircles/circles-web/internal/api"
	"golang.org/x/time/rate"
)

const DefaultTimeout = 30 * time.Minute

var (
	ErrEnded           = errors.New("session already ended")
	ErrRateLimited     = errors.New("too many renewal attempts")
	ErrUnknownActivity = errors.New("activity does not reset the countdown")
)

// Renewer extends the server-side session.
type Renewer interface {
	ExtendSession(ctx context.Context, creds api.Credentials) ([]*http.Cookie, error)
}

// Phase is where a monitor is in its countdown.
type Phase int

const (
	PhaseActive Phase = iota
	PhasePrompting
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhasePrompting:
		return "prompting"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Activity kinds that reset the countdown.
const (
	ActivityClick    = "click"
	ActivityKeypress = "keypress"
	ActivityFetch    = "fetch"
)

func qualifies(kind string) bool {
	switch kind {
	case ActivityClick, ActivityKeypress, ActivityFetch:
		return true
	}
	return false
}

// Status is what the browser polls for.
type Status struct {
	Phase        Phase         `json:"-"`
	State        string        `json:"state"`
	Prompt       bool          `json:"prompt"`
	Prompts      int           `json:"prompts"`
	Remaining    time.Duration `json:"-"`
	RemainingMS  int64         `json:"remaining_ms"`
	LastActivity time.Time     `json:"last_activity"`
}

// Monitor is one browser's idle countdown.
type Monitor struct {
	id        string
	timeout   time.Duration
	renewer   Renewer
	logoutURL string
	limiter   *rate.Limiter

	mu           sync.Mutex
	phase        Phase
	prompts      int
	gen          uint64
	timer        *time.Timer
	lastActivity time.Time
	lastSeen     time.Time
	onPrompt     func(id string)
}

func newMonitor(id string, cfg Config, renewer Renewer, logoutURL string, onPrompt func(string)) *Monitor {
	now := time.Now()
	m := &Monitor{
		id:           id,
		timeout:      cfg.Timeout,
		renewer:      renewer,
		logoutURL:    logoutURL,
		limiter:      rate.NewLimiter(rate.Every(cfg.RenewEvery), cfg.RenewBurst),
		lastActivity: now,
		lastSeen:     now,
		onPrompt:     onPrompt,
	}

	m.mu.Lock()
	m.arm()
	m.mu.Unlock()
	return m
}

func (m *Monitor) ID() string {
	return m.id
}

// arm restarts the countdown. Callers hold mu.
func (m *Monitor) arm() {
	m.gen++
	gen := m.gen
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.timeout, func() { m.expire(gen) })
}

func (m *Monitor) expire(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.phase != PhaseActive {
		m.mu.Unlock()
		return
	}
	m.phase = PhasePrompting
	m.prompts++
	cb := m.onPrompt
	m.mu.Unlock()

	if cb != nil {
		cb(m.id)
	}
}

// Activity records a browser event. Qualifying events restart the
// countdown; while the prompt is up they are recorded but the prompt stays.
func (m *Monitor) Activity(kind string) error {
	if !qualifies(kind) {
		return fmt.Errorf("%w: %q", ErrUnknownActivity, kind)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.lastSeen = now

	switch m.phase {
	case PhaseEnded:
		return ErrEnded
	case PhasePrompting:
		m.lastActivity = now
		return nil
	}

	m.lastActivity = now
	m.arm()
	return nil
}

// Touch marks the monitor as still in use without counting as activity.
func (m *Monitor) Touch() {
	m.mu.Lock()
	m.lastSeen = time.Now()
	m.mu.Unlock()
}

// Status returns a snapshot for the browser.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	var remaining time.Duration
	if m.phase == PhaseActive {
		remaining = max(m.timeout-time.Since(m.lastActivity), 0)
	}

	return Status{
		Phase:        m.phase,
		State:        m.phase.String(),
		Prompt:       m.phase == PhasePrompting,
		Prompts:      m.prompts,
		Remaining:    remaining,
		RemainingMS:  remaining.Milliseconds(),
		LastActivity: m.lastActivity,
	}
}

// Continue renews the session through the API. On success the prompt is
// dismissed and the countdown restarts; the returned cookies carry the
// renewed session. On failure the prompt stays up.
func (m *Monitor) Continue(ctx context.Context, creds api.Credentials) ([]*http.Cookie, error) {
	m.mu.Lock()
	if m.phase == PhaseEnded {
		m.mu.Unlock()
		return nil, ErrEnded
	}
	m.lastSeen = time.Now()
	m.mu.Unlock()

	if !m.limiter.Allow() {
		return nil, ErrRateLimited
	}

	cookies, err := m.renewer.ExtendSession(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to extend session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == PhaseEnded {
		return cookies, nil
	}
	m.phase = PhaseActive
	m.lastActivity = time.Now()
	m.arm()

	slog.Debug("session extended", "client_id", m.id)
	return cookies, nil
}

// Dismiss closes the prompt without renewing and restarts the countdown.
func (m *Monitor) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhasePrompting {
		return
	}
	m.phase = PhaseActive
	m.lastActivity = time.Now()
	m.lastSeen = m.lastActivity
	m.arm()
}

// End stops the countdown and returns where the browser must navigate to
// terminate the session.
func (m *Monitor) End() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stop()
	m.phase = PhaseEnded
	return m.logoutURL
}

// stop cancels the timer. Callers hold mu.
func (m *Monitor) stop() {
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
	}
}

func (m *Monitor) idleSince() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSeen
}
