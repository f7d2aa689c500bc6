package timeout

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/robfig/cron/v3"
)

// Config for monitors and their registry.
type Config struct {
	Timeout time.Duration
	// TTL is how long a monitor may go unseen before the sweep drops it.
	TTL time.Duration
	// SweepSpec is a cron spec for the sweep; defaults to every TTL/4.
	SweepSpec  string
	RenewEvery time.Duration
	RenewBurst int
}

func DefaultConfig() Config {
	return Config{
		Timeout:    DefaultTimeout,
		TTL:        2 * time.Hour,
		RenewEvery: 10 * time.Second,
		RenewBurst: 3,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.TTL <= 0 {
		c.TTL = d.TTL
	}
	if c.RenewEvery <= 0 {
		c.RenewEvery = d.RenewEvery
	}
	if c.RenewBurst <= 0 {
		c.RenewBurst = d.RenewBurst
	}
	if c.SweepSpec == "" {
		c.SweepSpec = fmt.Sprintf("@every %s", max(c.TTL/4, time.Second))
	}
	return c
}

// Registry owns the monitors of every browser, keyed by client ID.
type Registry struct {
	cfg       Config
	renewer   Renewer
	logoutURL string

	mu       sync.Mutex
	monitors map[string]*Monitor
	cron     *cron.Cron
}

func NewRegistry(renewer Renewer, logoutURL string, cfg Config) *Registry {
	return &Registry{
		cfg:       cfg.withDefaults(),
		renewer:   renewer,
		logoutURL: logoutURL,
		monitors:  make(map[string]*Monitor),
	}
}

// NewID returns a fresh client ID.
func NewID() string {
	return ulid.Make().String()
}

// ValidID reports whether id looks like a client ID we issued.
func ValidID(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}

// Get returns the monitor for id, if one exists.
func (r *Registry) Get(id string) (*Monitor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.monitors[id]
	return m, ok
}

// Ensure returns the monitor for id, starting a new countdown when none
// exists or the previous one ended. An invalid id gets a fresh one.
func (r *Registry) Ensure(id string) *Monitor {
	if !ValidID(id) {
		id = NewID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.monitors[id]; ok && m.Status().Phase != PhaseEnded {
		return m
	}

	m := newMonitor(id, r.cfg, r.renewer, r.logoutURL, r.prompted)
	r.monitors[id] = m
	return m
}

func (r *Registry) prompted(id string) {
	slog.Info("session timeout prompt raised", "client_id", id)
}

// Remove ends and forgets the monitor for id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	m, ok := r.monitors[id]
	delete(r.monitors, id)
	r.mu.Unlock()

	if ok {
		m.End()
	}
}

// Len returns the number of tracked monitors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.monitors)
}

// Sweep drops monitors that ended or have not been seen for the TTL. It
// never signs anyone out; it only frees memory.
func (r *Registry) Sweep(now time.Time) int {
	cutoff := now.Add(-r.cfg.TTL)

	r.mu.Lock()
	var stale []*Monitor
	for id, m := range r.monitors {
		if m.Status().Phase == PhaseEnded || m.idleSince().Before(cutoff) {
			stale = append(stale, m)
			delete(r.monitors, id)
		}
	}
	r.mu.Unlock()

	for _, m := range stale {
		m.End()
	}

	if len(stale) > 0 {
		slog.Debug("swept session monitors", "removed", len(stale))
	}
	return len(stale)
}

// Start schedules the sweep.
func (r *Registry) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(r.cfg.SweepSpec, func() { r.Sweep(time.Now()) }); err != nil {
		return fmt.Errorf("failed to schedule monitor sweep: %w", err)
	}

	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()

	c.Start()
	slog.Info("starting session monitor sweep", "schedule", r.cfg.SweepSpec, "ttl", r.cfg.TTL)
	return nil
}

// Stop halts the sweep and every countdown.
func (r *Registry) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	monitors := r.monitors
	r.monitors = make(map[string]*Monitor)
	r.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	for _, m := range monitors {
		m.End()
	}
	slog.Info("session monitor sweep stopped")
}
