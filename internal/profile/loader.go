package profile

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/socialcircles/circles-web/internal/api"
	"github.com/socialcircles/circles-web/internal/session"
)

// Fetcher is the part of the API client the loader needs.
type Fetcher interface {
	UserData(ctx context.Context, creds api.Credentials) (*api.UserData, error)
}

// Loader fetches the member's profile once per page load, after the session
// check has confirmed the browser is signed in.
type Loader struct {
	client Fetcher
	store  session.Reader
	creds  api.Credentials

	once  sync.Once
	mu    sync.RWMutex
	state State
}

func NewLoader(client Fetcher, store session.Reader, creds api.Credentials) *Loader {
	return &Loader{
		client: client,
		store:  store,
		creds:  creds,
		state:  State{Loading: true, Status: StatusLoading},
	}
}

// Load waits for the session check and then fetches the profile. Only the
// first call does any work; later calls return the settled state.
func (l *Loader) Load(ctx context.Context) State {
	l.once.Do(func() {
		l.load(ctx)
	})
	return l.State()
}

func (l *Loader) load(ctx context.Context) {
	st, err := l.store.Wait(ctx)
	if err != nil {
		slog.Debug("profile load abandoned", "error", err)
		l.finish(State{Error: ErrServer, Status: StatusFailed})
		return
	}

	if !st.Authenticated {
		l.finish(State{Status: StatusSignedOut})
		return
	}

	data, err := l.client.UserData(ctx, l.creds)
	if err != nil {
		slog.Error("failed to fetch user data", "error", err)
		l.finish(State{Error: ErrServer, Status: StatusFailed})
		return
	}

	if !data.HasProfile() {
		l.finish(State{
			Identity: identityOf(data),
			Status:   StatusNeedsSetup,
		})
		return
	}

	l.finish(State{Profile: fromUserData(data), Status: StatusComplete})
}

func (l *Loader) finish(s State) {
	s.Loading = false
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

// State returns a snapshot of what the loader currently knows.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Set applies a local edit after the API accepted it. Setting a profile
// with an email marks it complete.
func (l *Loader) Set(p UserProfile) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.Profile = p
	l.state.Loading = false
	l.state.Error = ""
	if p.Empty() {
		l.state.Status = StatusNeedsSetup
	} else {
		l.state.Status = StatusComplete
	}
}

func identityOf(u *api.UserData) Identity {
	name := u.Name
	if name == "" {
		name = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	return Identity{Name: name, Email: u.Email}
}
