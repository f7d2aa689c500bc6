package session

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Wait when the store was closed before a check settled.
var ErrClosed = errors.New("session store closed before the check settled")

// Reader is the read-only view handed to guards, loaders and handlers.
type Reader interface {
	State() State
	Reason() Reason
	Wait(ctx context.Context) (State, error)
}

// Writer is held by the authenticator and by logout only.
type Writer interface {
	Settle(state State, reason Reason) bool
	Clear()
}

// Store holds the session state for a single page load.
type Store struct {
	mu      sync.RWMutex
	state   State
	reason  Reason
	closed  bool
	settled chan struct{}
	once    sync.Once
}

// NewStore returns a store in the loading state.
func NewStore() *Store {
	return &Store{
		state:   Loading(),
		reason:  ReasonPending,
		settled: make(chan struct{}),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Reason returns why the state last settled.
func (s *Store) Reason() Reason {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reason
}

// Settle records a finished check. Loading is always cleared. Writes to a
// closed store are dropped and Settle reports false.
func (s *Store) Settle(state State, reason Reason) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	state.Loading = false
	s.state = state
	s.reason = reason
	s.mu.Unlock()

	s.once.Do(func() { close(s.settled) })
	return true
}

// Clear is the explicit logout transition.
func (s *Store) Clear() {
	s.Settle(SignedOut(), ReasonLoggedOut)
}

// Close ends the page load. Later writes are discarded and pending
// waiters are released.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.once.Do(func() { close(s.settled) })
}

// Wait blocks until the check settles, the store closes, or ctx is done.
func (s *Store) Wait(ctx context.Context) (State, error) {
	select {
	case <-s.settled:
		st := s.State()
		if st.Loading {
			return st, ErrClosed
		}
		return st, nil
	case <-ctx.Done():
		return s.State(), ctx.Err()
	}
}
