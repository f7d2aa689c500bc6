package auth

import (
	"github.com/socialcircles/circles-web/internal/session"
)

// Capability is the minimum session level a route requires.
type Capability int

const (
	CapabilityNone Capability = iota
	CapabilityAuthenticated
	CapabilityAdmin
)

func (c Capability) String() string {
	switch c {
	case CapabilityNone:
		return "none"
	case CapabilityAuthenticated:
		return "authenticated"
	case CapabilityAdmin:
		return "admin"
	default:
		return "invalid"
	}
}

// SatisfiedBy must only be asked of a settled state.
func (c Capability) SatisfiedBy(st session.State) bool {
	switch c {
	case CapabilityNone:
		return true
	case CapabilityAuthenticated:
		return st.Authenticated
	case CapabilityAdmin:
		return st.Authenticated && st.IsAdmin
	default:
		return false
	}
}

type Outcome int

const (
	Allow Outcome = iota
	Redirect
	ShowLoading
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case ShowLoading:
		return "loading"
	default:
		return "invalid"
	}
}

// Decision is the guard's verdict. Target is only set for Redirect.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Decide is the whole route guard: a pure function of the session state and
// the route's requirement.
func Decide(st session.State, capability Capability, loginPath string) Decision {
	if st.Loading {
		return Decision{Outcome: ShowLoading}
	}

	if capability.SatisfiedBy(st) {
		return Decision{Outcome: Allow}
	}

	return Decision{Outcome: Redirect, Target: loginPath}
}
