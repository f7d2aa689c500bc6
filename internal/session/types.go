package session

// State is the per-page-load view of the browser's session.
// Authenticated and IsAdmin are only meaningful once Loading is false.
type State struct {
	Authenticated bool `json:"authenticated"`
	IsAdmin       bool `json:"is_admin"`
	Loading       bool `json:"loading"`
}

// Role is the explicit guest/member/admin tag derived from a State.
type Role int

const (
	RoleUnknown Role = iota
	RoleGuest
	RoleMember
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleMember:
		return "member"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ParseRole is the inverse of Role.String. Unrecognised values map to RoleUnknown.
func ParseRole(s string) Role {
	switch s {
	case "guest":
		return RoleGuest
	case "member":
		return RoleMember
	case "admin":
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

// Role returns RoleUnknown while the check is still running.
func (s State) Role() Role {
	switch {
	case s.Loading:
		return RoleUnknown
	case !s.Authenticated:
		return RoleGuest
	case s.IsAdmin:
		return RoleAdmin
	default:
		return RoleMember
	}
}

// Loading is the state every page load starts in.
func Loading() State {
	return State{Loading: true}
}

// SignedOut is the settled, fail-closed state.
func SignedOut() State {
	return State{}
}

// SignedIn is the settled state for an authenticated session.
func SignedIn(isAdmin bool) State {
	return State{Authenticated: true, IsAdmin: isAdmin}
}

// Reason records why the last check settled the way it did. It is
// informational only and never consulted for access decisions.
type Reason string

const (
	ReasonPending         Reason = "pending"
	ReasonAuthenticated   Reason = "authenticated"
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonBlocked         Reason = "blocked"
	ReasonRejected        Reason = "rejected"
	ReasonUnreachable     Reason = "unreachable"
	ReasonMalformed       Reason = "malformed"
	ReasonLoggedOut       Reason = "logged_out"
)
