package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/socialcircles/circles-web/internal/api"
	"github.com/socialcircles/circles-web/internal/session"
)

// Checker is the part of the API client the authenticator needs.
type Checker interface {
	Authenticate(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error)
}

// Authenticator turns the API's /authenticate answer into a session state.
// Every failure is treated as signed out.
type Authenticator struct {
	client Checker
}

func NewAuthenticator(client Checker) *Authenticator {
	return &Authenticator{client: client}
}

// Check performs exactly one /authenticate call. The returned state is
// never loading.
func (a *Authenticator) Check(ctx context.Context, creds api.Credentials) (session.State, session.Reason) {
	resp, err := a.client.Authenticate(ctx, creds)
	if err != nil {
		reason := classify(err)
		slog.Debug("session check failed", "reason", reason, "error", err)
		return session.SignedOut(), reason
	}

	if resp.Status != api.StatusAuthenticated {
		return session.SignedOut(), session.ReasonUnauthenticated
	}

	return session.SignedIn(resp.IsAdmin), session.ReasonAuthenticated
}

func classify(err error) session.Reason {
	var se *api.StatusError
	var de *api.DecodeError

	switch {
	case errors.As(err, &se):
		switch se.Code {
		case http.StatusUnauthorized:
			return session.ReasonUnauthenticated
		case http.StatusForbidden:
			return session.ReasonBlocked
		default:
			return session.ReasonRejected
		}
	case errors.As(err, &de):
		return session.ReasonMalformed
	default:
		return session.ReasonUnreachable
	}
}
