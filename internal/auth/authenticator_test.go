package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/socialcircles/circles-web/internal/api"
	"github.com/socialcircles/circles-web/internal/session"
	"github.com/stretchr/testify/assert"
)

// newAPI starts a fake community API answering /authenticate with status and body
func newAPI(t *testing.T, status int, body string) *api.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, time.Second)
}

func TestAuthenticator_Check(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantState  session.State
		wantReason session.Reason
	}{
		{
			name:       "admin",
			status:     http.StatusOK,
			body:       `{"status":"auth","is_admin":true}`,
			wantState:  session.State{Authenticated: true, IsAdmin: true},
			wantReason: session.ReasonAuthenticated,
		},
		{
			name:       "member",
			status:     http.StatusOK,
			body:       `{"status":"auth","is_admin":false}`,
			wantState:  session.State{Authenticated: true},
			wantReason: session.ReasonAuthenticated,
		},
		{
			name:       "member without admin flag",
			status:     http.StatusOK,
			body:       `{"status":"auth"}`,
			wantState:  session.State{Authenticated: true},
			wantReason: session.ReasonAuthenticated,
		},
		{
			name:       "other status on success",
			status:     http.StatusOK,
			body:       `{"status":"not auth"}`,
			wantState:  session.State{},
			wantReason: session.ReasonUnauthenticated,
		},
		{
			name:       "admin flag without auth status",
			status:     http.StatusOK,
			body:       `{"status":"pending","is_admin":true}`,
			wantState:  session.State{},
			wantReason: session.ReasonUnauthenticated,
		},
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"status":"not auth"}`,
			wantState:  session.State{},
			wantReason: session.ReasonUnauthenticated,
		},
		{
			name:       "blocked",
			status:     http.StatusForbidden,
			body:       `{"status":"blocked"}`,
			wantState:  session.State{},
			wantReason: session.ReasonBlocked,
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       `oops`,
			wantState:  session.State{},
			wantReason: session.ReasonRejected,
		},
		{
			name:       "malformed body",
			status:     http.StatusOK,
			body:       `{"status":`,
			wantState:  session.State{},
			wantReason: session.ReasonMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authn := NewAuthenticator(newAPI(t, tt.status, tt.body))

			st, reason := authn.Check(context.Background(), nil)

			assert.Equal(t, tt.wantState, st)
			assert.Equal(t, tt.wantReason, reason)
			assert.False(t, st.Loading, "a finished check is never loading")
		})
	}
}

func TestAuthenticator_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	authn := NewAuthenticator(api.NewClient(url, time.Second))
	st, reason := authn.Check(context.Background(), nil)

	assert.Equal(t, session.SignedOut(), st)
	assert.Equal(t, session.ReasonUnreachable, reason)
}

func TestAuthenticator_Idempotent(t *testing.T) {
	authn := NewAuthenticator(newAPI(t, http.StatusOK, `{"status":"auth","is_admin":true}`))

	first, firstReason := authn.Check(context.Background(), nil)
	second, secondReason := authn.Check(context.Background(), nil)

	assert.Equal(t, first, second)
	assert.Equal(t, firstReason, secondReason)
}
