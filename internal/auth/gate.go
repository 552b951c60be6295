package auth

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Provider signs users in and out.
type Provider interface {
	// Restore returns the session left from a previous run, or nil.
	Restore(ctx context.Context) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, s *Session) error
}

// Route is what the presentation layer should show.
type Route int

const (
	RouteLoading Route = iota
	RouteLogin
	RouteApp
)

func (r Route) String() string {
	switch r {
	case RouteLoading:
		return "loading"
	case RouteLogin:
		return "login"
	default:
		return "app"
	}
}

// Gate tracks session presence. It starts out loading until Resolve
// finishes. Safe for concurrent use.
type Gate struct {
	provider Provider

	mu      sync.RWMutex
	session *Session
	loading bool
}

// NewGate creates a gate in the loading state.
func NewGate(p Provider) *Gate {
	return &Gate{provider: p, loading: true}
}

// Session returns the current session.
func (g *Gate) Session() (*Session, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.session == nil {
		return nil, false
	}
	s := *g.session
	return &s, true
}

// Loading reports whether the initial session lookup is still running.
func (g *Gate) Loading() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.loading
}

// Route maps the gate state to a screen: loading placeholder, login view
// or the app.
func (g *Gate) Route() Route {
	g.mu.RLock()
	defer g.mu.RUnlock()
	switch {
	case g.loading:
		return RouteLoading
	case g.session == nil:
		return RouteLogin
	default:
		return RouteApp
	}
}

// AccessToken returns the bearer token of the current session, or "".
func (g *Gate) AccessToken() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.session == nil {
		return ""
	}
	return g.session.AccessToken
}

// Resolve looks up an existing session and ends the loading state. A
// failed lookup leaves the user signed out.
func (g *Gate) Resolve(ctx context.Context) error {
	s, err := g.provider.Restore(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.loading = false
	if err != nil {
		g.session = nil
		slog.Warn("session restore failed", "error", err)
		return err
	}
	g.session = s
	if s != nil {
		slog.Info("session restored", "user_id", s.UserID)
	}
	return nil
}

// SignIn authenticates and stores the session.
func (g *Gate) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	s, err := g.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.session = s
	g.loading = false
	g.mu.Unlock()

	slog.Info("signed in", "user_id", s.UserID)
	return s, nil
}

// SignOut ends the session. The local session is dropped even when the
// provider call fails.
func (g *Gate) SignOut(ctx context.Context) error {
	g.mu.Lock()
	s := g.session
	g.session = nil
	g.mu.Unlock()

	if s == nil {
		return ErrNoSession
	}
	return g.provider.SignOut(ctx, s)
}
