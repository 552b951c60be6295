package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/thenoetrevino/partners/internal/remote"
)

// tokenResponse is the body of a successful token grant.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (t tokenResponse) session(now time.Time) (*Session, error) {
	if t.AccessToken == "" || t.User.ID == "" {
		return nil, fmt.Errorf("auth response missing token or user")
	}
	s := &Session{
		UserID:       t.User.ID,
		Email:        t.User.Email,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
	}
	switch {
	case t.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(t.ExpiresAt, 0)
	case t.ExpiresIn > 0:
		s.ExpiresAt = now.Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return s, nil
}

// RemoteProvider signs in against the hosted auth service with the
// password grant and keeps the session in a file.
type RemoteProvider struct {
	client *remote.Client
	file   SessionFile
	now    func() time.Time
}

// NewRemoteProvider creates a provider sharing client's project url and key.
func NewRemoteProvider(client *remote.Client, file SessionFile) *RemoteProvider {
	return &RemoteProvider{client: client, file: file, now: time.Now}
}

func grant(kind string) url.Values {
	q := url.Values{}
	q.Set("grant_type", kind)
	return q
}

// SignIn exchanges email and password for a session.
func (p *RemoteProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var resp tokenResponse
	err := p.client.PostJSON(ctx, "/auth/v1/token", grant("password"),
		map[string]string{"email": email, "password": password}, &resp)
	if err != nil {
		var he *remote.HTTPError
		if errors.As(err, &he) && (he.Status == http.StatusBadRequest || he.Status == http.StatusUnauthorized) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, he.Message)
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}

	s, err := resp.session(p.now())
	if err != nil {
		return nil, err
	}
	if err := p.file.Save(s); err != nil {
		slog.Warn("could not persist session", "error", err)
	}
	return s, nil
}

// Restore loads the stored session and refreshes it when expired.
func (p *RemoteProvider) Restore(ctx context.Context) (*Session, error) {
	s, err := p.file.Load()
	if err != nil || s == nil {
		return nil, err
	}
	if !s.Expired(p.now()) {
		return s, nil
	}
	if s.RefreshToken == "" {
		_ = p.file.Clear()
		return nil, nil
	}

	var resp tokenResponse
	err = p.client.PostJSON(ctx, "/auth/v1/token", grant("refresh_token"),
		map[string]string{"refresh_token": s.RefreshToken}, &resp)
	if err != nil {
		// an expired refresh token just means signing in again
		slog.Info("session refresh failed", "error", err)
		_ = p.file.Clear()
		return nil, nil
	}
	fresh, err := resp.session(p.now())
	if err != nil {
		return nil, err
	}
	if err := p.file.Save(fresh); err != nil {
		slog.Warn("could not persist session", "error", err)
	}
	return fresh, nil
}

// SignOut revokes the session on the server and forgets it locally.
func (p *RemoteProvider) SignOut(ctx context.Context, s *Session) error {
	clearErr := p.file.Clear()
	if s == nil || s.AccessToken == "" {
		return clearErr
	}
	if err := p.client.PostJSONWithToken(ctx, "/auth/v1/logout", s.AccessToken, nil); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return clearErr
}
