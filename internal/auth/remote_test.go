package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/partners/internal/remote"
)

const tokenBody = `{
 "access_token":"jwt-1","token_type":"bearer","expires_in":3600,
 "refresh_token":"r-1","user":{"id":"u-1","email":"ana@acme.io"}
}`

func newRemoteProvider(t *testing.T, handler http.HandlerFunc) (*RemoteProvider, SessionFile) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := remote.NewClient(srv.URL, "anon")
	require.NoError(t, err)

	file := SessionFile{Path: filepath.Join(t.TempDir(), "session.json")}
	return NewRemoteProvider(client, file), file
}

func TestRemoteProvider_SignIn(t *testing.T) {
	p, file := newRemoteProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@acme.io", body["email"])
		assert.Equal(t, "secret", body["password"])

		_, _ = io.WriteString(w, tokenBody)
	})

	s, err := p.SignIn(context.Background(), "ana@acme.io", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", s.UserID)
	assert.Equal(t, "jwt-1", s.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, time.Minute)

	stored, err := file.Load()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "jwt-1", stored.AccessToken)
}

func TestRemoteProvider_BadCredentials(t *testing.T) {
	p, file := newRemoteProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`)
	})

	_, err := p.SignIn(context.Background(), "ana@acme.io", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "Invalid login credentials")

	stored, _ := file.Load()
	assert.Nil(t, stored)
}

func TestRemoteProvider_RestoreValidSession(t *testing.T) {
	calls := 0
	p, file := newRemoteProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	require.NoError(t, file.Save(&Session{UserID: "u-1", AccessToken: "jwt", ExpiresAt: time.Now().Add(time.Hour)}))

	s, err := p.Restore(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "jwt", s.AccessToken)
	assert.Zero(t, calls, "a valid session needs no round trip")
}

func TestRemoteProvider_RestoreRefreshesExpired(t *testing.T) {
	p, file := newRemoteProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "r-0", body["refresh_token"])
		_, _ = io.WriteString(w, tokenBody)
	})
	require.NoError(t, file.Save(&Session{
		UserID:       "u-1",
		AccessToken:  "old",
		RefreshToken: "r-0",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}))

	s, err := p.Restore(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "jwt-1", s.AccessToken)
}

func TestRemoteProvider_RestoreRefreshRejected(t *testing.T) {
	p, file := newRemoteProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	require.NoError(t, file.Save(&Session{UserID: "u-1", RefreshToken: "r-0", ExpiresAt: time.Now().Add(-time.Minute)}))

	s, err := p.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)

	stored, _ := file.Load()
	assert.Nil(t, stored, "rejected session is forgotten")
}

func TestRemoteProvider_SignOut(t *testing.T) {
	p, file := newRemoteProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})
	s := &Session{UserID: "u-1", AccessToken: "jwt"}
	require.NoError(t, file.Save(s))

	require.NoError(t, p.SignOut(context.Background(), s))
	stored, _ := file.Load()
	assert.Nil(t, stored)
}

func TestSessionFile_Corrupt(t *testing.T) {
	file := SessionFile{Path: filepath.Join(t.TempDir(), "session.json")}
	require.NoError(t, file.Save(&Session{}))

	s, err := file.Load()
	require.NoError(t, err)
	assert.Nil(t, s, "session without user is ignored")

	assert.NoError(t, SessionFile{}.Clear())
}
