package app

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/partners/internal/auth"
	"github.com/thenoetrevino/partners/internal/board"
	"github.com/thenoetrevino/partners/internal/config"
	"github.com/thenoetrevino/partners/internal/database"
	"github.com/thenoetrevino/partners/internal/events"
	"github.com/thenoetrevino/partners/internal/models"
	partnerservice "github.com/thenoetrevino/partners/internal/services/partner"
	"github.com/thenoetrevino/partners/internal/testutil"
)

func newTestApp(t *testing.T, opts ...Option) (*App, *testutil.EventRecorder) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	pub := testutil.NewEventRecorder()
	opts = append([]Option{WithEventPublisher(pub)}, opts...)
	a := New(database.NewPartnerRepo(db), nil, opts...)
	t.Cleanup(func() { _ = a.Close() })
	return a, pub
}

func TestNew(t *testing.T) {
	a, _ := newTestApp(t)

	if a.PartnerService == nil {
		t.Error("Expected PartnerService to be initialized")
	}
	if a.StageService == nil {
		t.Error("Expected StageService to be initialized")
	}
	if a.Gate == nil || !a.Gate.Loading() {
		t.Error("Expected a gate that is still loading")
	}
	if a.Cache() == nil {
		t.Error("Expected a query cache")
	}
}

func TestWithStageDefaults(t *testing.T) {
	a, _ := newTestApp(t, WithStageDefaults([]string{"Intro", "Pilot"}))

	assert.True(t, a.StageService.IsKnown("Pilot"))
	assert.False(t, a.StageService.IsKnown("Design"))
}

func TestStart_LocalStoreResolvesAndFetches(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestPartner(t, db, "acme", "Design")
	testutil.CreateTestPartner(t, db, "globex", "Pilot")

	a := New(database.NewPartnerRepo(db), nil)
	t.Cleanup(func() { _ = a.Close() })

	partners, err := a.Start(context.Background())
	require.NoError(t, err)
	assert.Len(t, partners, 2)

	assert.Equal(t, auth.RouteApp, a.Gate.Route(), "local provider signs in the OS user")
	res, ok := a.Cache().Peek("design_partners")
	require.True(t, ok)
	assert.False(t, res.Stale)
	assert.True(t, a.StageService.IsKnown("Pilot"), "observed stage registered by the fetch")
}

// countingStore records how often the collection is listed.
type countingStore struct {
	database.PartnerStore
	lists atomic.Int32
	err   error
}

func (s *countingStore) List(ctx context.Context) ([]*models.Partner, error) {
	s.lists.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.PartnerStore.List(ctx)
}

type noSessionProvider struct{}

func (noSessionProvider) Restore(context.Context) (*auth.Session, error) { return nil, nil }
func (noSessionProvider) SignIn(context.Context, string, string) (*auth.Session, error) {
	return nil, auth.ErrInvalidCredentials
}
func (noSessionProvider) SignOut(context.Context, *auth.Session) error { return nil }

func TestStart_HostedStoreWaitsForSession(t *testing.T) {
	store := &countingStore{PartnerStore: database.NewPartnerRepo(testutil.SetupTestDB(t))}
	a := New(store, auth.NewGate(noSessionProvider{}))
	t.Cleanup(func() { _ = a.Close() })

	partners, err := a.Start(context.Background())
	require.NoError(t, err)
	assert.Nil(t, partners)
	assert.Equal(t, auth.RouteLogin, a.Gate.Route())
	assert.Zero(t, store.lists.Load(), "no fetch without a session")
}

func TestStart_FetchFailureKeepsSession(t *testing.T) {
	store := &countingStore{
		PartnerStore: database.NewPartnerRepo(testutil.SetupTestDB(t)),
		err:          models.NewStoreError("list", assert.AnError),
	}
	a := New(store, nil)
	t.Cleanup(func() { _ = a.Close() })

	_, err := a.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, auth.RouteApp, a.Gate.Route(), "a failed fetch does not sign the user out")
}

func TestNewBoard_CrossColumnDropPersists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	id := testutil.CreateTestPartner(t, db, "acme", "Design")

	pub := testutil.NewEventRecorder()
	a := New(database.NewPartnerRepo(db), nil, WithEventPublisher(pub))
	t.Cleanup(func() { _ = a.Close() })
	ctx := context.Background()

	partners, err := a.PartnerService.ListPartners(ctx)
	require.NoError(t, err)

	b := a.NewBoard()
	b.Rebuild(partners, a.StageService.ListStages())

	src := board.Location{Stage: "Design", Index: 0}
	require.NoError(t, b.DragStart(src))
	c, err := b.DragEnd(ctx, src, &board.Location{Stage: "Testing", Index: 0})
	require.NoError(t, err)
	assert.Equal(t, board.Moved, c.Kind)

	got, err := a.PartnerService.GetPartner(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Testing", got.Stage)
	assert.Equal(t, 1, pub.EventCount())
}

func TestOpen_LocalDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "partners.db")

	a, err := Open(context.Background(), cfg)
	require.NoError(t, err)

	_, err = a.PartnerService.CreatePartner(context.Background(), partnerservice.CreatePartnerRequest{
		Name: "Acme", Email: "ops@acme.io", Stage: "Design",
	})
	require.NoError(t, err)

	require.NoError(t, a.StartLiveUpdates(context.Background()))
	assert.NoError(t, a.Close())
}

func TestOpen_RemoteBackendNeedsValidURL(t *testing.T) {
	cfg := config.Default()
	cfg.Backend.URL = "ftp://acme.example.co"
	cfg.Backend.APIKey = "k"

	_, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestLiveUpdates_DaemonEventInvalidatesOtherClient(t *testing.T) {
	t.Setenv("PARTNERS_EVENT_DEBOUNCE_MS", "10")

	d := testutil.StartDaemon(t)
	db := testutil.SetupTestDB(t)
	store := database.NewPartnerRepo(db)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	writerClient := d.Client()
	readerClient := d.Client()

	writer := New(store, nil, WithEventPublisher(writerClient))
	reader := New(store, nil, WithEventPublisher(readerClient))
	t.Cleanup(func() {
		_ = writer.Close()
		_ = reader.Close()
	})

	d.AwaitClients(2)
	require.NoError(t, reader.StartLiveUpdates(ctx))

	_, err := reader.PartnerService.ListPartners(ctx)
	require.NoError(t, err)
	invalidated, unsubscribe := reader.Cache().Subscribe(4)
	defer unsubscribe()

	_, err = writer.PartnerService.CreatePartner(ctx, partnerservice.CreatePartnerRequest{
		Name: "Acme", Email: "ops@acme.io", Stage: "Design",
	})
	require.NoError(t, err)

	prefix := testutil.NextInvalidation(t, invalidated, 3*time.Second)
	assert.Equal(t, events.TopicPartners, prefix)

	res, ok := reader.Cache().Peek("design_partners")
	require.True(t, ok)
	assert.True(t, res.Stale)

	partners, err := reader.PartnerService.ListPartners(ctx)
	require.NoError(t, err)
	assert.Len(t, partners, 1)
}
