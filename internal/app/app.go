package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/partners/internal/auth"
	"github.com/thenoetrevino/partners/internal/board"
	"github.com/thenoetrevino/partners/internal/config"
	"github.com/thenoetrevino/partners/internal/database"
	"github.com/thenoetrevino/partners/internal/events"
	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/querycache"
	"github.com/thenoetrevino/partners/internal/remote"
	partnerservice "github.com/thenoetrevino/partners/internal/services/partner"
	stageservice "github.com/thenoetrevino/partners/internal/services/stage"
	"github.com/thenoetrevino/partners/internal/watch"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Record store (local SQLite or hosted REST)
	store database.PartnerStore

	// Event system for live updates
	eventClient events.EventPublisher

	cache  *querycache.Cache
	logger *slog.Logger
	dbPath string

	// Service layer (business logic)
	StageService   stageservice.Service
	PartnerService partnerservice.Service
	Gate           *auth.Gate

	// the store is readable without a session token
	sessionless bool

	mu      sync.Mutex
	closers []io.Closer
	live    bool
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(store database.PartnerStore, gate *auth.Gate, opts ...Option) *App {
	cfg := defaultAppConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.cache == nil {
		cfg.cache = querycache.New()
	}
	sessionless := gate == nil
	if sessionless {
		gate = auth.NewGate(auth.NewLocalProvider())
	}

	stages := stageservice.NewService(cfg.stageDefaults)
	return &App{
		store:          store,
		eventClient:    cfg.eventClient,
		cache:          cfg.cache,
		logger:         cfg.logger,
		dbPath:         cfg.dbPath,
		StageService:   stages,
		PartnerService: partnerservice.NewService(store, cfg.cache, stages, cfg.eventClient),
		Gate:           gate,
		sessionless:    sessionless,
		closers:        cfg.closers,
	}
}

// Open builds the App described by cfg: the hosted backend with its auth
// provider when backend.url is set, otherwise the local database with the
// OS user signed in.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	opts = append([]Option{WithStageDefaults(cfg.Stages.Defaults)}, opts...)

	if cfg.Backend.Remote() {
		var gate *auth.Gate
		client, err := remote.NewClient(cfg.Backend.URL, cfg.Backend.APIKey,
			remote.WithTokenSource(func() string { return gate.AccessToken() }))
		if err != nil {
			return nil, err
		}
		sessionPath, err := auth.DefaultSessionPath()
		if err != nil {
			return nil, fmt.Errorf("locate session file: %w", err)
		}
		gate = auth.NewGate(auth.NewRemoteProvider(client, auth.SessionFile{Path: sessionPath}))
		store := remote.NewPartnerStore(client, cfg.Backend.Table)

		slog.Info("using hosted backend", "url", client.BaseURL(), "table", cfg.Backend.Table)
		return New(store, gate, opts...), nil
	}

	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	opts = append(opts, WithCloser(db), WithDatabaseFile(cfg.Database.Path))

	slog.Info("using local database", "path", cfg.Database.Path)
	return New(database.NewPartnerRepo(db), nil, opts...), nil
}

// Cache returns the query cache shared by every view.
func (a *App) Cache() *querycache.Cache {
	return a.cache
}

// Store returns the underlying record store for direct access.
func (a *App) Store() database.PartnerStore {
	return a.store
}

// NewBoard returns a board reconciler persisting through the partner service.
func (a *App) NewBoard() *board.Reconciler {
	return board.NewReconciler(a.PartnerService)
}

// Start resolves the session and loads the partner collection. A local
// store needs no access token, so both run at once; a hosted store is only
// queried once a session is restored. A failed session lookup only leaves
// the user signed out. The partners are nil when nothing was fetched.
func (a *App) Start(ctx context.Context) ([]*models.Partner, error) {
	if !a.sessionless {
		a.resolveSession(ctx)
		if a.Gate.Route() != auth.RouteApp {
			return nil, nil
		}
		return a.PartnerService.ListPartners(ctx)
	}

	var (
		g        errgroup.Group
		partners []*models.Partner
	)
	g.Go(func() error {
		a.resolveSession(ctx)
		return nil
	})
	g.Go(func() error {
		p, err := a.PartnerService.ListPartners(ctx)
		if err != nil {
			return fmt.Errorf("initial fetch: %w", err)
		}
		partners = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return partners, nil
}

func (a *App) resolveSession(ctx context.Context) {
	if err := a.Gate.Resolve(ctx); err != nil {
		a.logger.Warn("could not restore session", "error", err)
	}
}

// StartLiveUpdates wires cross-process invalidation: daemon events when an
// event client is connected, otherwise a watcher on the local database
// file. With neither, the cache only refreshes on local mutations.
func (a *App) StartLiveUpdates(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.live {
		return nil
	}

	if a.eventClient != nil {
		ch, err := a.eventClient.Listen(ctx)
		if err != nil {
			return fmt.Errorf("listen for events: %w", err)
		}
		if err := a.eventClient.Subscribe(events.TopicPartners); err != nil {
			a.logger.Warn("could not subscribe to partner events", "error", err)
		}
		go events.Forward(ctx, ch, a.cache, nil)
		a.live = true
		a.logger.Info("live updates from daemon enabled")
		return nil
	}

	if a.dbPath == "" || a.dbPath == ":memory:" {
		return nil
	}
	w, err := watch.New(a.dbPath, a.cache)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	a.closers = append(a.closers, closerFunc(w.Stop))
	a.live = true
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Close releases the watcher, the database and the cache, newest first.
func (a *App) Close() error {
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.cache.Close()
	return errors.Join(errs...)
}
