package app

import (
	"io"
	"log/slog"

	"github.com/thenoetrevino/partners/internal/events"
	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/querycache"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient   events.EventPublisher
	logger        *slog.Logger
	cache         *querycache.Cache
	stageDefaults []string
	dbPath        string
	closers       []io.Closer
}

func defaultAppConfig() *appConfig {
	return &appConfig{
		logger:        slog.Default(),
		stageDefaults: models.DefaultStages(),
	}
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithCache shares an existing query cache
func WithCache(c *querycache.Cache) Option {
	return func(cfg *appConfig) {
		cfg.cache = c
	}
}

// WithStageDefaults sets the stages a fresh registry starts with
func WithStageDefaults(stages []string) Option {
	return func(cfg *appConfig) {
		if len(stages) > 0 {
			cfg.stageDefaults = stages
		}
	}
}

// WithDatabaseFile names the local database file so that external writes
// to it can be watched when no daemon is connected
func WithDatabaseFile(path string) Option {
	return func(cfg *appConfig) {
		cfg.dbPath = path
	}
}

// WithCloser registers a resource closed by App.Close
func WithCloser(c io.Closer) Option {
	return func(cfg *appConfig) {
		cfg.closers = append(cfg.closers, c)
	}
}
