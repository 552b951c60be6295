// Package watch turns writes to the local database file into query cache
// invalidations, for when no daemon relays change events.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thenoetrevino/partners/internal/events"
)

// DefaultDebounce is how long writes must settle before invalidating.
const DefaultDebounce = 250 * time.Millisecond

// Stats counts watcher activity.
type Stats struct {
	Writes        int
	Invalidations int
	Errors        int
}

// DBWatcher watches a SQLite file and its -wal/-journal siblings. The
// directory is watched rather than the file so that journal files created
// after start are seen.
type DBWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	cache    events.Invalidator
	debounce time.Duration

	mu      sync.Mutex
	pending bool
	last    time.Time
	stats   Stats
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Option configures a DBWatcher
type Option func(*DBWatcher)

// WithDebounce overrides DefaultDebounce
func WithDebounce(d time.Duration) Option {
	return func(w *DBWatcher) {
		w.debounce = d
	}
}

// New creates a watcher for the database at path.
func New(path string, cache events.Invalidator, opts ...Option) (*DBWatcher, error) {
	if path == "" || path == ":memory:" {
		return nil, fmt.Errorf("cannot watch database %q", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &DBWatcher{
		watcher:  fw,
		path:     abs,
		cache:    cache,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching in a goroutine. Calling Start twice is a no-op.
func (w *DBWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	w.running = true
	go w.run(ctx)

	slog.Info("watching database for external writes", "path", w.path)
	return nil
}

// Stop ends the watch loop and releases the fsnotify watcher.
func (w *DBWatcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	if running {
		cancel()
		<-done
		stats := w.Stats()
		slog.Info("stopped watching database", "path", w.path,
			"writes", stats.Writes, "invalidations", stats.Invalidations, "errors", stats.Errors)
	}
	return w.watcher.Close()
}

// Stats returns a copy of the counters.
func (w *DBWatcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *DBWatcher) run(ctx context.Context) {
	defer close(w.done)

	tick := time.NewTicker(w.debounce / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(evt)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("database watcher error", "error", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-tick.C:
			w.flush()
		}
	}
}

// relevant reports whether name is the database or one of its sidecars.
func (w *DBWatcher) relevant(name string) bool {
	if filepath.Dir(name) != filepath.Dir(w.path) {
		return false
	}
	base := filepath.Base(w.path)
	got := filepath.Base(name)
	return got == base || strings.HasPrefix(got, base+"-")
}

func (w *DBWatcher) handle(evt fsnotify.Event) {
	if !evt.Op.Has(fsnotify.Write) && !evt.Op.Has(fsnotify.Create) {
		return
	}
	if !w.relevant(evt.Name) {
		return
	}

	w.mu.Lock()
	w.pending = true
	w.last = time.Now()
	w.stats.Writes++
	w.mu.Unlock()
}

func (w *DBWatcher) flush() {
	w.mu.Lock()
	if !w.pending || time.Since(w.last) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.stats.Invalidations++
	w.mu.Unlock()

	keys := w.cache.Invalidate(events.TopicPartners)
	slog.Debug("database changed on disk", "path", w.path, "invalidated", len(keys))
}
