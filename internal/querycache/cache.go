// Package querycache holds fetched query results by key. Results are served
// from memory until invalidated, concurrent fetches of one key share a
// single call, and invalidation is announced to subscribers.
package querycache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Query keys
const (
	PartnersKey = "design_partners"
)

// PartnerKey is the key of a single partner query. It shares the
// PartnersKey prefix, so invalidating the collection covers it.
func PartnerKey(id fmt.Stringer) string {
	return PartnersKey + "/" + id.String()
}

// FetchFunc loads the value for a key
type FetchFunc func(ctx context.Context) (any, error)

// Result is a snapshot of one cache entry.
type Result struct {
	Value     any
	Err       error
	Stale     bool
	FetchedAt time.Time
}

// HasValue reports whether a successful fetch ever completed.
func (r Result) HasValue() bool {
	return !r.FetchedAt.IsZero()
}

type entry struct {
	value     any
	err       error
	fetchedAt time.Time
	stale     bool
	// bumped by every invalidation
	gen uint64
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group

	subMu  sync.Mutex
	subs   map[int]chan string
	nextID int
	closed bool

	now func() time.Time
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		subs:    make(map[int]chan string),
		now:     time.Now,
	}
}

// Peek returns the current entry for key without fetching.
func (c *Cache) Peek(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Result{}, false
	}
	return Result{Value: e.value, Err: e.err, Stale: e.stale, FetchedAt: e.fetchedAt}, true
}

// Fetch returns the cached value for key when it is fresh. Otherwise it
// calls fetch, sharing the call with concurrent callers of the same key,
// and stores the outcome. A failed fetch keeps the previous value.
func (c *Cache) Fetch(ctx context.Context, key string, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{stale: true}
		c.entries[key] = e
	}
	if !e.stale && e.err == nil {
		v := e.value
		c.mu.Unlock()
		return v, nil
	}
	gen := e.gen
	c.mu.Unlock()

	flightKey := fmt.Sprintf("%s#%d", key, gen)
	ch := c.group.DoChan(flightKey, func() (any, error) {
		// the shared call outlives any one caller's cancellation
		v, err := fetch(context.WithoutCancel(ctx))
		c.store(key, gen, v, err)
		return v, err
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

func (c *Cache) store(key string, gen uint64, v any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &entry{gen: gen}
		c.entries[key] = e
	}
	if err != nil {
		e.err = err
		slog.Debug("query fetch failed", "key", key, "error", err)
		return
	}
	e.value = v
	e.err = nil
	e.fetchedAt = c.now()
	// invalidated while the fetch was running
	e.stale = e.gen != gen
}

// Query is the typed form of Fetch.
func Query[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("query %q: cached %T, want %T", key, v, zero)
	}
	return t, nil
}

// Invalidate marks every key starting with prefix stale and notifies
// subscribers. Keys not fetched yet are unaffected. Returns the keys
// marked.
func (c *Cache) Invalidate(prefix string) []string {
	c.mu.Lock()
	var marked []string
	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			e.stale = true
			e.gen++
			marked = append(marked, key)
		}
	}
	c.mu.Unlock()

	c.notify(prefix)
	return marked
}

// Forget drops every key starting with prefix.
func (c *Cache) Forget(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Subscribe returns a channel receiving the prefix of every invalidation,
// and a function that unsubscribes and closes it. Slow subscribers miss
// notifications rather than block Invalidate.
func (c *Cache) Subscribe(buffer int) (<-chan string, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan string, buffer)

	c.subMu.Lock()
	defer c.subMu.Unlock()
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextID
	c.nextID++
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.subMu.Lock()
			defer c.subMu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

func (c *Cache) notify(prefix string) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for id, ch := range c.subs {
		select {
		case ch <- prefix:
		default:
			slog.Debug("dropped invalidation for slow subscriber", "subscriber", id, "prefix", prefix)
		}
	}
}

// Close closes every subscriber channel. The cache still serves reads.
func (c *Cache) Close() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}
