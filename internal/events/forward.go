package events

import (
	"context"
	"log/slog"
)

// Invalidator is the part of the query cache events feed into.
type Invalidator interface {
	Invalidate(prefix string) []string
}

// Forward invalidates the cache for every received event until events is
// closed or ctx is done. An all-topics event invalidates everything.
// onEvent, if set, runs after each invalidation.
func Forward(ctx context.Context, events <-chan Event, cache Invalidator, onEvent func(Event)) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			if evt.Type == EventPing || evt.Type == EventPong {
				continue
			}
			keys := cache.Invalidate(evt.Topic)
			slog.Debug("invalidated queries from daemon event",
				"event_id", evt.ID,
				"topic", evt.Topic,
				"keys", len(keys))
			if onEvent != nil {
				onEvent(evt)
			}
		}
	}
}
