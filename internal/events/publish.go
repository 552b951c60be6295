package events

import (
	"context"
	"log/slog"
	"time"
)

// Backoff controls how a partner change is retried when the daemon
// connection is temporarily unavailable.
type Backoff struct {
	Attempts int
	Base     time.Duration
}

// DefaultBackoff tries three times: immediately, after 50ms and after 100ms.
var DefaultBackoff = Backoff{Attempts: 3, Base: 50 * time.Millisecond}

func (b Backoff) delay(attempt int) time.Duration {
	return b.Base * (1 << attempt)
}

// PublishPartnerChange tells other clients that a partner was created,
// edited, moved or deleted. A nil publisher is a no-op. The last send error
// is returned once every attempt failed or ctx is done.
func PublishPartnerChange(ctx context.Context, pub Sender, partnerID int64, b Backoff) error {
	if pub == nil {
		return nil
	}

	event := NewPartnersChanged(partnerID)

	var lastErr error
	for attempt := 0; attempt < b.Attempts; attempt++ {
		lastErr = pub.SendEvent(event)
		if lastErr == nil {
			if attempt > 0 {
				slog.Debug("partner change published after retry",
					"attempt", attempt+1,
					"partner_id", partnerID)
			}
			return nil
		}

		if attempt == b.Attempts-1 {
			break
		}

		wait := b.delay(attempt)
		slog.Debug("partner change publish failed, retrying",
			"attempt", attempt+1,
			"retry_delay", wait,
			"error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	if lastErr != nil {
		slog.Warn("partner change not published",
			"attempts", b.Attempts,
			"partner_id", partnerID,
			"error", lastErr)
	}
	return lastErr
}
