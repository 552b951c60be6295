package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// readTimeout is twice the daemon's default ping interval.
const readTimeout = 60 * time.Second

// Listen returns a channel of events sent by other clients. The channel
// closes when ctx is done, the client closes, or reconnecting gives up.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	out := make(chan Event, 10)
	go c.listen(ctx, out)
	return out, nil
}

func (c *Client) listen(ctx context.Context, out chan<- Event) {
	defer close(out)

	for ctx.Err() == nil && c.ctx.Err() == nil {
		err := c.read(ctx, out)
		if err == nil || ctx.Err() != nil || c.ctx.Err() != nil {
			return
		}

		slog.Info("daemon connection lost, reconnecting", "error", err)
		if !c.reconnect(ctx) {
			slog.Warn("giving up on daemon connection", "attempts", c.retry.Attempts)
			return
		}
		slog.Info("reconnected to daemon")
	}
}

// read delivers messages until the connection fails. A nil return means
// ctx ended while delivering.
func (c *Client) read(ctx context.Context, out chan<- Event) error {
	for {
		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return ErrNotConnected
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("set read deadline: %w", err)
		}
		dec := c.dec
		c.mu.Unlock()

		var msg Message
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("decode message: %w", err)
		}

		evt, ok := c.handle(msg)
		if !ok {
			continue
		}
		select {
		case out <- evt:
		case <-ctx.Done():
			return nil
		}
	}
}

// handle turns one daemon message into an event for the listener, if any.
func (c *Client) handle(msg Message) (Event, bool) {
	switch msg.Type {
	case "welcome":
		if msg.Welcome != nil {
			return c.welcome(*msg.Welcome)
		}
	case "event":
		if msg.Event != nil && c.accept(*msg.Event) {
			return *msg.Event, true
		}
	case "ping":
		err := c.write(Message{Version: ProtocolVersion, Type: "pong", Event: &Event{Type: EventPong}})
		if err != nil && !isConnectionError(err) {
			slog.Debug("failed to send pong", "error", err)
		}
	}
	return Event{}, false
}

// accept tracks the relay sequence and rejects replays and our own events.
func (c *Client) accept(e Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e.SequenceID != 0 {
		if e.SequenceID <= c.lastSequence {
			return false
		}
		c.lastSequence = e.SequenceID
	}
	return e.Origin != c.id
}

// welcome records the daemon's identity and sequence. On a reconnect it
// returns a resync event when the daemon restarted or relayed events while
// we were away.
func (c *Client) welcome(w Welcome) (Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reconnect := c.daemonID != ""
	missed := c.daemonID != w.DaemonID || w.Sequence > c.lastSequence
	c.daemonID = w.DaemonID
	c.lastSequence = w.Sequence

	if !reconnect || !missed {
		return Event{}, false
	}
	slog.Info("resyncing after reconnect", "daemon_id", w.DaemonID, "sequence", w.Sequence)
	return Event{
		Type:      EventResync,
		ID:        uuid.NewString(),
		Topic:     c.topic,
		Timestamp: time.Now(),
	}, true
}

// reconnect retries Connect with c.retry, waiting before each attempt.
func (c *Client) reconnect(ctx context.Context) bool {
	for attempt := 0; attempt < c.retry.Attempts; attempt++ {
		wait := c.retry.delay(attempt)
		select {
		case <-ctx.Done():
			return false
		case <-c.ctx.Done():
			return false
		case <-time.After(wait):
		}

		c.dropConn()
		if err := c.Connect(ctx); err == nil {
			return true
		}
		slog.Debug("reconnection attempt failed", "attempt", attempt+1, "max", c.retry.Attempts, "waited", wait)
	}
	return false
}

func isConnectionError(err error) bool {
	return errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, ErrNotConnected)
}
