package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrQueueFull is returned by SendEvent when the batcher is behind
	ErrQueueFull    = errors.New("event queue full")
	ErrClientClosed = errors.New("event client closed")
	ErrNotConnected = errors.New("not connected to daemon")
)

const (
	queueSize    = 100
	writeTimeout = 5 * time.Second
)

// Client is one process's link to the partners daemon. Outgoing events are
// debounced and coalesced; incoming events are filtered for echoes and
// duplicates. Listen reconnects with backoff when the link drops.
type Client struct {
	socketPath string
	id         string
	debounce   time.Duration
	retry      Backoff

	mu      sync.Mutex
	conn    net.Conn
	enc     *json.Encoder
	dec     *json.Decoder
	closed  bool
	batcher bool

	topic        string
	lastSequence int64
	daemonID     string

	queue chan Event
	ctx   context.Context
	stop  context.CancelFunc
	done  chan struct{}
}

// NewClient creates a client without connecting. The debounce window is
// 100ms unless PARTNERS_EVENT_DEBOUNCE_MS overrides it.
func NewClient(socketPath string) (*Client, error) {
	if socketPath == "" {
		return nil, fmt.Errorf("socket path is required")
	}

	ctx, stop := context.WithCancel(context.Background())
	return &Client{
		socketPath: socketPath,
		id:         uuid.NewString(),
		debounce:   debounceFromEnv(100 * time.Millisecond),
		retry:      Backoff{Attempts: 5, Base: time.Second},
		queue:      make(chan Event, queueSize),
		ctx:        ctx,
		stop:       stop,
		done:       make(chan struct{}),
	}, nil
}

func debounceFromEnv(def time.Duration) time.Duration {
	ms, err := strconv.Atoi(os.Getenv("PARTNERS_EVENT_DEBOUNCE_MS"))
	if err != nil || ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

// ID identifies this client as the origin of the events it sends.
func (c *Client) ID() string {
	return c.id
}

// Connect dials the daemon and subscribes to the current topic. The first
// successful connect starts the batcher; reconnects reuse it.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("dial daemon socket: %w", err)
	}
	c.conn = conn
	c.enc = json.NewEncoder(conn)
	c.dec = json.NewDecoder(conn)

	if err := c.enc.Encode(c.subscription()); err != nil {
		_ = conn.Close()
		c.conn = nil
		return fmt.Errorf("send subscription: %w", err)
	}

	if !c.batcher {
		c.batcher = true
		go c.runBatcher()
	}
	return nil
}

// subscription builds the subscribe message; callers hold c.mu.
func (c *Client) subscription() Message {
	return Message{
		Version:   ProtocolVersion,
		Type:      "subscribe",
		Subscribe: &SubscribeMessage{Topic: c.topic, ClientID: c.id},
	}
}

// Subscribe changes the topic filter. "" receives every topic.
func (c *Client) Subscribe(topic string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.topic = topic
	if c.conn == nil {
		return ErrNotConnected
	}
	return c.enc.Encode(c.subscription())
}

// SendEvent queues an event for the next debounce tick. It never blocks.
func (c *Client) SendEvent(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// runBatcher sends at most one coalesced event per debounce tick and
// flushes what is pending when the queue closes.
func (c *Client) runBatcher() {
	defer close(c.done)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	var batch coalescer
	for {
		select {
		case <-c.ctx.Done():
			c.flush(&batch)
			return
		case evt, ok := <-c.queue:
			if !ok {
				c.flush(&batch)
				return
			}
			batch.add(evt)
		case <-ticker.C:
			c.flush(&batch)
		}
	}
}

func (c *Client) flush(batch *coalescer) {
	evt, ok := batch.take()
	if !ok {
		return
	}
	evt.ID = uuid.NewString()
	evt.Origin = c.id
	evt.Timestamp = time.Now()

	err := c.write(Message{Version: ProtocolVersion, Type: "event", Event: &evt})
	if err != nil && !isConnectionError(err) {
		slog.Warn("failed to send batched event", "error", err)
	}
}

func (c *Client) write(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	return c.enc.Encode(msg)
}

// dropConn closes the current connection, if any.
func (c *Client) dropConn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

// Close flushes pending events, closes the connection and stops every
// goroutine. Safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.queue)
	started := c.batcher
	c.mu.Unlock()

	if started {
		<-c.done
	}
	c.stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
