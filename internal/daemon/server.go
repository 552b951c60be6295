// Package daemon relays partner change events between running clients over
// a unix socket, so every open board refreshes when another process edits
// a partner.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thenoetrevino/partners/internal/events"
)

// ErrBusy is returned by Broadcast when the relay queue is full.
var ErrBusy = errors.New("daemon relay queue full")

const writeTimeout = 5 * time.Second

// Options tunes the relay. Zero fields take the DefaultOptions value.
type Options struct {
	ClientBuffer  int           // messages queued per client before drops
	PublishBuffer int           // events queued for relay
	PingInterval  time.Duration // how often idle clients are pinged
	StaleAfter    time.Duration // silence after which a client is dropped
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		ClientBuffer:  16,
		PublishBuffer: 128,
		PingInterval:  30 * time.Second,
		StaleAfter:    90 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.ClientBuffer <= 0 {
		o.ClientBuffer = def.ClientBuffer
	}
	if o.PublishBuffer <= 0 {
		o.PublishBuffer = def.PublishBuffer
	}
	if o.PingInterval <= 0 {
		o.PingInterval = def.PingInterval
	}
	if o.StaleAfter <= 0 {
		o.StaleAfter = 3 * o.PingInterval
	}
	return o
}

// Server accepts clients on a unix socket and feeds them to the hub.
type Server struct {
	socketPath string
	listener   net.Listener
	opts       Options
	metrics    *Metrics
	hub        *hub

	stop       chan struct{}
	stopOnce   sync.Once
	started    chan struct{}
	acceptDone chan struct{}
	conns      sync.WaitGroup
}

// NewServer listens on socketPath, creating its directory with mode 0700
// and replacing a stale socket file.
func NewServer(socketPath string, opts Options) (*Server, error) {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o700); err != nil {
		return nil, fmt.Errorf("create socket directory: %w", err)
	}
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}

	listener, err := (&net.ListenConfig{}).Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", socketPath, err)
	}

	opts = opts.withDefaults()
	metrics := newMetrics()
	return &Server{
		socketPath: socketPath,
		listener:   listener,
		opts:       opts,
		metrics:    metrics,
		hub:        newHub(uuid.NewString(), opts, metrics),
		stop:       make(chan struct{}),
		started:    make(chan struct{}),
		acceptDone: make(chan struct{}),
	}, nil
}

// Start serves clients until ctx is done or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("daemon listening", "socket", s.socketPath, "daemon_id", s.hub.daemonID)

	close(s.started)
	go s.hub.run(s.stop)
	go func() {
		select {
		case <-ctx.Done():
			s.halt()
		case <-s.stop:
		}
	}()

	acceptErr := s.accept()
	shutdownErr := s.Shutdown()
	if acceptErr != nil {
		return acceptErr
	}
	return shutdownErr
}

func (s *Server) accept() error {
	defer close(s.acceptDone)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stop:
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		p := newPeer(conn, s.opts.ClientBuffer)
		if !s.hub.add(p) {
			_ = conn.Close()
			return nil
		}
		s.conns.Add(2)
		go s.read(p)
		go s.write(p)
	}
}

// read decodes client messages into the hub until the connection fails.
func (s *Server) read(p *peer) {
	defer s.conns.Done()
	defer s.hub.remove(p)

	dec := json.NewDecoder(p.conn)
	for {
		var msg events.Message
		if err := dec.Decode(&msg); err != nil {
			return
		}
		if msg.Version != 0 && msg.Version != events.ProtocolVersion {
			slog.Warn("protocol version mismatch", "got", msg.Version, "want", events.ProtocolVersion)
		}
		s.hub.receive(p, msg)
	}
}

func (s *Server) write(p *peer) {
	defer s.conns.Done()

	enc := json.NewEncoder(p.conn)
	for msg := range p.send {
		if err := p.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return
		}
		if err := enc.Encode(msg); err != nil {
			_ = p.conn.Close()
			return
		}
	}
}

// Broadcast relays evt to every subscribed client without waiting.
func (s *Server) Broadcast(evt events.Event) error {
	select {
	case s.hub.publish <- evt:
		return nil
	default:
		return ErrBusy
	}
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	return int(s.metrics.Clients.Load())
}

// Metrics returns the live counters.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) halt() {
	s.stopOnce.Do(func() {
		close(s.stop)
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			slog.Debug("close listener", "error", err)
		}
	})
}

// Shutdown disconnects every client and removes the socket. It is safe to
// call more than once and before Start.
func (s *Server) Shutdown() error {
	s.halt()

	select {
	case <-s.started:
		<-s.acceptDone
		<-s.hub.done
		s.conns.Wait()
	default:
	}

	if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove socket: %w", err)
	}
	return nil
}
