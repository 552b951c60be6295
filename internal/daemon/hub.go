package daemon

import (
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/thenoetrevino/partners/internal/events"
)

// peer is one connected client. Only the hub goroutine touches topic, id,
// welcomed and lastSeen.
type peer struct {
	conn net.Conn
	send chan events.Message

	topic    string
	id       string
	welcomed bool
	lastSeen time.Time

	closeOnce sync.Once
}

func newPeer(conn net.Conn, buffer int) *peer {
	return &peer{conn: conn, send: make(chan events.Message, buffer)}
}

func (p *peer) close() {
	p.closeOnce.Do(func() {
		_ = p.conn.Close()
		close(p.send)
	})
}

type inbound struct {
	from *peer
	msg  events.Message
}

// hub owns the peer set and the sequence counter. Everything that changes
// them goes through its channels, so per-peer message order is preserved.
type hub struct {
	daemonID string
	opts     Options
	metrics  *Metrics

	peers map[*peer]struct{}
	seq   int64

	register   chan *peer
	unregister chan *peer
	inbox      chan inbound
	publish    chan events.Event
	done       chan struct{}
}

func newHub(daemonID string, opts Options, metrics *Metrics) *hub {
	return &hub{
		daemonID:   daemonID,
		opts:       opts,
		metrics:    metrics,
		peers:      make(map[*peer]struct{}),
		register:   make(chan *peer),
		unregister: make(chan *peer),
		inbox:      make(chan inbound, opts.PublishBuffer),
		publish:    make(chan events.Event, opts.PublishBuffer),
		done:       make(chan struct{}),
	}
}

// run serves the hub until stop is closed, then disconnects every peer.
func (h *hub) run(stop <-chan struct{}) {
	defer close(h.done)

	ticker := time.NewTicker(h.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			for p := range h.peers {
				h.drop(p)
			}
			return

		case p := <-h.register:
			p.lastSeen = time.Now()
			h.peers[p] = struct{}{}
			h.metrics.Clients.Store(int32(len(h.peers)))
			slog.Info("client connected", "clients", len(h.peers))

		case p := <-h.unregister:
			if _, ok := h.peers[p]; ok {
				h.drop(p)
				slog.Info("client disconnected", "clients", len(h.peers))
			}

		case in := <-h.inbox:
			h.handle(in.from, in.msg)

		case evt := <-h.publish:
			h.relay(evt)

		case now := <-ticker.C:
			h.sweep(now)
		}
	}
}

// add registers p. It reports false once the hub has stopped.
func (h *hub) add(p *peer) bool {
	select {
	case h.register <- p:
		return true
	case <-h.done:
		return false
	}
}

func (h *hub) remove(p *peer) {
	select {
	case h.unregister <- p:
	case <-h.done:
	}
}

func (h *hub) receive(p *peer, msg events.Message) {
	select {
	case h.inbox <- inbound{from: p, msg: msg}:
	case <-h.done:
	}
}

func (h *hub) handle(p *peer, msg events.Message) {
	if _, ok := h.peers[p]; !ok {
		return
	}
	p.lastSeen = time.Now()

	switch msg.Type {
	case "subscribe":
		if msg.Subscribe == nil {
			return
		}
		p.topic = msg.Subscribe.Topic
		if msg.Subscribe.ClientID != "" {
			p.id = msg.Subscribe.ClientID
		}
		slog.Debug("client subscribed", "topic", p.topic, "client_id", p.id)
		if !p.welcomed {
			p.welcomed = true
			h.deliver(p, events.Message{
				Version: events.ProtocolVersion,
				Type:    "welcome",
				Welcome: &events.Welcome{DaemonID: h.daemonID, Sequence: h.seq},
			})
		}

	case "event":
		if msg.Event == nil {
			return
		}
		h.metrics.Published.Add(1)
		if msg.Event.Origin == "" {
			msg.Event.Origin = p.id
		}
		h.relay(*msg.Event)

	case "pong":
		// lastSeen already updated
	}
}

// relay numbers evt and queues it to every matching peer except its origin.
func (h *hub) relay(evt events.Event) {
	h.seq++
	evt.SequenceID = h.seq
	h.metrics.Relayed.Add(1)

	msg := events.Message{Version: events.ProtocolVersion, Type: "event", Event: &evt}
	sub := events.SubscribeMessage{}
	for p := range h.peers {
		sub.Topic = p.topic
		if !sub.Matches(evt.Topic) {
			continue
		}
		if evt.Origin != "" && evt.Origin == p.id {
			h.metrics.Echoes.Add(1)
			continue
		}
		if !h.deliver(p, msg) {
			slog.Warn("client behind, event dropped", "event_id", evt.ID, "client_id", p.id)
		}
	}
}

// deliver queues msg without blocking the hub.
func (h *hub) deliver(p *peer, msg events.Message) bool {
	select {
	case p.send <- msg:
		h.metrics.Delivered.Add(1)
		return true
	default:
		h.metrics.Dropped.Add(1)
		return false
	}
}

// sweep drops peers that have been silent for StaleAfter and pings the rest.
func (h *hub) sweep(now time.Time) {
	ping := events.Message{Version: events.ProtocolVersion, Type: "ping", Event: &events.Event{Type: events.EventPing}}
	for p := range h.peers {
		if now.Sub(p.lastSeen) > h.opts.StaleAfter {
			slog.Info("dropping silent client", "client_id", p.id, "silent_for", now.Sub(p.lastSeen).Round(time.Second))
			h.drop(p)
			continue
		}
		select {
		case p.send <- ping:
		default:
		}
	}
}

func (h *hub) drop(p *peer) {
	delete(h.peers, p)
	p.close()
	h.metrics.Clients.Store(int32(len(h.peers)))
}
