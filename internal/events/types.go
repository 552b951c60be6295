package events

import (
	"time"

	"github.com/google/uuid"
)

// ProtocolVersion is bumped on incompatible wire changes
const ProtocolVersion = 1

// TopicPartners is the topic of partner record changes. It equals the
// query cache prefix it invalidates.
const TopicPartners = "design_partners"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventPartnersChanged EventType = "partners_changed"
	// EventResync is produced locally when the client may have missed
	// changes, e.g. after reconnecting to a restarted daemon.
	EventResync EventType = "resync"
	EventPing   EventType = "ping"
	EventPong   EventType = "pong"
)

// Event is a change notification relayed by the daemon
type Event struct {
	Type       EventType `json:"type"`
	ID         string    `json:"id,omitempty"`
	Origin     string    `json:"origin,omitempty"` // client that caused the change
	Topic      string    `json:"topic,omitempty"`  // "" = everything
	PartnerID  int64     `json:"partner_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequence_id,omitempty"` // assigned by the daemon
}

// NewPartnersChanged builds the event published after a partner mutation.
// partnerID may be 0 when several partners changed.
func NewPartnersChanged(partnerID int64) Event {
	return Event{
		Type:      EventPartnersChanged,
		ID:        uuid.NewString(),
		Topic:     TopicPartners,
		PartnerID: partnerID,
		Timestamp: time.Now(),
	}
}

// SubscribeMessage is sent by clients to pick the topics they receive
type SubscribeMessage struct {
	Topic    string `json:"topic"` // "" = all topics
	ClientID string `json:"client_id,omitempty"`
}

// Welcome is the daemon's first message on a new connection. Sequence is
// the last sequence the daemon assigned, so a reconnecting client can tell
// whether it missed anything.
type Welcome struct {
	DaemonID string `json:"daemon_id"`
	Sequence int64  `json:"sequence"`
}

// Matches reports whether an event on topic should reach this subscription.
func (s SubscribeMessage) Matches(topic string) bool {
	return s.Topic == "" || topic == "" || s.Topic == topic
}

// Message wraps events and control messages for the wire protocol
type Message struct {
	Version   int               `json:"version,omitempty"`
	Type      string            `json:"type"` // "welcome", "event", "subscribe", "ping", "pong"
	Event     *Event            `json:"event,omitempty"`
	Subscribe *SubscribeMessage `json:"subscribe,omitempty"`
	Welcome   *Welcome          `json:"welcome,omitempty"`
}
