package events

import "context"

// Sender queues change events for the daemon. Partner mutations only need
// this half of the client.
type Sender interface {
	SendEvent(event Event) error
}

// EventPublisher is the full daemon connection used by long-running
// frontends: they publish their own changes and listen for everyone else's.
type EventPublisher interface {
	Sender

	Connect(ctx context.Context) error

	// Listen streams events on the subscribed topic until ctx is done.
	Listen(ctx context.Context) (<-chan Event, error)

	// Subscribe narrows delivery to topic; "" receives every topic.
	Subscribe(topic string) error

	Close() error
}

var _ EventPublisher = (*Client)(nil)
