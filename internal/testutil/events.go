package testutil

import (
	"context"
	"sync"

	"github.com/thenoetrevino/partners/internal/events"
)

// EventRecorder is an in-memory events.EventPublisher that keeps every
// partner change a service publishes.
type EventRecorder struct {
	mu     sync.Mutex
	sent   []events.Event
	topics []string
	closed bool

	// SendErr, when set, fails every SendEvent
	SendErr error
}

func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

func (r *EventRecorder) Connect(ctx context.Context) error { return nil }

func (r *EventRecorder) SendEvent(event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SendErr != nil {
		return r.SendErr
	}
	r.sent = append(r.sent, event)
	return nil
}

// Listen returns a closed channel: nothing arrives from other clients.
func (r *EventRecorder) Listen(ctx context.Context) (<-chan events.Event, error) {
	ch := make(chan events.Event)
	close(ch)
	return ch, nil
}

func (r *EventRecorder) Subscribe(topic string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topic)
	return nil
}

func (r *EventRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Events returns a copy of the recorded events.
func (r *EventRecorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.sent...)
}

func (r *EventRecorder) EventCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

// PartnerIDs lists the partner of each recorded event in publish order.
func (r *EventRecorder) PartnerIDs() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, len(r.sent))
	for i, e := range r.sent {
		ids[i] = e.PartnerID
	}
	return ids
}

// Topics lists every topic subscribed to.
func (r *EventRecorder) Topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.topics...)
}

func (r *EventRecorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Reset forgets recorded events, typically after fixture setup.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
	r.topics = nil
}

var _ events.EventPublisher = (*EventRecorder)(nil)
