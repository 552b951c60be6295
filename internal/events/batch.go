package events

// coalescer folds a burst of queued events into one outgoing event. Events
// for different topics widen the result to every topic and events for
// different partners drop the partner ID.
type coalescer struct {
	pending bool
	mixed   bool
	evt     Event
}

func (b *coalescer) add(e Event) {
	if !b.pending {
		*b = coalescer{pending: true, evt: e}
		return
	}
	if e.Topic != b.evt.Topic {
		b.mixed = true
	}
	if e.PartnerID != b.evt.PartnerID {
		b.evt.PartnerID = 0
	}
}

// take returns the folded event and resets the coalescer.
func (b *coalescer) take() (Event, bool) {
	if !b.pending {
		return Event{}, false
	}
	out := b.evt
	if b.mixed {
		out.Topic = ""
	}
	*b = coalescer{}
	return out, true
}
