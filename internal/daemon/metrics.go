package daemon

import (
	"sync/atomic"
	"time"
)

// Metrics counts what the relay did since it started. All fields are safe
// for concurrent use.
type Metrics struct {
	Published atomic.Int64 // change events received from clients
	Relayed   atomic.Int64 // events sequenced and fanned out
	Delivered atomic.Int64 // messages queued to a client
	Dropped   atomic.Int64 // messages skipped because a client was behind
	Echoes    atomic.Int64 // events not sent back to their origin
	Clients   atomic.Int32
	Started   time.Time
}

func newMetrics() *Metrics {
	return &Metrics{Started: time.Now()}
}

// Snapshot is a point-in-time copy of Metrics.
type Snapshot struct {
	Published int64         `json:"published"`
	Relayed   int64         `json:"relayed"`
	Delivered int64         `json:"delivered"`
	Dropped   int64         `json:"dropped"`
	Echoes    int64         `json:"echoes"`
	Clients   int32         `json:"clients"`
	Uptime    time.Duration `json:"uptime"`
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Published: m.Published.Load(),
		Relayed:   m.Relayed.Load(),
		Delivered: m.Delivered.Load(),
		Dropped:   m.Dropped.Load(),
		Echoes:    m.Echoes.Load(),
		Clients:   m.Clients.Load(),
		Uptime:    time.Since(m.Started),
	}
}

// LogAttrs lists the counters as slog key/value pairs.
func (s Snapshot) LogAttrs() []any {
	return []any{
		"published", s.Published,
		"relayed", s.Relayed,
		"delivered", s.Delivered,
		"dropped", s.Dropped,
		"echoes", s.Echoes,
		"clients", s.Clients,
		"uptime", s.Uptime.Round(time.Second),
	}
}
