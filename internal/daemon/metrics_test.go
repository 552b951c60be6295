package daemon

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_StartAtZero(t *testing.T) {
	m := newMetrics()
	snap := m.Snapshot()

	assert.Zero(t, snap.Published)
	assert.Zero(t, snap.Relayed)
	assert.Zero(t, snap.Delivered)
	assert.Zero(t, snap.Dropped)
	assert.Zero(t, snap.Echoes)
	assert.Zero(t, snap.Clients)
	assert.WithinDuration(t, time.Now(), m.Started, time.Second)
}

func TestMetrics_SnapshotIsCopy(t *testing.T) {
	m := newMetrics()
	m.Relayed.Add(2)
	before := m.Snapshot()

	m.Relayed.Add(3)

	assert.Equal(t, int64(2), before.Relayed)
	assert.Equal(t, int64(5), m.Snapshot().Relayed)
}

func TestMetrics_ConcurrentUpdates(t *testing.T) {
	m := newMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Published.Add(1)
				m.Delivered.Add(2)
				_ = m.Snapshot()
			}
		}()
	}
	wg.Wait()

	snap := m.Snapshot()
	assert.Equal(t, int64(2000), snap.Published)
	assert.Equal(t, int64(4000), snap.Delivered)
}

func TestSnapshot_LogAttrs(t *testing.T) {
	attrs := Snapshot{Relayed: 7, Clients: 2}.LogAttrs()

	assert.Len(t, attrs, 14)
	assert.Contains(t, attrs, "relayed")
	assert.Contains(t, attrs, int64(7))
}
