package daemon

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/partners/internal/events"
)

func TestForwardRefresh_BroadcastsOnSignal(t *testing.T) {
	server, socketPath := startServer(t, Options{})
	c, _ := join(t, socketPath, "tui", events.TopicPartners)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	done := make(chan struct{})
	go func() {
		forwardRefresh(ctx, server, sig)
		close(done)
	}()

	sig <- syscall.SIGHUP
	msg := c.next("event", 2*time.Second)
	require.NotNil(t, msg.Event)
	assert.Equal(t, events.EventPartnersChanged, msg.Event.Type)
	assert.Zero(t, msg.Event.PartnerID)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forwardRefresh did not stop with its context")
	}
}
