package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/partners/internal/daemon"
	"github.com/thenoetrevino/partners/internal/events"
)

// Daemon is a broadcaster running on a socket in the test's temp directory.
type Daemon struct {
	Server *daemon.Server
	Socket string
	t      *testing.T
}

// StartDaemon runs a daemon until the test ends and returns once its socket
// accepts connections.
func StartDaemon(t *testing.T) *Daemon {
	t.Helper()

	socket := filepath.Join(t.TempDir(), "partners-test.sock")
	server, err := daemon.NewServer(socket, daemon.Options{})
	require.NoError(t, err, "create test daemon")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.Start(ctx); err != nil {
			t.Logf("daemon stopped: %v", err)
		}
	}()
	t.Cleanup(func() {
		cancel()
		_ = server.Shutdown()
		<-done
	})

	require.Eventually(t, func() bool {
		_, err := os.Stat(socket)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond, "daemon socket never appeared")

	return &Daemon{Server: server, Socket: socket, t: t}
}

// Client connects a fresh event client, closed when the test ends.
func (d *Daemon) Client() *events.Client {
	d.t.Helper()

	client, err := events.NewClient(d.Socket)
	require.NoError(d.t, err)
	d.t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(d.t, client.Connect(ctx), "connect to test daemon")
	return client
}

// AwaitClients blocks until the daemon has n connected clients.
func (d *Daemon) AwaitClients(n int) {
	d.t.Helper()
	require.Eventually(d.t, func() bool {
		return d.Server.ClientCount() == n
	}, 2*time.Second, 10*time.Millisecond, "daemon never reached %d clients", n)
}

// NextInvalidation returns the next prefix from a cache subscription.
func NextInvalidation(t *testing.T, ch <-chan string, timeout time.Duration) string {
	t.Helper()

	select {
	case prefix, ok := <-ch:
		require.True(t, ok, "invalidation channel closed")
		return prefix
	case <-time.After(timeout):
		t.Fatalf("no cache invalidation after %v", timeout)
		return ""
	}
}
