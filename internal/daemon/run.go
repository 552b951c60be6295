package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/partners/internal/events"
)

// Run serves socketPath until ctx is cancelled. SIGHUP tells every client
// to refetch partners.
func Run(ctx context.Context, socketPath string, opts Options) error {
	server, err := NewServer(socketPath, opts)
	if err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go forwardRefresh(ctx, server, hup)

	slog.Info("partners daemon starting", "pid", os.Getpid())
	err = server.Start(ctx)
	slog.Info("partners daemon stopped", server.Metrics().Snapshot().LogAttrs()...)
	return err
}

type broadcaster interface {
	Broadcast(evt events.Event) error
}

// forwardRefresh broadcasts a partners change with no partner id for every
// value received on sig.
func forwardRefresh(ctx context.Context, b broadcaster, sig <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			if err := b.Broadcast(events.NewPartnersChanged(0)); err != nil {
				slog.Warn("refresh broadcast dropped", "error", err)
				continue
			}
			slog.Info("broadcast partners refresh")
		}
	}
}
