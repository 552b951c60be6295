// Package launcher wires configuration, logging, the daemon connection and
// the app container together and runs the TUI.
package launcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/partners/internal/app"
	"github.com/thenoetrevino/partners/internal/config"
	"github.com/thenoetrevino/partners/internal/events"
	"github.com/thenoetrevino/partners/internal/logging"
	"github.com/thenoetrevino/partners/internal/tui"
	"github.com/thenoetrevino/partners/internal/tui/components"
)

const dialTimeout = 2 * time.Second

// teardown closes resources in reverse order of acquisition.
type teardown []namedCloser

type namedCloser struct {
	name string
	c    io.Closer
}

func (t *teardown) push(name string, c io.Closer) {
	*t = append(*t, namedCloser{name, c})
}

func (t teardown) run() {
	for _, nc := range slices.Backward(t) {
		if err := nc.c.Close(); err != nil {
			slog.Error("error closing "+nc.name, "error", err)
		}
	}
}

// Launch loads configuration, opens the app and runs the TUI until the user
// quits or the process is signalled.
func Launch(ctx context.Context) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// the TUI owns the terminal, so logs go to a file
	logFile, err := logging.Init(cfg.Log.Dir, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	var closers teardown
	closers.push("log file", logFile)
	defer closers.run()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var opts []app.Option
	if client := dialDaemon(ctx, cfg.Daemon.Socket); client != nil {
		closers.push("event client", client)
		opts = append(opts, app.WithEventPublisher(client))
	}

	application, err := app.Open(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	closers.push("app", application)

	// without a daemon this falls back to watching the database file
	if err := application.StartLiveUpdates(ctx); err != nil {
		slog.Warn("live updates unavailable", "error", err)
	}

	components.InitStyles(cfg.ColorScheme)
	model := tui.New(ctx, application, cfg)
	defer model.Close()

	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running program: %w", err)
	}
	slog.Info("partners exited")
	return nil
}

// dialDaemon returns a connected event client, or nil when the daemon is
// not reachable. Live updates are optional.
func dialDaemon(ctx context.Context, socketPath string) *events.Client {
	client, err := events.NewClient(socketPath)
	if err == nil {
		dctx, cancel := context.WithTimeout(ctx, dialTimeout)
		err = client.Connect(dctx)
		cancel()
		if err != nil {
			_ = client.Close()
		}
	}
	if err != nil {
		d := events.ClassifyDaemonError(err, socketPath)
		slog.Info("continuing without daemon", "kind", d.Kind, "message", d.Message, "hint", d.Hint)
		return nil
	}
	return client
}
