package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/partners/internal/config"
	"github.com/thenoetrevino/partners/internal/daemon"
	"github.com/thenoetrevino/partners/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load("")
	if err != nil {
		logging.InitStderr(slog.LevelInfo)
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.InitStderr(logging.ParseLevel(cfg.Log.Level))

	opts := daemon.Options{
		ClientBuffer: cfg.Daemon.ClientBuffer,
		PingInterval: cfg.Daemon.PingInterval,
	}
	if err := daemon.Run(ctx, cfg.Daemon.Socket, opts); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}
}
