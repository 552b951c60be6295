package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/app"
	"github.com/thenoetrevino/partners/internal/auth"
	"github.com/thenoetrevino/partners/internal/config"
	"github.com/thenoetrevino/partners/internal/events"
)

// daemonDialTimeout bounds how long a command waits for the optional daemon.
const daemonDialTimeout = 500 * time.Millisecond

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	eventClient events.EventPublisher
	ownsApp     bool
}

// NewCLI loads the config, opens the record store and tries the daemon
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Try to connect to daemon (optional - silent fallback)
	var eventClient events.EventPublisher
	if client, err := events.NewClient(cfg.Daemon.Socket); err == nil {
		dialCtx, cancel := context.WithTimeout(ctx, daemonDialTimeout)
		if err := client.Connect(dialCtx); err == nil {
			eventClient = client
		} else {
			_ = client.Close()
			slog.Debug("daemon not available", "error", err)
		}
		cancel()
	}

	application, err := app.Open(ctx, cfg, app.WithEventPublisher(eventClient))
	if err != nil {
		if eventClient != nil {
			_ = eventClient.Close()
		}
		return nil, err
	}

	c := &CLI{
		App:         application,
		Config:      cfg,
		eventClient: eventClient,
		ownsApp:     true,
	}
	c.resolve(ctx)
	return c, nil
}

// resolve ends the gate's loading state
func (c *CLI) resolve(ctx context.Context) {
	if !c.App.Gate.Loading() {
		return
	}
	if err := c.App.Gate.Resolve(ctx); err != nil {
		slog.Warn("could not restore session", "error", err)
	}
}

// RequireSession fails with auth.ErrNoSession unless someone is signed in.
func (c *CLI) RequireSession() error {
	if c.App.Gate.Route() != auth.RouteApp {
		return auth.ErrNoSession
	}
	return nil
}

// Close cleans up CLI resources. An injected App belongs to the caller.
func (c *CLI) Close() error {
	if c.eventClient != nil {
		_ = c.eventClient.Close()
	}
	if c.ownsApp {
		return c.App.Close()
	}
	return nil
}

// Setup opens the CLI for cmd and checks the session. Errors are reported
// through the returned formatter before they are returned.
func Setup(cmd *cobra.Command) (*CLI, *OutputFormatter, error) {
	formatter := NewFormatter(cmd)

	cliInstance, err := GetCLIFromContext(cmd.Context())
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return nil, formatter, Exit(ExitError, err)
	}
	if err := cliInstance.RequireSession(); err != nil {
		_ = cliInstance.Close()
		return nil, formatter, formatter.FailWithSuggestion(err, "Sign in with: partners login --email <email>")
	}
	return cliInstance, formatter, nil
}

// CloseQuietly closes c and logs a failure.
func CloseQuietly(c *CLI) {
	if err := c.Close(); err != nil {
		slog.Error("Error closing CLI", "error", err)
	}
}

// SaveStages records stages as the configured pipeline so they outlive
// this process. It reports false when the CLI runs against an injected
// App and nothing was written.
func (c *CLI) SaveStages(stages []string) (bool, error) {
	if !c.ownsApp {
		return false, nil
	}
	c.Config.Stages.Defaults = append([]string(nil), stages...)
	if err := c.Config.Save(); err != nil {
		return false, fmt.Errorf("save stages: %w", err)
	}
	return true, nil
}
