package cmd

import (
	"context"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/cli"
	"github.com/thenoetrevino/partners/internal/config"
	"github.com/thenoetrevino/partners/internal/daemon"
	"github.com/thenoetrevino/partners/internal/events"
	"github.com/thenoetrevino/partners/internal/logging"
)

// DaemonCmd returns the daemon parent command
func DaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run or check the live update daemon",
		Long: `The daemon relays change events between running clients so every
open board refreshes when another process edits a partner.`,
	}
	cmd.AddCommand(daemonStartCmd())
	cmd.AddCommand(daemonStatusCmd())
	return cmd
}

func daemonStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run the daemon in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			logging.InitStderr(logging.ParseLevel(cfg.Log.Level))
			return daemon.Run(cmd.Context(), cfg.Daemon.Socket, daemonOptions(cfg))
		},
	}
}

// daemonOptions maps the daemon config section onto relay options.
func daemonOptions(cfg *config.Config) daemon.Options {
	return daemon.Options{
		ClientBuffer: cfg.Daemon.ClientBuffer,
		PingInterval: cfg.Daemon.PingInterval,
	}
}

func daemonStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether the daemon is reachable",
		Args:  cobra.NoArgs,
		RunE:  runDaemonStatus,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDaemonStatus(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	cfg, err := config.Load("")
	if err != nil {
		return formatter.Fail(err)
	}

	client, err := events.NewClient(cfg.Daemon.Socket)
	if err == nil {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
		err = client.Connect(ctx)
		cancel()
		_ = client.Close()
	}

	if err != nil {
		daemonErr := events.ClassifyDaemonError(err, cfg.Daemon.Socket)
		if formatter.JSON {
			_ = formatter.WriteJSON(map[string]interface{}{
				"success": false,
				"running": false,
				"socket":  cfg.Daemon.Socket,
				"error":   map[string]string{"message": daemonErr.Message, "hint": daemonErr.Hint},
			})
			return cli.Exit(cli.ExitError, err)
		}
		_ = formatter.ErrorWithSuggestion("DAEMON_UNAVAILABLE", daemonErr.Message, daemonErr.Hint)
		return cli.Exit(cli.ExitError, err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.Result(cli.Fields{
			"running": true,
			"socket":  cfg.Daemon.Socket,
		})
	}
	formatter.Printf("%s Daemon running at %s\n", color.New(color.FgGreen).Sprint("✓"), cfg.Daemon.Socket)
	return nil
}
