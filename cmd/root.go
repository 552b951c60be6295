// Package cmd wires the partners command tree.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/cli"
	"github.com/thenoetrevino/partners/internal/cli/dashboard"
	"github.com/thenoetrevino/partners/internal/cli/partner"
	"github.com/thenoetrevino/partners/internal/cli/session"
	"github.com/thenoetrevino/partners/internal/cli/stage"
	"github.com/thenoetrevino/partners/internal/launcher"
)

// NewRootCmd builds the partners command. Without a subcommand it opens
// the terminal UI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "partners",
		Short: "Partners - track design partners through your pipeline",
		Long: `Partners tracks design partners through pipeline stages.

Run without arguments to open the terminal UI, or use the subcommands
for scripting. Every subcommand accepts --json and --quiet.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				return os.Setenv("PARTNERS_CONFIG", path)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return launcher.Launch(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/partners/config.yaml)")

	rootCmd.AddCommand(partner.PartnerCmd())
	rootCmd.AddCommand(stage.StageCmd())
	rootCmd.AddCommand(dashboard.DashboardCmd())
	rootCmd.AddCommand(session.Commands()...)
	rootCmd.AddCommand(DaemonCmd())

	return rootCmd
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	err := NewRootCmd().ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}

	var cmdErr *cli.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	// cobra argument and flag errors have not been reported yet
	fmt.Fprintln(os.Stderr, "Error:", err)
	return cli.ExitUsage
}
