package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/app"
	partnerscli "github.com/thenoetrevino/partners/internal/cli"
)

// Result is what a command wrote to each stream.
type Result struct {
	Stdout string
	Stderr string
}

// ExecuteCLICommand executes a CLI command against a test app instance and
// returns its stdout.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	res, err := ExecuteCLICommandWithInput(t, testApp, cmd, args, "")
	return res.Stdout, err
}

// ExecuteCLICommandWithInput executes a CLI command with stdin set to input.
func ExecuteCLICommandWithInput(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string, input string) (Result, error) {
	t.Helper()
	return ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args, strings.NewReader(input))
}

// ExecuteCLICommandWithContext executes a CLI command with a specific context and test app
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string, stdin io.Reader) (Result, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(stdin)

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(partnerscli.WithApp(ctx, testApp))
	return Result{Stdout: stdout.String(), Stderr: stderr.String()}, err
}
