// Package session implements the login, logout and whoami commands.
package session

import (
	"bufio"
	"errors"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/auth"
	"github.com/thenoetrevino/partners/internal/cli"
)

// Commands returns the session commands, registered at the root.
func Commands() []*cobra.Command {
	return []*cobra.Command{LoginCmd(), LogoutCmd(), WhoamiCmd()}
}

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the hosted backend",
		Long: `Sign in with email and password. The session is kept under
~/.partners so later commands reuse it.

Examples:
  partners login --email me@example.com --password-stdin < secret.txt`,
		Args: cobra.NoArgs,
		RunE: runLogin,
	}
	cmd.Flags().String("email", "", "Account email (required)")
	cmd.Flags().String("password", "", "Account password")
	cmd.Flags().Bool("password-stdin", false, "Read the password from stdin")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	fromStdin, _ := cmd.Flags().GetBool("password-stdin")
	if fromStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return formatter.Usage("could not read password from stdin", "Pipe the password: echo $PW | partners login --email <email> --password-stdin")
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if email == "" || password == "" {
		return formatter.Usage("--email and a password are required", "Usage: partners login --email <email> --password <password>")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return cli.Exit(cli.ExitError, err)
	}
	defer cli.CloseQuietly(cliInstance)

	s, err := cliInstance.App.Gate.SignIn(ctx, email, password)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.Result(cli.Fields{
			"user_id": s.UserID,
			"email":   s.Email,
		})
	}
	formatter.Printf("%s Signed in as %s\n", color.New(color.FgGreen).Sprint("✓"), s.Email)
	return nil
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		Args:  cobra.NoArgs,
		RunE:  runLogout,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return cli.Exit(cli.ExitError, err)
	}
	defer cli.CloseQuietly(cliInstance)

	err = cliInstance.App.Gate.SignOut(ctx)
	wasSignedIn := !errors.Is(err, auth.ErrNoSession)
	if err != nil && wasSignedIn {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.Result(cli.Fields{"was_signed_in": wasSignedIn})
	}
	if !wasSignedIn {
		formatter.Printf("Not signed in\n")
		return nil
	}
	formatter.Printf("%s Signed out\n", color.New(color.FgGreen).Sprint("✓"))
	return nil
}

// WhoamiCmd returns the whoami command
func WhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE:  runWhoami,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	s, _ := cliInstance.App.Gate.Session()

	if formatter.Quiet {
		formatter.Printf("%s\n", s.Email)
		return nil
	}
	if formatter.JSON {
		return formatter.Result(cli.Fields{
			"user_id":    s.UserID,
			"email":      s.Email,
			"expires_at": s.ExpiresAt,
		})
	}
	formatter.Printf("%s\n", s.Email)
	if !s.ExpiresAt.IsZero() {
		formatter.Printf("  %s %s\n", color.New(color.Faint).Sprint("Session expires:"), s.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
