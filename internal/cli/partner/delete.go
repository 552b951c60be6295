package partner

import (
	"bufio"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/cli"
)

// DeleteCmd returns the partner delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a design partner",
		Long:  "Delete a partner by ID (requires confirmation unless --force or --quiet).",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDelete,
	}

	cmd.Flags().Int64("id", 0, "Partner ID (can also be provided as positional argument)")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := cli.ParseIDArg(cmd, args)
	if err != nil {
		return cli.NewFormatter(cmd).Usage(err.Error(), "Usage: partners partner delete <id>")
	}
	force, _ := cmd.Flags().GetBool("force")

	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	// Get partner details for confirmation
	p, err := cliInstance.App.PartnerService.GetPartner(ctx, id)
	if err != nil {
		return formatter.Fail(err)
	}

	// Ask for confirmation unless force, quiet or JSON mode
	if !force && !formatter.Quiet && !formatter.JSON {
		formatter.Printf("Delete partner #%d: '%s'? (y/N): ", p.ID, p.Name)
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			formatter.Printf("Cancelled\n")
			return nil
		}
	}

	if err := cliInstance.App.PartnerService.DeletePartner(ctx, id); err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.Result(cli.Fields{"partner_id": id.ToInt64()})
	}

	formatter.Printf("%s Partner %d deleted\n", color.New(color.FgGreen).Sprint("✓"), id)
	return nil
}
