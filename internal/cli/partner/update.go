package partner

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/cli"
	partnerservice "github.com/thenoetrevino/partners/internal/services/partner"
)

// UpdateCmd returns the partner update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Edit a design partner",
		Long: `Edit a design partner. Only the given fields change.

Examples:
  partners partner update 3 --email new@acme.io
  partners partner update --id 3 --name "Acme Corp" --stage Completed`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().Int64("id", 0, "Partner ID (can also be provided as positional argument)")
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("email", "", "New contact email")
	cmd.Flags().String("stage", "", "New pipeline stage")
	cli.AddOutputFlags(cmd)

	return cmd
}

// changed returns a pointer to the flag value when the flag was given.
func changed(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := cli.ParseIDArg(cmd, args)
	if err != nil {
		return cli.NewFormatter(cmd).Usage(err.Error(), "Usage: partners partner update <id> --name/--email/--stage")
	}
	req := partnerservice.UpdatePartnerRequest{
		Name:  changed(cmd, "name"),
		Email: changed(cmd, "email"),
		Stage: changed(cmd, "stage"),
	}

	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	if req.Stage != nil {
		if _, err := cliInstance.App.PartnerService.ListPartners(ctx); err != nil {
			return formatter.Fail(err)
		}
	}

	p, err := cliInstance.App.PartnerService.UpdatePartner(ctx, id, req)
	if err != nil {
		return formatter.FailWithSuggestion(err, "Pass at least one of --name, --email, --stage")
	}

	if formatter.Quiet {
		formatter.Printf("%d\n", p.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.Result(cli.Fields{"partner": cli.PartnerJSON(p)})
	}

	formatter.Printf("%s Partner %d updated\n", color.New(color.FgGreen).Sprint("✓"), p.ID)
	printPartner(formatter, p)
	return nil
}
