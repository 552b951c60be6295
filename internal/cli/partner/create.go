package partner

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/cli"
	partnerservice "github.com/thenoetrevino/partners/internal/services/partner"
)

// CreateCmd returns the partner create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a design partner",
		Long: `Add a design partner. The stage defaults to the first pipeline stage.

Examples:
  partners partner create --name "Acme" --email ops@acme.io
  ID=$(partners partner create --name "Acme" --email ops@acme.io --stage Testing --quiet)`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Partner name (required)")
	cmd.Flags().String("email", "", "Contact email (required)")
	cmd.Flags().String("stage", "", "Pipeline stage (defaults to the first stage)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	stage, _ := cmd.Flags().GetString("stage")

	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	// the fetch registers the stages already in use
	if _, err := cliInstance.App.PartnerService.ListPartners(ctx); err != nil {
		return formatter.Fail(err)
	}
	if stage == "" {
		if stages := cliInstance.App.StageService.ListStages(); len(stages) > 0 {
			stage = stages[0]
		}
	}

	p, err := cliInstance.App.PartnerService.CreatePartner(ctx, partnerservice.CreatePartnerRequest{
		Name:  name,
		Email: email,
		Stage: stage,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		formatter.Printf("%d\n", p.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.Result(cli.Fields{"partner": cli.PartnerJSON(p)})
	}

	formatter.Printf("%s Partner '%s' created (ID: %d)\n", color.New(color.FgGreen).Sprint("✓"), p.Name, p.ID)
	formatter.Printf("  Stage: %s\n", p.Stage)
	return nil
}
