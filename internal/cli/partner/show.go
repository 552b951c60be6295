package partner

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/cli"
	"github.com/thenoetrevino/partners/internal/cli/styles"
	"github.com/thenoetrevino/partners/internal/models"
)

// ShowCmd returns the partner show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show partner details",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().Int64("id", 0, "Partner ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := cli.ParseIDArg(cmd, args)
	if err != nil {
		return cli.NewFormatter(cmd).Usage(err.Error(), "Usage: partners partner show <id> or partners partner show --id=<id>")
	}

	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	p, err := cliInstance.App.PartnerService.GetPartner(ctx, id)
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

	if cliInstance.Config != nil {
		styles.Init(cliInstance.Config.ColorScheme)
	}
	formatter.Printf("%s\n", styles.RenderPartnerCard(p))
	return nil
}

func printPartner(f *cli.OutputFormatter, p *models.Partner) {
	label := color.New(color.Faint)
	f.Printf("%s\n", color.New(color.Bold).Sprintf("%s (#%d)", p.Name, p.ID))
	f.Printf("  %s %s\n", label.Sprint("Email:"), p.Email)
	f.Printf("  %s %s\n", label.Sprint("Stage:"), color.New(color.FgCyan).Sprint(p.Stage))
	if !p.CreatedAt.IsZero() {
		f.Printf("  %s %s\n", label.Sprint("Created:"), p.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}
