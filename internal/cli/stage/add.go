package stage

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/cli"
)

// AddCmd returns the stage add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a pipeline stage",
		Long: `Add an empty stage to the end of the pipeline.

Examples:
  partners stage add "Onboarding"`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	if _, err := cliInstance.App.PartnerService.ListPartners(ctx); err != nil {
		return formatter.Fail(err)
	}

	stages := cliInstance.App.StageService
	name, err := stages.AddStage(args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	saved, err := cliInstance.SaveStages(configuredWith(cliInstance.Config.Stages.Defaults, name))
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		formatter.Printf("%s\n", name)
		return nil
	}
	if formatter.JSON {
		return formatter.Result(cli.Fields{
			"stage":  name,
			"stages": stages.ListStages(),
			"saved":  saved,
		})
	}

	formatter.Printf("%s Stage '%s' added\n", color.New(color.FgGreen).Sprint("✓"), name)
	return nil
}
