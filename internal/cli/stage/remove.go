package stage

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/cli"
)

// RemoveCmd returns the stage remove subcommand
func RemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove an empty pipeline stage",
		Long: `Remove a stage. A stage that still has partners cannot be removed;
move them first with 'partners partner move'.`,
		Args: cobra.ExactArgs(1),
		RunE: runRemove,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]

	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	if _, err := cliInstance.App.PartnerService.ListPartners(ctx); err != nil {
		return formatter.Fail(err)
	}

	stages := cliInstance.App.StageService
	if err := stages.RemoveStage(name); err != nil {
		return formatter.FailWithSuggestion(err, "Move its partners first: partners partner move <id> --stage <other>")
	}

	saved, err := cliInstance.SaveStages(configuredWithout(cliInstance.Config.Stages.Defaults, name))
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.Result(cli.Fields{
			"stage":  name,
			"stages": stages.ListStages(),
			"saved":  saved,
		})
	}

	formatter.Printf("%s Stage '%s' removed\n", color.New(color.FgGreen).Sprint("✓"), name)
	return nil
}
