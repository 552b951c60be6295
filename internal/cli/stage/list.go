package stage

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/cli"
)

// ListCmd returns the stage list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pipeline stages with their partner counts",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
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
	names := stages.ListStages()
	provisional := make(map[string]bool)
	for _, name := range stages.Provisional() {
		provisional[name] = true
	}

	if formatter.Quiet {
		for _, name := range names {
			formatter.Printf("%s\n", name)
		}
		return nil
	}
	if formatter.JSON {
		out := make([]map[string]interface{}, 0, len(names))
		for _, name := range names {
			out = append(out, map[string]interface{}{
				"name":        name,
				"partners":    stages.Members(name),
				"provisional": provisional[name],
			})
		}
		return formatter.Result(cli.Fields{"stages": out})
	}

	faint := color.New(color.Faint)
	for i, name := range names {
		line := color.New(color.FgCyan).Sprint(name)
		if provisional[name] {
			line += faint.Sprint(" (empty)")
		}
		formatter.Printf("%d. %s  %d\n", i+1, line, stages.Members(name))
	}
	return nil
}
