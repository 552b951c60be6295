// Package dashboard implements the dashboard command.
package dashboard

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/cli"
	"github.com/thenoetrevino/partners/internal/pipeline"
)

const wrapWidth = 80

// DashboardCmd returns the dashboard command
func DashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show partner counts per pipeline stage",
		Args:  cobra.NoArgs,
		RunE:  runDashboard,
	}
	cmd.Flags().Bool("plain", false, "Print the counts without markdown rendering")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	plain, _ := cmd.Flags().GetBool("plain")

	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	partners, err := cliInstance.App.PartnerService.ListPartners(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	summary := pipeline.Summarize(partners, cliInstance.App.StageService.ListStages())

	if formatter.Quiet {
		formatter.Printf("%d\n", summary.Total)
		return nil
	}
	if formatter.JSON {
		unassigned := make([]int64, 0, len(summary.Unassigned))
		for _, p := range summary.Unassigned {
			unassigned = append(unassigned, p.ID.ToInt64())
		}
		return formatter.Result(cli.Fields{
			"stages":     summary.Counts,
			"total":      summary.Total,
			"unassigned": unassigned,
		})
	}

	if !plain {
		if rendered, err := render(summary.Markdown()); err == nil {
			formatter.Printf("%s\n", strings.TrimRight(rendered, "\n"))
			return nil
		}
	}

	bold := color.New(color.Bold)
	for _, c := range summary.Counts {
		formatter.Printf("%-*s %s partners in this stage\n", wrapWidth/4, c.Stage, bold.Sprint(c.Count))
	}
	formatter.Printf("%-*s %s\n", wrapWidth/4, "Total", bold.Sprint(summary.Total))
	if note := summary.UnassignedNote(); note != "" {
		formatter.Printf("%s\n", color.New(color.FgYellow).Sprint(note))
	}
	return nil
}

func render(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
