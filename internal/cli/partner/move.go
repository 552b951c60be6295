package partner

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/board"
	"github.com/thenoetrevino/partners/internal/cli"
)

// MoveCmd returns the partner move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move [id]",
		Short: "Move a partner to another stage",
		Long: `Move a partner card on the board, the same as dragging it between
columns. Moving within the same stage only reorders and is not saved.

Examples:
  partners partner move 3 --stage Testing
  partners partner move --id 3 --stage Testing --index 0`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMove,
	}

	cmd.Flags().Int64("id", 0, "Partner ID (can also be provided as positional argument)")
	cmd.Flags().String("stage", "", "Destination stage (required)")
	cmd.Flags().Int("index", -1, "Position in the destination column (default: last)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := cli.ParseIDArg(cmd, args)
	if err != nil {
		return cli.NewFormatter(cmd).Usage(err.Error(), "Usage: partners partner move <id> --stage <stage>")
	}
	dest, _ := cmd.Flags().GetString("stage")
	if dest == "" {
		return cli.NewFormatter(cmd).Usage("--stage is required", "Usage: partners partner move <id> --stage <stage>")
	}
	index, _ := cmd.Flags().GetInt("index")

	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	partners, err := cliInstance.App.PartnerService.ListPartners(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	b := cliInstance.App.NewBoard()
	b.Rebuild(partners, cliInstance.App.StageService.ListStages())

	layout := b.Layout()
	source, ok := layout.Locate(id)
	if !ok {
		if _, err := cliInstance.App.PartnerService.GetPartner(ctx, id); err != nil {
			return formatter.Fail(err)
		}
		return formatter.Fail(fmt.Errorf("partner %d has no stage column: %w", id, board.ErrInvalidSource))
	}
	if index < 0 {
		index = len(layout.Column(dest))
	}

	if err := b.DragStart(source); err != nil {
		return formatter.Fail(err)
	}
	commit, err := b.DragEnd(ctx, source, &board.Location{Stage: dest, Index: index})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		formatter.Printf("%d\n", id)
		return nil
	}
	if formatter.JSON {
		return formatter.Result(cli.Fields{
			"partner_id": id.ToInt64(),
			"from":       commit.From.Stage,
			"to":         commit.To.Stage,
			"index":      commit.To.Index,
			"persisted":  commit.NeedsPersist(),
		})
	}

	switch commit.Kind {
	case board.Moved:
		formatter.Printf("%s Partner %d moved %s → %s\n", color.New(color.FgGreen).Sprint("✓"), id, commit.From.Stage, commit.To.Stage)
	case board.Reordered:
		formatter.Printf("Partner %d reordered within %s (order is not saved)\n", id, commit.To.Stage)
	default:
		formatter.Printf("Partner %d already at %s[%d]\n", id, commit.To.Stage, commit.To.Index)
	}
	return nil
}
