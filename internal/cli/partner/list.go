package partner

import (
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/partners/internal/cli"
	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/pipeline"
)

// ListCmd returns the partner list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List partners",
		Long: `List design partners, sorted by a column.

Examples:
  partners partner list
  partners partner list --sort stage --desc
  partners partner list --stage Testing --json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("sort", string(pipeline.SortByName), "Sort column: name, email, stage, created_at")
	cmd.Flags().Bool("desc", false, "Sort descending")
	cmd.Flags().String("stage", "", "Only show partners in this stage")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sortFlag, _ := cmd.Flags().GetString("sort")
	desc, _ := cmd.Flags().GetBool("desc")
	stageFilter, _ := cmd.Flags().GetString("stage")

	key, err := pipeline.ParseSortKey(sortFlag)
	if err != nil {
		return cli.NewFormatter(cmd).Usage(err.Error(), "Valid sort columns: name, email, stage, created_at")
	}
	state := pipeline.SortState{Key: key, Dir: pipeline.Asc}
	if desc {
		state.Dir = pipeline.Desc
	}

	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	partners, err := cliInstance.App.PartnerService.ListPartners(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	if stageFilter != "" {
		partners = pipeline.GroupByStage(partners, []string{stageFilter})[stageFilter]
	}
	partners = pipeline.Sort(partners, state)

	if formatter.Quiet {
		for _, p := range partners {
			formatter.Printf("%d\n", p.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.Result(cli.Fields{
			"sort":     map[string]string{"key": string(state.Key), "direction": state.Dir.String()},
			"partners": cli.PartnersJSON(partners),
		})
	}

	if len(partners) == 0 {
		formatter.Printf("No partners found\n")
		return nil
	}

	printTable(formatter, partners, state)
	return nil
}

func printTable(f *cli.OutputFormatter, partners []*models.Partner, state pipeline.SortState) {
	header := color.New(color.Bold)
	heading := func(key pipeline.SortKey, label string) string {
		if state.Key == key {
			label += " " + state.Dir.Arrow()
		}
		return header.Sprint(label)
	}

	w := tabwriter.NewWriter(f.Writer(), 0, 0, 2, ' ', 0)
	_, _ = w.Write([]byte("ID\t" +
		heading(pipeline.SortByName, "NAME") + "\t" +
		heading(pipeline.SortByEmail, "EMAIL") + "\t" +
		heading(pipeline.SortByStage, "STAGE") + "\t" +
		heading(pipeline.SortByCreatedAt, "CREATED") + "\n"))
	for _, p := range partners {
		created := ""
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Local().Format("2006-01-02")
		}
		_, _ = w.Write([]byte(p.ID.String() + "\t" + p.Name + "\t" + p.Email + "\t" +
			color.New(color.FgCyan).Sprint(p.Stage) + "\t" + created + "\n"))
	}
	_ = w.Flush()
}
