package stage

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// StageCmd returns the stage parent command
func StageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Manage pipeline stages",
		Long: `Manage the stages partners move through.

Stages with partners in them always appear on the board. Stages added or
removed here update the configured pipeline (stages.defaults) in the config
file. Stages only seen on partners are never written there.`,
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(AddCmd())
	cmd.AddCommand(RemoveCmd())

	return cmd
}

// configuredWith returns the configured pipeline with name appended.
func configuredWith(defaults []string, name string) []string {
	out := slices.Clone(defaults)
	if !slices.Contains(out, name) {
		out = append(out, name)
	}
	return out
}

// configuredWithout returns the configured pipeline minus name.
func configuredWithout(defaults []string, name string) []string {
	name = strings.TrimSpace(name)
	return slices.DeleteFunc(slices.Clone(defaults), func(s string) bool {
		return s == name
	})
}
