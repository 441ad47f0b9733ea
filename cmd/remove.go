package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/modelorg/internal/ui"
	"github.com/PolarWolf314/modelorg/internal/utils"
	"github.com/PolarWolf314/modelorg/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	removeAll bool
	removeYes bool

	// confirmRemoval is replaced in tests.
	confirmRemoval = utils.Confirm
)

func init() {
	removeCmd.Flags().BoolVarP(&removeAll, "all", "a", false, "remove the whole project and all of its experiments")
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "do not ask for confirmation")
}

func resetRemoveCommandState() {
	removeAll = false
	removeYes = false
	confirmRemoval = utils.Confirm
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Delete an experiment or a whole project",
	Long: `Deletes the current experiment, or the one --id names, from disk and from the
configuration. With --all the whole project goes, including every experiment
it owns.

Confirmation is asked on an interactive terminal. Elsewhere --yes is required.

Examples:
  modelorg remove --id cosine
  modelorg remove --project trigo --all --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting remove command")

		result, err := workflows.Remove(context.Background(), store, workflows.RemoveOptions{
			Experiment: expID,
			Project:    project,
			Match:      match,
			All:        removeAll,
			Yes:        removeYes,
			Confirm:    confirmRemoval,
		})
		if err != nil {
			return reportError(cmd, err)
		}

		out := cmd.OutOrStdout()
		if removeAll {
			fmt.Fprintln(out, ui.Success.Sprint("✓")+" Removed project "+ui.Highlight.Sprint(result.Project))
			if len(result.Experiments) > 0 {
				fmt.Fprintln(out, ui.Info.Sprint("→")+" Experiments removed: "+strings.Join(result.Experiments, ", "))
			}
			if result.Root != "" {
				fmt.Fprint(out, ui.Info.Sprint("→")+" Deleted:"+utils.FormatPaths([]string{result.Root}))
			}
			return nil
		}
		fmt.Fprintln(out, ui.Success.Sprint("✓")+" Removed experiment "+ui.Highlight.Sprint(strings.Join(result.Experiments, ", "))+
			" of project "+ui.Highlight.Sprint(result.Project))
		return nil
	},
}
