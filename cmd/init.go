package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/modelorg/internal/ui"
	"github.com/PolarWolf314/modelorg/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	initDescription string
	initNew         bool
)

func init() {
	initCmd.Flags().StringVar(&initDescription, "description", "", "free-form description of the experiment")
	initCmd.Flags().BoolVar(&initNew, "new", false, "derive the id by bumping the trailing number of the current or given experiment")
}

func resetInitCommandState() {
	initDescription = ""
	initNew = false
}

var initCmd = &cobra.Command{
	Use:   "init [id]",
	Short: "Create an experiment in the current project",
	Long: `Creates an experiment directory under the project root, registers it and
makes it the current experiment.

The id comes from the argument or --id. Without either, the next free
"<prefix><N>" is used. With --new the trailing number of the current experiment,
or of the one --id names, is incremented (test_main4 becomes test_main5). --match
is only accepted together with --new.

Examples:
  modelorg init sine --description "fit a sine wave"
  modelorg init --new
  modelorg init --new --id 'test_main[0-9]+' --match`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting init command")

	opts := workflows.InitOptions{
		Experiment:  expID,
		Project:     project,
		Description: initDescription,
		New:         initNew,
		Match:       match,
	}
	if len(args) > 0 {
		opts.Experiment = args[0]
	}

	result, err := workflows.Init(context.Background(), store, opts)
	if err != nil {
		return reportError(cmd, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Experiment "+ui.Highlight.Sprint(result.Experiment)+
		" created in project "+ui.Highlight.Sprint(result.Project)+" at "+ui.Path.Sprint(result.ExpDir))
	return nil
}
