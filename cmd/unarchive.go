package cmd

import (
	"context"
	"strings"

	"github.com/PolarWolf314/modelorg/internal/ui"
	"github.com/PolarWolf314/modelorg/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	unarchiveFile     string
	unarchiveDest     string
	unarchiveComplete bool
)

func init() {
	unarchiveCmd.Flags().StringVarP(&unarchiveFile, "file", "f", "", "container to restore from (default the recorded one)")
	unarchiveCmd.Flags().StringVar(&unarchiveDest, "dest", "", "directory the project root is restored into (default where it was)")
	unarchiveCmd.Flags().BoolVar(&unarchiveComplete, "complete", false, "fail if a registered experiment is missing from the container")
}

func resetUnarchiveCommandState() {
	unarchiveFile = ""
	unarchiveDest = ""
	unarchiveComplete = false
}

var unarchiveCmd = &cobra.Command{
	Use:   "unarchive",
	Short: "Restore an archived project",
	Long: `Restores a project root and its configuration from a container and marks the
project active again.

A container from another machine can be restored with --file. The project is then
named after the container and registered on this machine.

Examples:
  modelorg unarchive --id sine
  modelorg unarchive --file /backup/trigo.tar --dest ~/research`,
	Args: cobra.NoArgs,
	RunE: runUnarchive,
}

func runUnarchive(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting unarchive command")
	spinner, cleanup := startSpinner(cmd, "Restoring project...")
	defer cleanup()

	result, err := workflows.Unarchive(context.Background(), store, workflows.UnarchiveOptions{
		Project:     project,
		Experiment:  expID,
		Match:       match,
		Container:   unarchiveFile,
		Destination: unarchiveDest,
		Complete:    unarchiveComplete,
	})
	if err != nil {
		cleanup()
		return reportError(cmd, err)
	}

	msg := ui.Success.Sprint("✓") + " Project " + ui.Highlight.Sprint(result.Project) +
		" restored to " + ui.Path.Sprint(result.Root)
	if len(result.Missing) > 0 {
		msg += "\n" + ui.Warning.Sprint("⚠") + " Not in the container and dropped: " +
			strings.Join(result.Missing, ", ")
	}
	spinner.FinalMSG = msg
	return nil
}
