package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/modelorg/internal/archive"
	"github.com/PolarWolf314/modelorg/internal/ui"
	"github.com/PolarWolf314/modelorg/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	archiveDest    string
	archiveFormat  = newEnumValue("format", "", archive.Formats()...)
	archiveRemove  bool
	archiveExclude []string
)

func init() {
	archiveCmd.Flags().StringVar(&archiveDest, "dest", "", "directory the container is written to (default the working directory)")
	archiveCmd.Flags().Var(archiveFormat, "format", "container format, one of tar, zip (default from settings.toml)")
	archiveCmd.Flags().BoolVarP(&archiveRemove, "remove", "r", false, "delete the project root once the container is written")
	archiveCmd.Flags().StringSliceVar(&archiveExclude, "exclude", nil, "glob patterns, relative to the project root, to leave out")
}

func resetArchiveCommandState() {
	archiveDest = ""
	archiveFormat.value = ""
	archiveRemove = false
	archiveExclude = nil
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Pack a project into a single container",
	Long: `Packs the project root and its configuration into <dest>/<project>.<format>
and marks the project archived.

With --remove the project root is deleted, but only after the container has been
fully written. Values of an archived project are read-only until it is restored
with unarchive.

Examples:
  modelorg archive
  modelorg archive --project trigo --format zip --dest /backup --remove
  modelorg archive --exclude '**/*.tmp' --exclude 'scratch/**'`,
	Args: cobra.NoArgs,
	RunE: runArchive,
}

func runArchive(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting archive command")
	spinner, cleanup := startSpinner(cmd, "Archiving project...")
	defer cleanup()

	result, err := workflows.Archive(context.Background(), store, workflows.ArchiveOptions{
		Project:     project,
		Experiment:  expID,
		Match:       match,
		Destination: archiveDest,
		Format:      archiveFormat.String(),
		Remove:      archiveRemove,
		Exclude:     archiveExclude,
	})
	if err != nil {
		cleanup()
		return reportError(cmd, err)
	}

	msg := ui.Success.Sprint("✓") + " Project " + ui.Highlight.Sprint(result.Project) +
		" archived to " + ui.Path.Sprint(result.Container) +
		fmt.Sprintf(" (%d experiment(s))", len(result.Experiments))
	if result.Removed {
		msg += "\n" + ui.Info.Sprint("→") + " The project root was removed, run " +
			ui.Code.Sprint("modelorg unarchive") + " to restore it"
	}
	spinner.FinalMSG = msg
	return nil
}
