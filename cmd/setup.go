package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/modelorg/internal/ui"
	"github.com/PolarWolf314/modelorg/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	setupParent string
	setupSource string
	setupLink   bool
)

func init() {
	setupCmd.Flags().StringVar(&setupParent, "parent", ".", "directory the project root is created in")
	setupCmd.Flags().StringVar(&setupSource, "source", "", "existing directory holding the project's files")
	setupCmd.Flags().BoolVar(&setupLink, "link", false, "link the project root to --source instead of copying it")
}

func resetSetupCommandState() {
	setupParent = "."
	setupSource = ""
	setupLink = false
}

var setupCmd = &cobra.Command{
	Use:   "setup [name]",
	Short: "Create a project and make it current",
	Long: `Creates a project root directory and registers the project.

Without a name, the next free "<prefix><N>" is used, where the prefix comes from
the [naming] section of settings.toml. With --source the root is populated from an
existing directory, either copied or, with --link, as a symbolic link.

Examples:
  modelorg setup trigo
  modelorg setup --parent ~/runs
  modelorg setup ocean --source /data/ocean-model --link`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting setup command")

	opts := workflows.SetupOptions{
		Parent: setupParent,
		Source: setupSource,
		Link:   setupLink,
	}
	if len(args) > 0 {
		opts.Name = args[0]
	}
	if opts.Link && opts.Source == "" {
		return reportError(cmd, fmt.Errorf("--link requires --source"))
	}

	result, err := workflows.Setup(context.Background(), store, opts)
	if err != nil {
		return reportError(cmd, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Success.Sprint("✓")+" Project "+ui.Highlight.Sprint(result.Project)+" set up at "+ui.Path.Sprint(result.Root))
	switch {
	case result.Linked:
		fmt.Fprintln(out, ui.Info.Sprint("→")+" Root links to "+ui.Path.Sprint(setupSource))
	case result.Copied:
		fmt.Fprintln(out, ui.Info.Sprint("→")+" Files copied from "+ui.Path.Sprint(setupSource))
	}
	fmt.Fprintln(out, ui.Info.Sprint("→")+" Run "+ui.Code.Sprint("modelorg init")+" to create an experiment")
	return nil
}
