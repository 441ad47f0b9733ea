package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/modelorg/internal/document"
	"github.com/PolarWolf314/modelorg/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	infoScope    = newEnumValue("scope", string(workflows.ScopeExperiment), scopeNames()...)
	infoRelative bool
	infoPath     bool
)

func init() {
	infoCmd.Flags().Var(infoScope, "scope", "document to show, one of experiment, project, global, all")
	infoCmd.Flags().BoolVar(&infoRelative, "relative", false, "show paths relative to each document's root")
	infoCmd.Flags().BoolVar(&infoPath, "path", false, "print the file the document is stored in")
}

func resetInfoCommandState() {
	infoScope.value = string(workflows.ScopeExperiment)
	infoRelative = false
	infoPath = false
}

func scopeNames() []string {
	names := make([]string, len(workflows.InfoScopes))
	for i, s := range workflows.InfoScopes {
		names[i] = string(s)
	}
	return names
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show a configuration document",
	Long: `Prints the configuration of the current experiment as YAML.

--scope project shows the owning project's document, --scope global the registry
of all projects and experiments, and --scope all every experiment keyed by id.

Examples:
  modelorg info
  modelorg info --scope project --relative
  modelorg info --id sine --path`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting info command")
		result, err := workflows.Info(context.Background(), store, workflows.InfoOptions{
			Scope:      workflows.InfoScope(infoScope.String()),
			Experiment: expID,
			Project:    project,
			Match:      match,
			Relative:   infoRelative,
			DocPath:    infoPath,
		})
		if err != nil {
			return reportError(cmd, err)
		}

		if infoPath {
			fmt.Fprintln(cmd.OutOrStdout(), result.Path)
			return nil
		}
		data, err := document.Marshal(result.Document)
		if err != nil {
			return reportError(cmd, err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}
