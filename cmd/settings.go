package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/modelorg/internal/configs"
	"github.com/PolarWolf314/modelorg/internal/paths"
	"github.com/PolarWolf314/modelorg/internal/ui"
	"github.com/PolarWolf314/modelorg/internal/workflows"

	"github.com/spf13/cobra"
)

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsUnsetCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change tool settings",
	Long: `Manages settings.toml in the configuration directory.

Keys:
  ` + strings.Join(workflows.SettingKeys, "\n  ") + `

Examples:
  modelorg settings show
  modelorg settings set naming.experiment_prefix run
  modelorg settings set archive.exclude "**/*.tmp,**/cache/**"
  modelorg settings unset archive.format`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting settings show command")
		data, err := configs.EncodeTOML(store.Settings)
		if err != nil {
			return reportError(cmd, fmt.Errorf("failed to render settings: %w", err))
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "# "+paths.SettingsPath(store.ConfigDir))
		fmt.Fprint(out, ui.EnsureNewline(string(data)))
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting settings set command")
		return runSetting(cmd, workflows.SettingOptions{Key: args[0], Value: args[1]})
	},
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting settings unset command")
		return runSetting(cmd, workflows.SettingOptions{Key: args[0], Unset: true})
	},
}

func runSetting(cmd *cobra.Command, opts workflows.SettingOptions) error {
	result, err := workflows.SetSetting(context.Background(), store, opts)
	if err != nil {
		return reportError(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Updated "+ui.Code.Sprint(opts.Key)+
		" in "+ui.Path.Sprint(result.Path))
	return nil
}
