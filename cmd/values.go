package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/modelorg/internal/document"
	"github.com/PolarWolf314/modelorg/internal/ui"
	"github.com/PolarWolf314/modelorg/internal/workflows"

	"github.com/spf13/cobra"
)

var setValueDType = newEnumValue("dtype", document.DTypeAuto, document.DTypes...)

func init() {
	setValueCmd.Flags().Var(setValueDType, "dtype", "value type, one of str, int, float, bool (default inferred)")
}

func resetValueCommandState() {
	setValueDType.value = document.DTypeAuto
}

var setValueCmd = &cobra.Command{
	Use:   "set-value <key> <value>",
	Short: "Store a value in an experiment's configuration",
	Long: `Stores a value at a dotted key path, creating intermediate mappings.

Numeric segments index into sequences. Without --dtype the type is inferred in the
order int, float, bool, string.

Examples:
  modelorg set-value fit.period 6.28
  modelorg set-value run.steps 100 --dtype int --id sine`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting set-value command")
		result, err := workflows.SetValue(context.Background(), store, workflows.ValueOptions{
			Experiment: expID,
			Project:    project,
			Match:      match,
			Key:        args[0],
			Value:      args[1],
			DType:      setValueDType.String(),
		})
		if err != nil {
			return reportError(cmd, err)
		}
		text, err := formatValue(result.Value)
		if err != nil {
			return reportError(cmd, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" "+ui.Code.Sprint(result.Key)+" = "+text+
			" in "+ui.Highlight.Sprint(result.Experiment))
		return nil
	},
}

var getValueCmd = &cobra.Command{
	Use:   "get-value <key>",
	Short: "Print a value from an experiment's configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting get-value command")
		result, err := workflows.GetValue(context.Background(), store, workflows.ValueOptions{
			Experiment: expID,
			Project:    project,
			Match:      match,
			Key:        args[0],
		})
		if err != nil {
			return reportError(cmd, err)
		}
		text, err := formatValue(result.Value)
		if err != nil {
			return reportError(cmd, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var delValueCmd = &cobra.Command{
	Use:   "del-value <key>",
	Short: "Delete a value from an experiment's configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting del-value command")
		result, err := workflows.DelValue(context.Background(), store, workflows.ValueOptions{
			Experiment: expID,
			Project:    project,
			Match:      match,
			Key:        args[0],
		})
		if err != nil {
			return reportError(cmd, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Deleted "+ui.Code.Sprint(result.Key)+
			" from "+ui.Highlight.Sprint(result.Experiment))
		return nil
	},
}
