package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/PolarWolf314/modelorg/internal/configs"
	logger "github.com/PolarWolf314/modelorg/internal/logging"
	"github.com/PolarWolf314/modelorg/internal/paths"
	"github.com/PolarWolf314/modelorg/internal/workflows"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	debug     bool
	configDir string
	expID     string
	match     bool
	project   string

	Logger logger.Logger
	store  *configs.Store

	RootCmd = &cobra.Command{
		Use:   "modelorg",
		Short: "Organize model experiments into projects",
		Long: `modelorg keeps track of projects and the experiments inside them.

Each project is a directory tree on disk. Experiments are subdirectories with a
configuration document holding arbitrary values. Projects can be archived into a
single tar or zip container and restored later, on this machine or another one.

Examples:
  modelorg setup trigo
  modelorg init sine --description "fit a sine wave"
  modelorg set-value fit.period 6.28 --dtype float
  modelorg archive --remove
  modelorg unarchive --id sine`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Out:     cmd.OutOrStdout(),
				Err:     cmd.ErrOrStderr(),
			}
			workflows.Log = Logger
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.Name(), verbose, debug)

			// The banner needs no configuration.
			if !cmd.HasParent() {
				return nil
			}
			return openStore(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			printBanner(cmd.OutOrStdout())
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default $"+paths.EnvConfigDir+" or the platform config dir)")
	RootCmd.PersistentFlags().StringVar(&expID, "id", "", "experiment id (default the current experiment)")
	RootCmd.PersistentFlags().BoolVarP(&match, "match", "m", false, "treat --id and --project as regular expressions")
	RootCmd.PersistentFlags().StringVarP(&project, "project", "p", "", "project name (default the current project)")

	RootCmd.AddCommand(setupCmd)
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(setValueCmd)
	RootCmd.AddCommand(getValueCmd)
	RootCmd.AddCommand(delValueCmd)
	RootCmd.AddCommand(infoCmd)
	RootCmd.AddCommand(archiveCmd)
	RootCmd.AddCommand(unarchiveCmd)
	RootCmd.AddCommand(removeCmd)
	RootCmd.AddCommand(historyCmd)
	RootCmd.AddCommand(settingsCmd)
}

func openStore(cmd *cobra.Command) error {
	dir, err := paths.ResolveConfigDir(configDir)
	if err != nil {
		return Logger.ErrorfAndReturn("failed to resolve configuration directory: %v", err)
	}
	Logger.Debugf("Using configuration directory %s", dir)

	s, err := configs.Open(dir)
	if err != nil {
		return reportError(cmd, err)
	}
	if err := s.Load(); err != nil {
		return reportError(cmd, err)
	}
	store = s
	return nil
}

func printBanner(w io.Writer) {
	banner := figure.NewFigure("modelorg", "standard", false)
	fmt.Fprintln(w, banner.String())
	fmt.Fprintln(w, "Run 'modelorg --help' to see available commands.")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, formatError(err))
		}
		os.Exit(1)
	}
}
