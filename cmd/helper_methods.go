package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/PolarWolf314/modelorg/internal/ui"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message and prints it to the command's output.
func startSpinner(cmd *cobra.Command, message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	done := false
	cleanup := func() {
		if done {
			return
		}
		done = true
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Cleared so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}
		if quiet {
			s.Stop()
		}
		if finalMsg != "" {
			fmt.Fprint(cmd.OutOrStdout(), finalMsg)
		}
	}

	return s, cleanup
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// reportError prints err for the user and returns it for a non-zero exit.
func reportError(cmd *cobra.Command, err error) error {
	Logger.Errorf("%s failed: %v", cmd.Name(), err)
	fmt.Fprint(cmd.ErrOrStderr(), ui.EnsureNewline(formatError(err)))
	return &reportedError{err: err}
}

func formatError(err error) string {
	var amb *kerrors.AmbiguousMatchError
	if errors.As(err, &amb) {
		return ui.FormatMatches(amb.Identifier, amb.Matches)
	}

	fail := ui.Error.Sprint("✗") + " " + err.Error()
	hint := func(text string) string {
		return fail + "\n" + ui.Info.Sprint("→") + " " + text
	}

	switch {
	case errors.Is(err, context.Canceled):
		return fail
	case errors.Is(err, kerrors.ErrNotFound):
		return hint("Run " + ui.Code.Sprint("modelorg info --scope global") + " to list projects and experiments")
	case errors.Is(err, kerrors.ErrAlreadyArchived):
		return hint("Run " + ui.Code.Sprint("modelorg unarchive") + " to restore the project first")
	case errors.Is(err, kerrors.ErrAlreadyActive):
		return hint("The project is already on disk, there is nothing to restore")
	case errors.Is(err, kerrors.ErrPathExists):
		return hint("Choose another name or an empty location")
	case errors.Is(err, kerrors.ErrIncompleteArchive):
		return hint("Run without " + ui.Code.Sprint("--complete") + " to drop the missing experiments")
	case errors.Is(err, kerrors.ErrNotConfirmed):
		return hint("Pass " + ui.Code.Sprint("--yes") + " to remove without confirmation")
	case errors.Is(err, kerrors.ErrConfigCorrupt):
		return hint("Fix or remove the file named above")
	default:
		return fail
	}
}

// enumValue is a string flag restricted to a fixed set of values.
type enumValue struct {
	value    string
	allowed  []string
	typeName string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(typeName, def string, allowed ...string) *enumValue {
	return &enumValue{value: def, allowed: allowed, typeName: typeName}
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(s string) error {
	for _, a := range e.allowed {
		if s == a {
			e.value = s
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string { return e.typeName }

// formatValue renders a document value: scalars bare, collections as YAML.
func formatValue(v any) (string, error) {
	switch v.(type) {
	case nil:
		return "null", nil
	case string, int, float64, bool:
		return fmt.Sprint(v), nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to render value: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// resetFlagState clears the Changed marks of every flag below root.
func resetFlagState(root *cobra.Command) {
	root.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	root.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, c := range root.Commands() {
		resetFlagState(c)
	}
}
