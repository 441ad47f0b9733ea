// Package workflows provides the operations behind every modelorg command.
//
// Each workflow handles a single command's logic, independent of CLI
// concerns like flag parsing, spinners and output formatting. It takes a
// *configs.Store holding the configuration for this invocation, so tests can
// run against isolated stores.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else, in a fixed order: resolve the target,
// check preconditions, change the filesystem, change the in-memory
// configuration, persist it, then append a history entry. A failure before
// the last step leaves the persisted configuration as it was.
//
// # Available Workflows
//
//   - Setup: creates and registers a project root
//   - Init: creates an experiment in a project
//   - Remove: deletes an experiment, or a whole project
//   - Archive: packs a project into a tar or zip container
//   - Unarchive: restores a project from a container
//   - GetValue, SetValue, DelValue: dotted-key access to experiment values
//   - Info: returns a configuration document or its location
//   - SetSetting: changes one tool setting in settings.toml
//
// # Error Handling
//
// Workflows return errors wrapping the sentinels in internal/errors:
//
//	_, err := workflows.Archive(ctx, store, opts)
//	if errors.Is(err, kerrors.ErrAlreadyArchived) {
//	    // Suggest unarchive
//	}
package workflows
