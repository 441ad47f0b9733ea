// Package logger provides leveled output for modelorg commands.
//
// Logging behavior is controlled by two persistent flags:
//
//   - --verbose: shows info and warning messages
//   - --debug: shows everything, including debug details and errors as
//     they are returned
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Shown with --verbose or --debug
//	Logger.WarnfAlways()     // Always shown
//	Logger.Errorf()          // Shown with --debug
//	Logger.ErrorfAndReturn() // Errorf, then returns the message as an error
//	Logger.Fatalf()          // Always shown, then exits
//
// The root command builds the logger in PersistentPreRunE and every
// subcommand uses it.
package logger
