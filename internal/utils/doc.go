// Package utils provides shared helpers for modelorg.
//
// # Filesystem Utilities
//
//   - PathExists: existence check that does not follow a final link
//   - IsDirEmpty: reports whether a directory has no entries
//   - CopyTree: copies a directory, recreating symbolic links
//
// # Naming Utilities
//
//   - NextName: synthesizes "<prefix><N>" past every number in use
//   - IncrementName: bumps a trailing number ("main4" to "main5")
//   - FormatPaths: formats file paths for human-readable output
//
// # System Utilities
//
//   - CurrentIdentity: identifies who ran a command
//
// # Terminal Utilities
//
//   - IsTerminal: checks if stdin is a terminal
//   - Confirm, ConfirmFrom: yes/no prompts
package utils
