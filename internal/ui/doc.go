// Package ui provides semantic text formatting for CLI output.
//
// Formatters render with color when the terminal supports it. When NO_COLOR
// is set or the terminal lacks color, text decorations are used instead.
//
//	ui.Code.Sprint("modelorg init")      // Commands
//	ui.Path.Sprint("trigo.tar")          // File paths
//	ui.Success.Sprint("✓")               // Success indicators
//	ui.Error.Sprint("✗")                 // Error indicators
//	ui.Highlight.Sprint("sine")          // Project names and experiment ids
//	ui.Muted.Sprint("archived")          // De-emphasized text
//
// Without color, Code adds `backticks`, Highlight 'single quotes' and Muted
// (parentheses). Other formatters leave text unchanged.
package ui
