package cmd

import (
	"github.com/spf13/cobra"
)

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configDir = ""
	expID = ""
	match = false
	project = ""
	store = nil

	resetSetupCommandState()
	resetInitCommandState()
	resetValueCommandState()
	resetInfoCommandState()
	resetArchiveCommandState()
	resetUnarchiveCommandState()
	resetRemoveCommandState()
	resetHistoryCommandState()
	resetFlagState(RootCmd)
}

// SetConfirm replaces the removal confirmation prompt for testing.
func SetConfirm(fn func(prompt string) bool) {
	confirmRemoval = fn
}
