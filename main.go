// =============================================================================
// Retail Marts - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Retail Marts CLI application. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   retailmart clean          - Clean the raw retail export into sales/returns marts
//   retailmart validate       - Validate previously written marts without re-cleaning
//   retailmart version        - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/hwilkers/retail-marts/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
