// =============================================================================
// Retail Marts - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'clean', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (retailmart)
//   ├── cleanCmd (retailmart clean)
//   ├── validateCmd (retailmart validate)
//   └── versionCmd (retailmart version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hwilkers/retail-marts/internal/config"
	"github.com/hwilkers/retail-marts/internal/logging"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "retailmart",
	Short: "Retail Marts - clean the Online Retail export into analytical marts",
	Long: `Retail Marts is a CLI tool that cleans the raw Online Retail CSV export
into two validated analytical datasets (sales and returns) plus optional
dimensional projections, and independently validates the written marts.

The two commands are deliberately decoupled: 'clean' produces the artifacts,
'validate' only ever reads them. Validation can therefore run later, on
another machine, or repeatedly, without the raw input being available.

Example Usage:
  retailmart clean                       # Clean with config/default paths
  retailmart clean --raw export.csv      # Clean a specific raw file
  retailmart clean --dims=false          # Skip the dimensional projections
  retailmart validate                    # Validate the written marts`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the global flags shared by every subcommand.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// setup loads the configuration and builds the logger. Shared by the clean
// and validate commands.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(cfg.LogLevel, verbose), nil
}
