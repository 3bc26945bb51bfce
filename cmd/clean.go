// =============================================================================
// Retail Marts - Clean Command
// =============================================================================
//
// This file defines the 'clean' command, which runs the full cleaning
// pipeline over the raw retail export.
//
// COMMAND USAGE:
//   retailmart clean [flags]
//
// FLAGS:
//   --raw    : Path to the raw export (CSV or XLSX)
//   --out    : Output directory for the cleaned marts
//   --xlsx   : Also write the sales mart as an XLSX workbook
//   --dims   : Build the dimensional projections
//
// PIPELINE:
//   1. Load the raw export
//   2. Normalize (rename, coerce types, drop unusable rows, trim text)
//   3. Derive fields and split into sales/returns
//   4. Write the CSV marts (plus optional dims and XLSX copy)
//   5. Print a summary report
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hwilkers/retail-marts/internal/cleaner"
)

// Flag values for the clean command; config file values are used unless a
// flag is set explicitly.
var (
	rawPath   string
	outDir    string
	writeXLSX bool
	buildDims bool
)

// cleanCmd represents the 'clean' command.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the raw export into sales and returns marts",
	Long: `The clean command reads the raw Online Retail export, normalizes it into
typed records, splits the records into sales and returns, and writes the
resulting marts as CSV files.

Rows with an unparsable invoice date or a missing stock code or description
are dropped. Unparsable numeric fields are never fatal: the affected rows
are kept and routed to the returns mart by the positivity checks.

Only a missing raw input aborts the run. A failed XLSX write is reported as
a warning and the run still succeeds; the CSV marts are already on disk.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runClean(cmd)
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringVar(&rawPath, "raw", "", "Path to the raw export (overrides config)")
	cleanCmd.Flags().StringVar(&outDir, "out", "", "Output directory for the marts (overrides config)")
	cleanCmd.Flags().BoolVar(&writeXLSX, "xlsx", true, "Also write the sales mart as XLSX")
	cleanCmd.Flags().BoolVar(&buildDims, "dims", true, "Build the dimensional projections")
}

// runClean wires flags over the config and executes the pipeline.
func runClean(cmd *cobra.Command) error {
	start := time.Now()

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if rawPath != "" {
		cfg.RawInput = rawPath
	}
	if outDir != "" {
		cfg.OutputDir = outDir
	}
	if cmd.Flags().Changed("xlsx") {
		cfg.WriteXLSX = writeXLSX
	}
	if cmd.Flags().Changed("dims") {
		cfg.BuildDims = buildDims
	}

	fmt.Println("=== Retail Marts Cleaner ===")
	fmt.Printf("Raw input:  %s\n", cfg.RawInput)
	fmt.Printf("Output dir: %s\n", cfg.OutputDir)

	result, err := cleaner.New(cfg, log).Run()
	if err != nil {
		return err
	}

	fmt.Println("\n=== Cleaning Complete ===")
	fmt.Printf("Run ID:        %s\n", result.RunID)
	fmt.Printf("Raw rows:      %d\n", result.RawRows)
	fmt.Printf("Clean rows:    %d\n", result.CleanRows)
	fmt.Printf("Sales rows:    %d\n", result.SalesRows)
	fmt.Printf("Return rows:   %d\n", result.ReturnRows)
	fmt.Printf("Time elapsed:  %s\n", time.Since(start).Round(time.Millisecond))

	for _, artifact := range result.Artifacts {
		fmt.Printf("  ✓ %s\n", artifact)
	}
	for _, warning := range result.Warnings {
		fmt.Printf("  ! %s\n", warning)
	}
	return nil
}
