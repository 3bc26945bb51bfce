// =============================================================================
// Retail Marts - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which runs the standalone
// validation engine over previously written mart artifacts. It never runs
// the cleaning pipeline and never needs the raw input.
//
// COMMAND USAGE:
//   retailmart validate [flags]
//
// FLAGS:
//   --sales      : Path to the sales mart CSV
//   --returns    : Path to the returns mart CSV
//   --report-dir : Directory for the JSON report (default: sales mart's dir)
//
// EXIT STATUS:
//   Failed checks are data-quality findings, not process failures: the
//   command exits 0 as long as the engine ran. Only a missing artifact
//   makes it fail.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hwilkers/retail-marts/internal/csvwriter"
	"github.com/hwilkers/retail-marts/internal/validation"
	"github.com/hwilkers/retail-marts/pkg/utils"
)

// Flag values for the validate command.
var (
	salesPath   string
	returnsPath string
	reportDir   string
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate previously written marts without re-cleaning",
	Long: `The validate command reads the persisted sales and returns marts and runs
the full battery of invariant checks against them: schema presence, basic
dtypes, text trimming, line-total consistency, and the sales-side positivity
and credit-note rules.

Every check runs even if an earlier one fails; a check whose computation
blows up is recorded as failed with the reason in its detail. The ordered
results are printed as a report table and written as a JSON report file.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&salesPath, "sales", "", "Path to the sales mart CSV (overrides config)")
	validateCmd.Flags().StringVar(&returnsPath, "returns", "", "Path to the returns mart CSV (overrides config)")
	validateCmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory for the JSON report (default: sales mart's directory)")
}

func runValidate() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if salesPath == "" {
		salesPath = filepath.Join(cfg.OutputDir, csvwriter.FactSalesFile)
	}
	if returnsPath == "" {
		returnsPath = filepath.Join(cfg.OutputDir, csvwriter.FactReturnsFile)
	}
	if reportDir == "" {
		reportDir = filepath.Dir(salesPath)
	}

	checks, err := validation.New(log).Run(salesPath, returnsPath)
	if err != nil {
		return err
	}

	fmt.Print(validation.RenderText(checks))

	runID := utils.NewRunID()
	report := validation.NewReport(runID, salesPath, returnsPath, checks)
	path, err := utils.WriteJSONReport(reportDir, utils.ReportFileName("validation", runID), report)
	if err != nil {
		return err
	}

	fmt.Printf("\nChecks passed: %d, failed: %d\n", report.Passed, report.Failed)
	fmt.Printf("Report written: %s\n", path)
	return nil
}
