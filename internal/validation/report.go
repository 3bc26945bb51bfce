// =============================================================================
// Retail Marts - Validation Report Rendering
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/hwilkers/retail-marts/internal/types"
)

// Report is the machine-readable validation report written next to the
// console output. Checks appear in rule order.
type Report struct {
	RunID   string              `json:"run_id"`
	Sales   string              `json:"sales_artifact"`
	Returns string              `json:"returns_artifact"`
	Passed  int                 `json:"passed"`
	Failed  int                 `json:"failed"`
	Checks  []types.CheckResult `json:"checks"`
}

// NewReport assembles a Report from one engine run.
func NewReport(runID, salesPath, returnsPath string, checks []types.CheckResult) *Report {
	rep := &Report{
		RunID:   runID,
		Sales:   salesPath,
		Returns: returnsPath,
		Checks:  checks,
	}
	for _, c := range checks {
		if c.OK {
			rep.Passed++
		} else {
			rep.Failed++
		}
	}
	return rep
}

// RenderText renders the check results as the console report table.
func RenderText(checks []types.CheckResult) string {
	var b strings.Builder
	b.WriteString("=== VALIDATION REPORT ===\n")

	nameWidth := 0
	for _, c := range checks {
		if len(c.Name) > nameWidth {
			nameWidth = len(c.Name)
		}
	}

	for _, c := range checks {
		status := "ok"
		if !c.OK {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "  %-4s  %-*s  %s\n", status, nameWidth, c.Name, c.Detail)
	}
	return b.String()
}
