// =============================================================================
// Retail Marts - Validation Rules
// =============================================================================
//
// The enumerated invariant checks over the persisted marts. Rule order is
// part of the output contract: results are reported in exactly the order
// of the rules slice below.
//
// The parsing helpers here are deliberately independent of the cleaner:
// rules recompute expectations from the raw artifact text so validation
// stays meaningful even if the pipeline itself regresses.
//
// =============================================================================

package validation

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hwilkers/retail-marts/internal/types"
)

// Tolerances for line_total consistency, matching numpy's isclose defaults
// tightened to the contract values.
const (
	lineTotalRtol = 1e-6
	lineTotalAtol = 1e-9
)

// rule is one named predicate over the loaded artifacts. fn returns the
// pass/fail verdict plus a detail string for the report.
type rule struct {
	name string
	fn   func(a *artifacts) (bool, string)
}

// rules is the fixed, ordered battery.
var rules = []rule{
	{"columns_present", checkColumnsPresent},
	{"dtypes_basic", checkDtypesBasic},
	{"trim_description", trimCheck(types.ColDescription)},
	{"trim_stock_code", trimCheck(types.ColStockCode)},
	{"trim_country", trimCheck(types.ColCountry)},
	{"line_total_consistency", checkLineTotalConsistency},
	{"quantity_positive_in_sales", salesPositiveCheck(types.ColQuantity)},
	{"unit_price_positive_in_sales", salesPositiveCheck(types.ColUnitPrice)},
	{"no_credit_notes_in_sales", checkNoCreditNotesInSales},
	{"returns_nonempty_expected", checkReturnsNonempty},
}

// =============================================================================
// RULE IMPLEMENTATIONS
// =============================================================================

// requiredColumns are the canonical columns both marts must carry. The two
// presentation columns (invoice_date_date, invoice_ym) are informational
// and not required here.
var requiredColumns = []string{
	types.ColInvoiceNo,
	types.ColStockCode,
	types.ColDescription,
	types.ColQuantity,
	types.ColInvoiceDate,
	types.ColUnitPrice,
	types.ColCustomerID,
	types.ColCountry,
	types.ColIsCreditNote,
	types.ColLineTotal,
}

// checkColumnsPresent verifies every required column exists in the union of
// the two artifacts' headers. The detail always lists the missing columns,
// "[]" when none are.
func checkColumnsPresent(a *artifacts) (bool, string) {
	missing := make([]string, 0)
	for _, col := range requiredColumns {
		if !a.sales.HasColumn(col) && !a.returns.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	sort.Strings(missing)

	quoted := make([]string, len(missing))
	for i, col := range missing {
		quoted[i] = strconv.Quote(col)
	}
	return len(missing) == 0, "[" + strings.Join(quoted, ", ") + "]"
}

// checkDtypesBasic verifies invoice_date parses as a timestamp and
// quantity/unit_price parse as numbers on every combined row. Post-clean
// marts carry no residual nulls in these columns, so a blank cell fails.
func checkDtypesBasic(a *artifacts) (bool, string) {
	bad := 0
	for _, row := range a.combined {
		if parseTimestamp(row[types.ColInvoiceDate]) == nil {
			bad++
			continue
		}
		if parseNumber(row[types.ColQuantity]) == nil || parseNumber(row[types.ColUnitPrice]) == nil {
			bad++
		}
	}
	if bad > 0 {
		return false, fmt.Sprintf("unparsable rows=%d", bad)
	}
	return true, ""
}

// trimCheck builds the rule verifying no value in the named column carries
// leading or trailing whitespace.
func trimCheck(column string) func(a *artifacts) (bool, string) {
	return func(a *artifacts) (bool, string) {
		violations := 0
		for _, row := range a.combined {
			if v := row[column]; v != strings.TrimSpace(v) {
				violations++
			}
		}
		if violations > 0 {
			return false, fmt.Sprintf("edge whitespace rows=%d", violations)
		}
		return true, ""
	}
}

// checkLineTotalConsistency verifies line_total matches quantity * unit_price
// on every combined row within tolerance. A row whose numbers do
// not parse counts as a mismatch.
func checkLineTotalConsistency(a *artifacts) (bool, string) {
	mismatches := 0
	for _, row := range a.combined {
		qt := parseNumber(row[types.ColQuantity])
		up := parseNumber(row[types.ColUnitPrice])
		lt := parseNumber(row[types.ColLineTotal])
		if qt == nil || up == nil || lt == nil {
			mismatches++
			continue
		}

		expected := *qt * *up
		if math.Abs(*lt-expected) > lineTotalAtol+lineTotalRtol*math.Abs(expected) {
			mismatches++
		}
	}
	return mismatches == 0, fmt.Sprintf("mismatches=%d", mismatches)
}

// salesPositiveCheck builds the rule verifying the named numeric column is
// strictly positive on every row of the sales artifact.
func salesPositiveCheck(column string) func(a *artifacts) (bool, string) {
	return func(a *artifacts) (bool, string) {
		violations := 0
		for _, row := range a.sales.Rows {
			v := parseNumber(row[column])
			if v == nil || *v <= 0 {
				violations++
			}
		}
		if violations > 0 {
			return false, fmt.Sprintf("non-positive rows=%d", violations)
		}
		return true, ""
	}
}

// checkNoCreditNotesInSales verifies no sales row is flagged as a credit
// note. A cell that does not parse as a boolean counts as a violation.
func checkNoCreditNotesInSales(a *artifacts) (bool, string) {
	violations := 0
	for _, row := range a.sales.Rows {
		flag, err := strconv.ParseBool(strings.TrimSpace(row[types.ColIsCreditNote]))
		if err != nil || flag {
			violations++
		}
	}
	if violations > 0 {
		return false, fmt.Sprintf("credit note rows=%d", violations)
	}
	return true, ""
}

// checkReturnsNonempty is a soft sanity check: real retail data contains
// returns, so an empty returns mart usually means the split went wrong.
func checkReturnsNonempty(a *artifacts) (bool, string) {
	n := len(a.returns.Rows)
	return n > 0, fmt.Sprintf("returns=%d", n)
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

// timestampLayouts are the formats accepted for invoice_date cells. The
// marts write types.InvoiceDateLayout; the extra layouts accept artifacts
// produced by other tooling.
var timestampLayouts = []string{
	types.InvoiceDateLayout,
	"2006-01-02",
	"1/2/2006 15:04",
	time.RFC3339,
}

func parseTimestamp(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func parseNumber(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
