// =============================================================================
// Retail Marts - Sales/Returns Classifier
// =============================================================================
//
// Partitions derived records into the sales and returns marts. The partition
// is total and disjoint: every record lands in exactly one output, none are
// duplicated or dropped.
//
// =============================================================================

package cleaner

import "github.com/hwilkers/retail-marts/internal/types"

// IsReturn reports whether a record belongs in the returns mart:
// it is a credit note, or its quantity or unit price fails the > 0 test.
// A nil quantity or unit price cannot certify positivity, so those rows
// always route to returns.
func IsReturn(rec types.CleanRecord) bool {
	if rec.IsCreditNote {
		return true
	}
	if rec.Quantity == nil || *rec.Quantity <= 0 {
		return true
	}
	if rec.UnitPrice == nil || *rec.UnitPrice <= 0 {
		return true
	}
	return false
}

// Split partitions records into sales and returns, preserving input order
// within each partition.
func Split(records []types.CleanRecord) (sales, returns []types.CleanRecord) {
	sales = make([]types.CleanRecord, 0, len(records))
	returns = make([]types.CleanRecord, 0)

	for _, rec := range records {
		if IsReturn(rec) {
			returns = append(returns, rec)
		} else {
			sales = append(sales, rec)
		}
	}
	return sales, returns
}
