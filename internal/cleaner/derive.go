// =============================================================================
// Retail Marts - Derived Fields
// =============================================================================
//
// Pure, total functions that compute the derived fields of a CleanRecord.
// They run after normalization and before the sales/returns split, because
// classification depends on the credit-note flag.
//
// =============================================================================

package cleaner

import (
	"strings"

	"github.com/hwilkers/retail-marts/internal/types"
)

// creditNotePrefix marks credit notes in the raw invoice numbering scheme.
const creditNotePrefix = "C"

// Derive returns a copy of rec with its derived fields filled in:
//
//   - IsCreditNote:    invoice number starts with "C"
//   - LineTotal:       quantity * unit_price, nil when either factor is nil
//   - InvoiceDateDate: calendar date of the invoice timestamp
//   - InvoiceYM:       YYYY-MM bucket of the invoice timestamp
//
// It never fails: unparsable inputs were already nulled by Normalize, and a
// nil factor keeps LineTotal nil rather than forcing a zero.
func Derive(rec types.CleanRecord) types.CleanRecord {
	rec.IsCreditNote = strings.HasPrefix(rec.InvoiceNo, creditNotePrefix)

	if rec.Quantity != nil && rec.UnitPrice != nil {
		total := *rec.Quantity * *rec.UnitPrice
		rec.LineTotal = &total
	} else {
		rec.LineTotal = nil
	}

	// Normalize guarantees a non-nil InvoiceDate; the guard keeps Derive
	// total for callers that construct records by hand.
	if rec.InvoiceDate != nil {
		rec.InvoiceDateDate = rec.InvoiceDate.Format("2006-01-02")
		rec.InvoiceYM = rec.InvoiceDate.Format("2006-01")
	}

	return rec
}
