// =============================================================================
// Retail Marts - Normalizer
// =============================================================================
//
// This module turns raw header-keyed rows into typed CleanRecords:
//   1. Rename source columns to canonical snake_case names (fixed mapping)
//   2. Coerce types, substituting nil for any value that fails to parse
//   3. Drop rows missing invoice_date, stock_code, or description
//   4. Trim surrounding whitespace on description, stock_code, country
//
// COERCION POLICY:
//   An unparsable date, quantity, unit price, or customer id is never fatal.
//   The field is set to nil and the row flows on; rows that cannot function
//   without a field are removed by the required-field filter, everything
//   else surfaces later in classification (nil quantity/price routes the
//   row to returns, never to sales).
//
// =============================================================================

package cleaner

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hwilkers/retail-marts/internal/loader"
	"github.com/hwilkers/retail-marts/internal/types"
)

// =============================================================================
// FIELD MAPPING
// =============================================================================

// Source column names from the raw Online Retail export. Cells are looked up
// by these names, so the raw file may carry its columns in any order.
const (
	srcInvoiceNo   = "InvoiceNo"
	srcStockCode   = "StockCode"
	srcDescription = "Description"
	srcQuantity    = "Quantity"
	srcInvoiceDate = "InvoiceDate"
	srcUnitPrice   = "UnitPrice"
	srcCustomerID  = "CustomerID"
	srcCountry     = "Country"
)

// dateLayouts are the invoice date formats accepted during coercion, tried
// in order. The Kaggle export uses M/D/YYYY H:MM; the remaining layouts make
// re-cleaning of already-normalized data possible.
var dateLayouts = []string{
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// Normalize converts every raw row into a CleanRecord, dropping rows that
// lack a parsable invoice date, a stock code, or a description. It reports
// the input and output row counts on the given logger.
func Normalize(table *loader.Table, log *slog.Logger) []types.CleanRecord {
	records := make([]types.CleanRecord, 0, len(table.Rows))
	dropped := 0

	for _, row := range table.Rows {
		rec := types.CleanRecord{
			InvoiceNo:   row[srcInvoiceNo],
			StockCode:   strings.TrimSpace(row[srcStockCode]),
			Description: strings.TrimSpace(row[srcDescription]),
			Quantity:    parseFloat(row[srcQuantity]),
			InvoiceDate: parseDate(row[srcInvoiceDate]),
			UnitPrice:   parseFloat(row[srcUnitPrice]),
			CustomerID:  parseCustomerID(row[srcCustomerID]),
			Country:     strings.TrimSpace(row[srcCountry]),
		}

		// Required-field filter: without these three the row is unusable
		// for any analysis downstream.
		if rec.InvoiceDate == nil || rec.StockCode == "" || rec.Description == "" {
			dropped++
			continue
		}

		records = append(records, rec)
	}

	log.Info("normalized raw rows",
		"in", len(table.Rows),
		"out", len(records),
		"dropped", dropped,
	)
	return records
}

// =============================================================================
// COERCION HELPERS
// =============================================================================

// parseFloat coerces a raw cell to a float, yielding nil on blank or
// unparsable input.
func parseFloat(raw string) *float64 {
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

// parseCustomerID coerces a raw cell to an integer customer id. The raw
// export sometimes renders ids in float form ("17850.0"), so the value is
// parsed as a float first and accepted only when it carries no fraction.
func parseCustomerID(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v != math.Trunc(v) {
		return nil
	}
	id := int64(v)
	return &id
}

// parseDate coerces a raw cell to a timestamp, trying each accepted layout
// in order and yielding nil when none match.
func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
