// =============================================================================
// Retail Marts - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - cleaner
//   - dimensions
//   - csvwriter / xlsxwriter
//   - validation
//
// =============================================================================

package types

import "time"

// =============================================================================
// RAW INPUT TYPES
// =============================================================================

// RawRecord is a single row of the raw export, keyed by its original column
// headers. Values are untyped text; coercion happens in the cleaner.
type RawRecord map[string]string

// =============================================================================
// CLEANED RECORD
// =============================================================================

// CleanRecord is the typed projection of a raw row after normalization plus
// the derived fields added before the sales/returns split.
//
// Nullable fields are pointers: a nil Quantity means the raw value did not
// parse as a number, not that it was zero. The classifier relies on that
// distinction, so these must never be collapsed to a sentinel value.
type CleanRecord struct {
	// InvoiceNo is the invoice identifier. Credit notes carry a "C" prefix.
	InvoiceNo string

	// StockCode is the SKU identifier, trimmed of surrounding whitespace.
	StockCode string

	// Description is the product description, trimmed of surrounding whitespace.
	Description string

	// Quantity is the line quantity; nil when the raw value was unparsable.
	Quantity *float64

	// InvoiceDate is the invoice timestamp. Rows without a parsable invoice
	// date are dropped during normalization, so this is non-nil for every
	// record that reaches later stages.
	InvoiceDate *time.Time

	// UnitPrice is the per-unit price; nil when the raw value was unparsable.
	UnitPrice *float64

	// CustomerID is the customer identifier; nil for anonymous rows.
	CustomerID *int64

	// Country is the customer country, trimmed of surrounding whitespace.
	Country string

	// IsCreditNote is true iff InvoiceNo starts with the literal prefix "C".
	IsCreditNote bool

	// LineTotal is Quantity * UnitPrice. It stays nil when either factor is
	// nil rather than collapsing to zero.
	LineTotal *float64

	// InvoiceDateDate is the calendar-date truncation of InvoiceDate,
	// formatted YYYY-MM-DD.
	InvoiceDateDate string

	// InvoiceYM is the year-month bucket of InvoiceDate, formatted YYYY-MM.
	InvoiceYM string
}

// =============================================================================
// MART SCHEMA CONTRACT
// =============================================================================

// Canonical column names shared by the sales and returns marts. The
// validation engine consumes these files by name, so both the names and the
// order below are part of the on-disk contract.
const (
	ColInvoiceNo       = "invoice_no"
	ColStockCode       = "stock_code"
	ColDescription     = "description"
	ColQuantity        = "quantity"
	ColInvoiceDate     = "invoice_date"
	ColUnitPrice       = "unit_price"
	ColCustomerID      = "customer_id"
	ColCountry         = "country"
	ColIsCreditNote    = "is_credit_note"
	ColLineTotal       = "line_total"
	ColInvoiceDateDate = "invoice_date_date"
	ColInvoiceYM       = "invoice_ym"
)

// MartColumns is the exact column order of the persisted sales/returns marts.
var MartColumns = []string{
	ColInvoiceNo,
	ColStockCode,
	ColDescription,
	ColQuantity,
	ColInvoiceDate,
	ColUnitPrice,
	ColCustomerID,
	ColCountry,
	ColIsCreditNote,
	ColLineTotal,
	ColInvoiceDateDate,
	ColInvoiceYM,
}

// InvoiceDateLayout is the timestamp layout used when persisting
// invoice_date to the marts.
const InvoiceDateLayout = "2006-01-02 15:04:05"

// =============================================================================
// DIMENSION TYPES
// =============================================================================

// ProductRow is one deduplicated (stock_code, description) pair from sales.
type ProductRow struct {
	StockCode   string
	Description string
}

// CustomerRow is one deduplicated (customer_id, country) pair from sales
// rows with a known customer.
type CustomerRow struct {
	CustomerID int64
	Country    string
}

// InvoiceRow is one deduplicated (invoice_no, invoice_date) pair from sales,
// kept sorted ascending by invoice date.
type InvoiceRow struct {
	InvoiceNo   string
	InvoiceDate time.Time
}

// =============================================================================
// VALIDATION TYPES
// =============================================================================

// CheckResult is the outcome of a single validation rule.
type CheckResult struct {
	// Name identifies the rule, e.g. "trim_description".
	Name string `json:"check"`

	// OK is true when the rule passed.
	OK bool `json:"ok"`

	// Detail carries rule-specific context: missing column names, mismatch
	// counts, or the failure message when the rule itself blew up.
	Detail string `json:"detail,omitempty"`
}
