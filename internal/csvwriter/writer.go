// =============================================================================
// Retail Marts - CSV Artifact Writer
// =============================================================================
//
// This module persists the cleaned datasets as CSV files. The sales and
// returns marts share one fixed 12-column schema; column names and order
// are part of the contract the validation engine consumes, so they come
// straight from types.MartColumns and are never inferred.
//
// ARTIFACTS:
//   fact_sales_lines.csv                - the sales mart
//   fact_returns_lines.csv              - the returns mart
//   fact_sales_lines_with_customer.csv  - sales restricted to known customers
//   dim_products.csv                    - (stock_code, description) pairs
//   dim_customers.csv                   - (customer_id, country) pairs
//   dim_invoices.csv                    - (invoice_no, invoice_date) pairs
//
// NULL REPRESENTATION:
//   nil fields serialize as empty cells, matching how the raw export
//   represents missing values.
//
// =============================================================================

package csvwriter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hwilkers/retail-marts/internal/types"
)

// Artifact file names, fixed by the output contract.
const (
	FactSalesFile         = "fact_sales_lines.csv"
	FactReturnsFile       = "fact_returns_lines.csv"
	FactSalesCustomerFile = "fact_sales_lines_with_customer.csv"
	DimProductsFile       = "dim_products.csv"
	DimCustomersFile      = "dim_customers.csv"
	DimInvoicesFile       = "dim_invoices.csv"
)

// =============================================================================
// MART WRITER
// =============================================================================

// WriteMart writes records to path using the shared sales/returns schema.
func WriteMart(path string, records []types.CleanRecord) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, types.MartColumns)
	for _, rec := range records {
		rows = append(rows, martRow(rec))
	}
	return writeCSV(path, rows)
}

// martRow renders one record in types.MartColumns order.
func martRow(rec types.CleanRecord) []string {
	return []string{
		rec.InvoiceNo,
		rec.StockCode,
		rec.Description,
		formatFloat(rec.Quantity),
		formatDate(rec.InvoiceDate),
		formatFloat(rec.UnitPrice),
		formatInt(rec.CustomerID),
		rec.Country,
		strconv.FormatBool(rec.IsCreditNote),
		formatFloat(rec.LineTotal),
		rec.InvoiceDateDate,
		rec.InvoiceYM,
	}
}

// =============================================================================
// DIMENSION WRITERS
// =============================================================================

// WriteProducts writes the product dimension.
func WriteProducts(path string, products []types.ProductRow) error {
	rows := [][]string{{types.ColStockCode, types.ColDescription}}
	for _, p := range products {
		rows = append(rows, []string{p.StockCode, p.Description})
	}
	return writeCSV(path, rows)
}

// WriteCustomers writes the customer dimension.
func WriteCustomers(path string, customers []types.CustomerRow) error {
	rows := [][]string{{types.ColCustomerID, types.ColCountry}}
	for _, c := range customers {
		rows = append(rows, []string{strconv.FormatInt(c.CustomerID, 10), c.Country})
	}
	return writeCSV(path, rows)
}

// WriteInvoices writes the invoice dimension. Callers pass it already
// sorted; this writer preserves order.
func WriteInvoices(path string, invoices []types.InvoiceRow) error {
	rows := [][]string{{types.ColInvoiceNo, types.ColInvoiceDate}}
	for _, inv := range invoices {
		rows = append(rows, []string{inv.InvoiceNo, inv.InvoiceDate.Format(types.InvoiceDateLayout)})
	}
	return writeCSV(path, rows)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// formatFloat renders a nullable float in plain decimal notation, shortest
// form that round-trips. nil renders as an empty cell.
func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

// formatDate renders a nullable timestamp in the mart layout; nil renders as
// an empty cell like the other nullable fields.
func formatDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(types.InvoiceDateLayout)
}
