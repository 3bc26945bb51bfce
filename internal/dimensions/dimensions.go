// =============================================================================
// Retail Marts - Dimension Builder
// =============================================================================
//
// Derives the optional dimensional projections from the sales mart:
//   - Products:         unique (stock_code, description) pairs
//   - Customers:        unique (customer_id, country) pairs, known customers only
//   - Invoices:         unique (invoice_no, invoice_date) pairs, sorted
//   - FactWithCustomer: the sales rows that carry a customer id
//
// Deduplication is exact value-tuple equality; first occurrence wins and
// keeps its position, matching drop-duplicates semantics. Building never
// fails: an empty sales mart yields empty projections.
//
// =============================================================================

package dimensions

import (
	"sort"
	"time"

	"github.com/hwilkers/retail-marts/internal/types"
)

// Set bundles the four projections produced from one sales mart.
type Set struct {
	Products         []types.ProductRow
	Customers        []types.CustomerRow
	Invoices         []types.InvoiceRow
	FactWithCustomer []types.CleanRecord
}

// Build computes all projections from the sales mart. The input is read
// only; every projection is freshly allocated.
func Build(sales []types.CleanRecord) *Set {
	return &Set{
		Products:         buildProducts(sales),
		Customers:        buildCustomers(sales),
		Invoices:         buildInvoices(sales),
		FactWithCustomer: buildFactWithCustomer(sales),
	}
}

func buildProducts(sales []types.CleanRecord) []types.ProductRow {
	seen := make(map[types.ProductRow]struct{}, len(sales))
	products := make([]types.ProductRow, 0)

	for _, rec := range sales {
		row := types.ProductRow{StockCode: rec.StockCode, Description: rec.Description}
		if _, ok := seen[row]; ok {
			continue
		}
		seen[row] = struct{}{}
		products = append(products, row)
	}
	return products
}

func buildCustomers(sales []types.CleanRecord) []types.CustomerRow {
	seen := make(map[types.CustomerRow]struct{})
	customers := make([]types.CustomerRow, 0)

	for _, rec := range sales {
		if rec.CustomerID == nil {
			continue
		}
		row := types.CustomerRow{CustomerID: *rec.CustomerID, Country: rec.Country}
		if _, ok := seen[row]; ok {
			continue
		}
		seen[row] = struct{}{}
		customers = append(customers, row)
	}
	return customers
}

// buildInvoices collects unique invoice pairs and sorts them ascending by
// invoice date, breaking date ties by invoice number so repeated builds are
// byte-identical.
func buildInvoices(sales []types.CleanRecord) []types.InvoiceRow {
	type key struct {
		invoiceNo string
		date      time.Time
	}
	seen := make(map[key]struct{})
	invoices := make([]types.InvoiceRow, 0)

	for _, rec := range sales {
		k := key{invoiceNo: rec.InvoiceNo, date: *rec.InvoiceDate}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		invoices = append(invoices, types.InvoiceRow{InvoiceNo: rec.InvoiceNo, InvoiceDate: *rec.InvoiceDate})
	}

	sort.Slice(invoices, func(i, j int) bool {
		if !invoices[i].InvoiceDate.Equal(invoices[j].InvoiceDate) {
			return invoices[i].InvoiceDate.Before(invoices[j].InvoiceDate)
		}
		return invoices[i].InvoiceNo < invoices[j].InvoiceNo
	})
	return invoices
}

func buildFactWithCustomer(sales []types.CleanRecord) []types.CleanRecord {
	fact := make([]types.CleanRecord, 0, len(sales))
	for _, rec := range sales {
		if rec.CustomerID != nil {
			fact = append(fact, rec)
		}
	}
	return fact
}
