package cleaner

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwilkers/retail-marts/internal/loader"
	"github.com/hwilkers/retail-marts/internal/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rawTable(rows ...types.RawRecord) *loader.Table {
	return &loader.Table{
		Headers: []string{
			srcInvoiceNo, srcStockCode, srcDescription, srcQuantity,
			srcInvoiceDate, srcUnitPrice, srcCustomerID, srcCountry,
		},
		Rows: rows,
	}
}

func rawRow(overrides types.RawRecord) types.RawRecord {
	row := types.RawRecord{
		srcInvoiceNo:   "536365",
		srcStockCode:   "85123A",
		srcDescription: "WHITE HANGING HEART T-LIGHT HOLDER",
		srcQuantity:    "6",
		srcInvoiceDate: "12/1/2010 8:26",
		srcUnitPrice:   "2.55",
		srcCustomerID:  "17850",
		srcCountry:     "United Kingdom",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func TestNormalizeTypedFields(t *testing.T) {
	records := Normalize(rawTable(rawRow(nil)), discardLogger())
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "536365", rec.InvoiceNo)
	assert.Equal(t, "85123A", rec.StockCode)
	assert.Equal(t, "WHITE HANGING HEART T-LIGHT HOLDER", rec.Description)
	require.NotNil(t, rec.Quantity)
	assert.Equal(t, 6.0, *rec.Quantity)
	require.NotNil(t, rec.UnitPrice)
	assert.Equal(t, 2.55, *rec.UnitPrice)
	require.NotNil(t, rec.CustomerID)
	assert.Equal(t, int64(17850), *rec.CustomerID)
	require.NotNil(t, rec.InvoiceDate)
	assert.Equal(t, time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC), *rec.InvoiceDate)
}

func TestNormalizeTrimsTextFields(t *testing.T) {
	records := Normalize(rawTable(rawRow(types.RawRecord{
		srcDescription: "  WHITE HANGING HEART  ",
		srcStockCode:   " 85123A ",
		srcCountry:     " United Kingdom ",
	})), discardLogger())
	require.Len(t, records, 1)

	assert.Equal(t, "WHITE HANGING HEART", records[0].Description)
	assert.Equal(t, "85123A", records[0].StockCode)
	assert.Equal(t, "United Kingdom", records[0].Country)
}

func TestNormalizeInternalWhitespaceAndCaseUntouched(t *testing.T) {
	records := Normalize(rawTable(rawRow(types.RawRecord{
		srcDescription: "White  Hanging  heart",
	})), discardLogger())
	require.Len(t, records, 1)
	assert.Equal(t, "White  Hanging  heart", records[0].Description)
}

func TestNormalizeDropsRowsMissingRequiredFields(t *testing.T) {
	records := Normalize(rawTable(
		rawRow(types.RawRecord{srcInvoiceDate: "not a date"}),
		rawRow(types.RawRecord{srcStockCode: "   "}),
		rawRow(types.RawRecord{srcDescription: ""}),
		rawRow(nil),
	), discardLogger())

	require.Len(t, records, 1)
	// Post-normalization invariant: the survivors carry all three fields.
	for _, rec := range records {
		assert.NotNil(t, rec.InvoiceDate)
		assert.NotEmpty(t, rec.StockCode)
		assert.NotEmpty(t, rec.Description)
	}
}

func TestNormalizeKeepsRowsWithNullNumericFields(t *testing.T) {
	records := Normalize(rawTable(
		rawRow(types.RawRecord{srcQuantity: "six"}),
		rawRow(types.RawRecord{srcUnitPrice: ""}),
		rawRow(types.RawRecord{srcCustomerID: ""}),
	), discardLogger())

	require.Len(t, records, 3)
	assert.Nil(t, records[0].Quantity)
	assert.Nil(t, records[1].UnitPrice)
	assert.Nil(t, records[2].CustomerID)
}

func TestNormalizeCustomerIDFloatForm(t *testing.T) {
	records := Normalize(rawTable(
		rawRow(types.RawRecord{srcCustomerID: "17850.0"}),
		rawRow(types.RawRecord{srcCustomerID: "17850.5"}),
	), discardLogger())

	require.Len(t, records, 2)
	require.NotNil(t, records[0].CustomerID)
	assert.Equal(t, int64(17850), *records[0].CustomerID)
	assert.Nil(t, records[1].CustomerID, "fractional ids do not coerce to integers")
}

func TestNormalizeAcceptsISODates(t *testing.T) {
	records := Normalize(rawTable(
		rawRow(types.RawRecord{srcInvoiceDate: "2010-12-01 08:26:00"}),
	), discardLogger())
	require.Len(t, records, 1)
	assert.Equal(t, time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC), *records[0].InvoiceDate)
}
