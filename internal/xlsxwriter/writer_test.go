package xlsxwriter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwilkers/retail-marts/internal/loader"
	"github.com/hwilkers/retail-marts/internal/types"
)

func ptr[T any](v T) *T { return &v }

func TestWriteSalesRoundTrip(t *testing.T) {
	rec := types.CleanRecord{
		InvoiceNo:       "536365",
		StockCode:       "85123A",
		Description:     "WHITE HANGING HEART T-LIGHT HOLDER",
		Quantity:        ptr(6.0),
		InvoiceDate:     ptr(time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)),
		UnitPrice:       ptr(2.55),
		CustomerID:      ptr(int64(17850)),
		Country:         "United Kingdom",
		LineTotal:       ptr(15.3),
		InvoiceDateDate: "2010-12-01",
		InvoiceYM:       "2010-12",
	}

	path := filepath.Join(t.TempDir(), SalesFile)
	require.NoError(t, WriteSales(path, []types.CleanRecord{rec}))

	// The loader reads XLSX too, so the workbook round-trips through the
	// same table shape as the CSV marts.
	table, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.MartColumns, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "536365", table.Rows[0][types.ColInvoiceNo])
	assert.Equal(t, "United Kingdom", table.Rows[0][types.ColCountry])
}

func TestWriteSalesNullFieldsRenderEmpty(t *testing.T) {
	rec := types.CleanRecord{
		InvoiceNo: "536365",
		StockCode: "85123A",
		Country:   "United Kingdom",
	}

	path := filepath.Join(t.TempDir(), SalesFile)
	require.NoError(t, WriteSales(path, []types.CleanRecord{rec}))

	table, err := loader.Load(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Rows[0][types.ColInvoiceDate])
	assert.Equal(t, "", table.Rows[0][types.ColQuantity])
	assert.Equal(t, "", table.Rows[0][types.ColCustomerID])
}

func TestWriteSalesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), SalesFile)
	require.NoError(t, WriteSales(path, nil))

	table, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.MartColumns, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestWriteSalesBadPathFails(t *testing.T) {
	err := WriteSales(filepath.Join(t.TempDir(), "no", "such", "dir", SalesFile), nil)
	assert.Error(t, err)
}
