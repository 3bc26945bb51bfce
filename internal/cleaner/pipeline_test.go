package cleaner

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwilkers/retail-marts/internal/config"
	"github.com/hwilkers/retail-marts/internal/csvwriter"
	"github.com/hwilkers/retail-marts/internal/loader"
	"github.com/hwilkers/retail-marts/internal/validation"
	"github.com/hwilkers/retail-marts/internal/xlsxwriter"
)

const rawFixture = `InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country
536365,85123A,WHITE HANGING HEART T-LIGHT HOLDER,6,12/1/2010 8:26,2.55,17850,United Kingdom
536365,71053,WHITE METAL LANTERN,6,12/1/2010 8:26,3.39,17850,United Kingdom
536370,85123A,WHITE HANGING HEART T-LIGHT HOLDER,12,12/3/2010 10:00,2.55,12583,France
C536379,D,Discount,-1,12/1/2010 9:41,27.5,14527,United Kingdom
536368,22960,JAM MAKING SET WITH JARS,-2,12/1/2010 10:03,4.25,13047,United Kingdom
536369,21756,,3,12/1/2010 10:06,5.95,13047,United Kingdom
536371,22086,PAPER CHAIN KIT 50'S CHRISTMAS,80,12/3/2010 11:27,2.55,,United Kingdom
`

func writeRawFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "OnlineRetail.csv")
	require.NoError(t, os.WriteFile(path, []byte(rawFixture), 0644))
	return path
}

func testConfig(t *testing.T, raw string) *config.Config {
	cfg := config.Default()
	cfg.RawInput = raw
	cfg.OutputDir = filepath.Join(t.TempDir(), "clean")
	return cfg
}

func TestPipelineRun(t *testing.T) {
	cfg := testConfig(t, writeRawFixture(t))
	result, err := New(cfg, discardLogger()).Run()
	require.NoError(t, err)

	assert.Equal(t, 7, result.RawRows)
	assert.Equal(t, 6, result.CleanRows, "the row without a description is dropped")
	assert.Equal(t, 4, result.SalesRows)
	assert.Equal(t, 2, result.ReturnRows)
	assert.Equal(t, result.CleanRows, result.SalesRows+result.ReturnRows)
	assert.Empty(t, result.Warnings)

	for _, name := range []string{
		csvwriter.FactSalesFile,
		csvwriter.FactReturnsFile,
		csvwriter.FactSalesCustomerFile,
		csvwriter.DimProductsFile,
		csvwriter.DimCustomersFile,
		csvwriter.DimInvoicesFile,
		xlsxwriter.SalesFile,
	} {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, name))
	}
}

func TestPipelineOptionalStagesDisabled(t *testing.T) {
	cfg := testConfig(t, writeRawFixture(t))
	cfg.BuildDims = false
	cfg.WriteXLSX = false

	result, err := New(cfg, discardLogger()).Run()
	require.NoError(t, err)
	assert.Len(t, result.Artifacts, 2, "only the two marts are written")

	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, csvwriter.DimProductsFile))
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, xlsxwriter.SalesFile))
}

// A failed workbook write must downgrade to a warning: the CSV marts are
// already durable, so the run still succeeds.
func TestPipelineXLSXFailureIsWarning(t *testing.T) {
	cfg := testConfig(t, writeRawFixture(t))
	cfg.BuildDims = false

	// Occupy the workbook path with a directory so the save fails.
	xlsxPath := filepath.Join(cfg.OutputDir, xlsxwriter.SalesFile)
	require.NoError(t, os.MkdirAll(xlsxPath, 0755))

	result, err := New(cfg, discardLogger()).Run()
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "xlsx not written")
	assert.NotContains(t, result.Artifacts, xlsxPath)

	assert.FileExists(t, filepath.Join(cfg.OutputDir, csvwriter.FactSalesFile))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, csvwriter.FactReturnsFile))
}

func TestPipelineMissingRawInputIsFatal(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "nope.csv"))
	_, err := New(cfg, discardLogger()).Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrMissingInput)
	assert.Contains(t, err.Error(), "nope.csv")

	// Fatal input errors leave no partial output behind.
	entries, readErr := os.ReadDir(cfg.OutputDir)
	if readErr == nil {
		assert.Empty(t, entries)
	}
}

// The written marts must satisfy the full validation battery: this is the
// contract between the two halves of the system.
func TestPipelineOutputPassesValidation(t *testing.T) {
	cfg := testConfig(t, writeRawFixture(t))
	_, err := New(cfg, discardLogger()).Run()
	require.NoError(t, err)

	checks, err := validation.New(discardLogger()).Run(
		filepath.Join(cfg.OutputDir, csvwriter.FactSalesFile),
		filepath.Join(cfg.OutputDir, csvwriter.FactReturnsFile),
	)
	require.NoError(t, err)

	for _, check := range checks {
		assert.True(t, check.OK, "check %s failed: %s", check.Name, check.Detail)
	}
}

func TestPipelineFactColumnsRoundTrip(t *testing.T) {
	cfg := testConfig(t, writeRawFixture(t))
	_, err := New(cfg, discardLogger()).Run()
	require.NoError(t, err)

	table, err := loader.Load(filepath.Join(cfg.OutputDir, csvwriter.FactSalesFile))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"invoice_no", "stock_code", "description", "quantity",
		"invoice_date", "unit_price", "customer_id", "country",
		"is_credit_note", "line_total", "invoice_date_date", "invoice_ym",
	}, table.Headers)

	require.NotEmpty(t, table.Rows)
	first := table.Rows[0]
	assert.Equal(t, "536365", first["invoice_no"])
	lineTotal, err := strconv.ParseFloat(first["line_total"], 64)
	require.NoError(t, err)
	assert.InDelta(t, 15.3, lineTotal, 1e-9)
	assert.Equal(t, "false", first["is_credit_note"])
	assert.Equal(t, "2010-12-01 08:26:00", first["invoice_date"])
	assert.Equal(t, "2010-12", first["invoice_ym"])
}
