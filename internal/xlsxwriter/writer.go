// =============================================================================
// Retail Marts - XLSX Artifact Writer
// =============================================================================
//
// Optional, feature-flagged secondary serialization of the sales mart as an
// XLSX workbook. This is a convenience copy for spreadsheet consumers; the
// CSV marts written earlier in the run remain the durable artifacts, so the
// caller downgrades any error from here to a warning.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hwilkers/retail-marts/internal/types"
)

// SalesFile is the workbook file name for the secondary sales artifact.
const SalesFile = "fact_sales_lines.xlsx"

const sheetName = "fact_sales_lines"

// WriteSales writes the sales mart to an XLSX workbook at path, one sheet,
// headers in row 1, using the same column order as the CSV marts. Numeric
// fields are written as numbers so spreadsheet consumers get typed cells.
func WriteSales(path string, records []types.CleanRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet %q: %w", sheetName, err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	header := make([]interface{}, len(types.MartColumns))
	for i, col := range types.MartColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d cell name: %w", i+2, err)
		}
		row := salesRow(rec)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func salesRow(rec types.CleanRecord) []interface{} {
	return []interface{}{
		rec.InvoiceNo,
		rec.StockCode,
		rec.Description,
		floatCell(rec.Quantity),
		dateCell(rec.InvoiceDate),
		floatCell(rec.UnitPrice),
		intCell(rec.CustomerID),
		rec.Country,
		strconv.FormatBool(rec.IsCreditNote),
		floatCell(rec.LineTotal),
		rec.InvoiceDateDate,
		rec.InvoiceYM,
	}
}

// floatCell maps nil to an empty cell and a value to a numeric cell.
func floatCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func intCell(v *int64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func dateCell(v *time.Time) interface{} {
	if v == nil {
		return ""
	}
	return v.Format(types.InvoiceDateLayout)
}
