// =============================================================================
// Retail Marts - Raw Table Loader
// =============================================================================
//
// This module reads a tabular source file into an in-memory header-keyed
// table. It is the leaf of the pipeline: it knows nothing about the retail
// schema, it only turns a file into rows.
//
// SUPPORTED FORMATS:
//   - CSV  (.csv, anything else defaults to CSV)
//   - XLSX (.xlsx, .xlsm): first sheet, first row as headers
//
// The loader is also used by the validation engine to read the persisted
// sales/returns marts, so it must not alter cell values in any way: no
// trimming, no case folding. Whitespace defects have to survive loading so
// the trim checks can see them.
//
// =============================================================================

package loader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hwilkers/retail-marts/internal/types"
)

// ErrMissingInput marks the fatal case of a source file that does not exist.
// Callers match it with errors.Is.
var ErrMissingInput = errors.New("input file not found")

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Table is a loaded tabular file.
type Table struct {
	// Headers contains the column headers in file order.
	Headers []string

	// Rows contains the data rows as maps of header -> raw cell value.
	Rows []types.RawRecord

	// SourceFile is the path the table was loaded from.
	SourceFile string
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the file at path into a Table, dispatching on the file
// extension. A missing file yields ErrMissingInput.
func Load(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	default:
		return readCSV(path)
	}
}

// readCSV loads a CSV file. The reader is deliberately permissive: the
// Kaggle retail export has stray quotes and ragged rows, and rejecting the
// whole file over one malformed line would defeat the row-level recovery
// in the cleaner.
func readCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("csv file %s is empty", path)
	}

	return buildTable(path, allRows), nil
}

// readXLSX loads the first sheet of an XLSX workbook, treating the first
// row as headers.
func readXLSX(path string) (*Table, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx %s: %w", path, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file %s has no sheets", path)
	}

	allRows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx sheet %q: %w", sheets[0], err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("xlsx sheet %q is empty", sheets[0])
	}

	return buildTable(path, allRows), nil
}

// buildTable converts raw rows into a header-keyed Table. The first row is
// the header row; fully empty rows are skipped; short rows are padded with
// empty values so every record carries every column.
func buildTable(path string, allRows [][]string) *Table {
	headers := make([]string, len(allRows[0]))
	for i, h := range allRows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]types.RawRecord, 0, len(allRows)-1)
	for _, row := range allRows[1:] {
		if isRowEmpty(row) {
			continue
		}

		record := make(types.RawRecord, len(headers))
		for i, header := range headers {
			if i < len(row) {
				record[header] = row[i]
			} else {
				record[header] = ""
			}
		}
		rows = append(rows, record)
	}

	return &Table{
		Headers:    headers,
		Rows:       rows,
		SourceFile: path,
	}
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
