// =============================================================================
// Retail Marts - Cleaning Pipeline Orchestrator
// =============================================================================
//
// Runs the full cleaning pipeline over one raw export:
//
//   load -> normalize -> derive -> split -> write marts
//                                        -> (optional) dimensions
//                                        -> (optional) sales XLSX copy
//
// Execution is strictly sequential; each stage consumes the complete output
// of the previous one. Only a missing raw input (or a failed primary write)
// aborts the run. The XLSX copy is best-effort: its failure is recorded as
// a warning on the Result and the run still succeeds, because the CSV marts
// are already durable at that point.
//
// =============================================================================

package cleaner

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/hwilkers/retail-marts/internal/config"
	"github.com/hwilkers/retail-marts/internal/csvwriter"
	"github.com/hwilkers/retail-marts/internal/dimensions"
	"github.com/hwilkers/retail-marts/internal/loader"
	"github.com/hwilkers/retail-marts/internal/types"
	"github.com/hwilkers/retail-marts/internal/xlsxwriter"
	"github.com/hwilkers/retail-marts/pkg/utils"
)

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline cleans one raw export into the sales/returns marts.
type Pipeline struct {
	cfg *config.Config
	log *slog.Logger
}

// New creates a Pipeline for the given configuration. The logger is the
// injected observability collaborator for every stage.
func New(cfg *config.Config, log *slog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// Result summarizes one pipeline run.
type Result struct {
	// RunID identifies this run in logs and summaries.
	RunID string

	// Row counts at each stage boundary.
	RawRows    int
	CleanRows  int
	SalesRows  int
	ReturnRows int

	// Artifacts lists every file written, in write order.
	Artifacts []string

	// Warnings carries non-fatal failures, currently only a failed
	// secondary XLSX write.
	Warnings []string

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// =============================================================================
// EXECUTION
// =============================================================================

// Run executes the pipeline. The returned error is fatal (missing input or
// a failed primary artifact write); recoverable problems end up in
// Result.Warnings instead.
func (p *Pipeline) Run() (*Result, error) {
	start := time.Now()
	res := &Result{RunID: utils.NewRunID()}

	// Stage 1: load the raw export.
	table, err := loader.Load(p.cfg.RawInput)
	if err != nil {
		return nil, err
	}
	res.RawRows = len(table.Rows)
	p.log.Info("loaded raw export", "run_id", res.RunID, "path", table.SourceFile, "rows", res.RawRows)

	// Stage 2: normalize and derive. Derive is a pure per-row function, so
	// this loop stays order-preserving by construction.
	records := Normalize(table, p.log)
	for i := range records {
		records[i] = Derive(records[i])
	}
	res.CleanRows = len(records)

	// Stage 3: split into sales and returns.
	sales, returns := Split(records)
	res.SalesRows = len(sales)
	res.ReturnRows = len(returns)
	p.log.Info("split marts", "sales", res.SalesRows, "returns", res.ReturnRows)

	// Stage 4: persist the primary marts.
	if err := utils.EnsureDir(p.cfg.OutputDir); err != nil {
		return nil, err
	}
	if err := p.writeMart(res, csvwriter.FactSalesFile, sales); err != nil {
		return nil, err
	}
	if err := p.writeMart(res, csvwriter.FactReturnsFile, returns); err != nil {
		return nil, err
	}

	// Stage 5: optional dimensional projections.
	if p.cfg.BuildDims {
		if err := p.writeDimensions(res, sales); err != nil {
			return nil, err
		}
	}

	// Stage 6: optional XLSX copy of the sales mart; never fatal.
	if p.cfg.WriteXLSX {
		path := filepath.Join(p.cfg.OutputDir, xlsxwriter.SalesFile)
		if err := xlsxwriter.WriteSales(path, sales); err != nil {
			warning := fmt.Sprintf("xlsx not written: %v", err)
			res.Warnings = append(res.Warnings, warning)
			p.log.Warn("secondary xlsx write failed", "path", path, "error", err)
		} else {
			res.Artifacts = append(res.Artifacts, path)
			p.log.Info("wrote artifact", "path", path)
		}
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

func (p *Pipeline) writeMart(res *Result, name string, records []types.CleanRecord) error {
	path := filepath.Join(p.cfg.OutputDir, name)
	if err := csvwriter.WriteMart(path, records); err != nil {
		return err
	}
	res.Artifacts = append(res.Artifacts, path)
	p.log.Info("wrote artifact", "path", path, "rows", len(records))
	return nil
}

func (p *Pipeline) writeDimensions(res *Result, sales []types.CleanRecord) error {
	dims := dimensions.Build(sales)

	if err := p.writeMart(res, csvwriter.FactSalesCustomerFile, dims.FactWithCustomer); err != nil {
		return err
	}

	path := filepath.Join(p.cfg.OutputDir, csvwriter.DimProductsFile)
	if err := csvwriter.WriteProducts(path, dims.Products); err != nil {
		return err
	}
	res.Artifacts = append(res.Artifacts, path)

	path = filepath.Join(p.cfg.OutputDir, csvwriter.DimCustomersFile)
	if err := csvwriter.WriteCustomers(path, dims.Customers); err != nil {
		return err
	}
	res.Artifacts = append(res.Artifacts, path)

	path = filepath.Join(p.cfg.OutputDir, csvwriter.DimInvoicesFile)
	if err := csvwriter.WriteInvoices(path, dims.Invoices); err != nil {
		return err
	}
	res.Artifacts = append(res.Artifacts, path)

	p.log.Info("wrote dimensions",
		"products", len(dims.Products),
		"customers", len(dims.Customers),
		"invoices", len(dims.Invoices),
		"fact_with_customer", len(dims.FactWithCustomer),
	)
	return nil
}
