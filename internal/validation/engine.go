// =============================================================================
// Retail Marts - Validation Engine
// =============================================================================
//
// Stateless validation of the persisted sales/returns marts. The engine
// never re-runs the cleaning pipeline: it reads the two CSV artifacts from
// disk, recomputes every expectation directly from that data, and compares.
// That makes validation an independent step: it only needs the two files
// and can run again at any point.
//
// FAILURE ISOLATION:
//   Each rule runs inside its own recovery boundary. A rule that panics is
//   recorded as a failed check with the failure message in its detail; the
//   remaining rules still run. Only a missing input file aborts the engine.
//
// OUTPUT:
//   An ordered slice of CheckResult, one per rule, in the fixed rule order.
//   The engine performs no mutation of its inputs, so running it twice over
//   unchanged artifacts yields identical results.
//
// =============================================================================

package validation

import (
	"fmt"
	"log/slog"

	"github.com/hwilkers/retail-marts/internal/loader"
	"github.com/hwilkers/retail-marts/internal/types"
)

// Engine validates a pair of persisted mart artifacts.
type Engine struct {
	log *slog.Logger
}

// New creates a validation Engine.
func New(log *slog.Logger) *Engine {
	return &Engine{log: log}
}

// artifacts is the loaded input the rules operate on. combined holds the
// sales rows followed by the returns rows, mirroring a concatenation of the
// two marts; rules that only concern sales read a.sales directly.
type artifacts struct {
	sales    *loader.Table
	returns  *loader.Table
	combined []types.RawRecord
}

// Run loads both artifacts and executes the full rule battery in order.
// A missing artifact is the only fatal error; see loader.ErrMissingInput.
func (e *Engine) Run(salesPath, returnsPath string) ([]types.CheckResult, error) {
	sales, err := loader.Load(salesPath)
	if err != nil {
		return nil, err
	}
	returns, err := loader.Load(returnsPath)
	if err != nil {
		return nil, err
	}

	a := &artifacts{sales: sales, returns: returns}
	a.combined = make([]types.RawRecord, 0, len(sales.Rows)+len(returns.Rows))
	a.combined = append(a.combined, sales.Rows...)
	a.combined = append(a.combined, returns.Rows...)

	e.log.Info("validating marts",
		"sales_rows", len(sales.Rows),
		"returns_rows", len(returns.Rows),
	)

	results := make([]types.CheckResult, 0, len(rules))
	for _, r := range rules {
		res := runRule(r, a)
		if !res.OK {
			e.log.Warn("check failed", "check", res.Name, "detail", res.Detail)
		}
		results = append(results, res)
	}
	return results, nil
}

// runRule executes one rule inside a recovery boundary, converting a panic
// into a failed check so one broken rule never masks the rest.
func runRule(r rule, a *artifacts) (res types.CheckResult) {
	res = types.CheckResult{Name: r.name}
	defer func() {
		if p := recover(); p != nil {
			res.OK = false
			res.Detail = fmt.Sprintf("rule failed: %v", p)
		}
	}()

	res.OK, res.Detail = r.fn(a)
	return res
}
