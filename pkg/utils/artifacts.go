// =============================================================================
// Retail Marts - Artifact Utilities
// =============================================================================
//
// Shared helpers for managing output artifacts:
//   - Directory management
//   - Run identifiers for report naming
//   - JSON report writing
//
// =============================================================================

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EnsureDir creates dir (and any parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// NewRunID returns a fresh identifier for one pipeline or validation run.
// It is stamped into report file names and summary output so repeated runs
// over the same artifacts stay distinguishable.
func NewRunID() string {
	return uuid.NewString()
}

// ReportFileName builds a report file name like "validation_<runID>.json".
func ReportFileName(prefix, runID string) string {
	return fmt.Sprintf("%s_%s.json", prefix, runID)
}

// WriteJSONReport marshals v with indentation and writes it to dir/name,
// creating dir if needed.
func WriteJSONReport(dir, name string, v interface{}) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	return path, nil
}
