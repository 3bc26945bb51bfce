package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunIDUnique(t *testing.T) {
	assert.NotEqual(t, NewRunID(), NewRunID())
}

func TestReportFileName(t *testing.T) {
	assert.Equal(t, "validation_abc.json", ReportFileName("validation", "abc"))
}

func TestWriteJSONReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	payload := map[string]int{"passed": 10}

	path, err := WriteJSONReport(dir, "validation_run.json", payload)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "validation_run.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, payload, decoded)
}
