// =============================================================================
// Retail Marts - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file. The
// config only gates peripheral concerns: file locations and the optional
// output stages. None of the cleaning or validation semantics live here.
//
// PRECEDENCE:
//   defaults < config file < command-line flags
//
// The defaults mirror the conventional project layout: the raw Kaggle
// export under data/raw and cleaned marts under data/clean.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default file locations.
const (
	DefaultRawInput  = "data/raw/OnlineRetail.csv"
	DefaultOutputDir = "data/clean"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// RawInput is the path to the raw retail export (CSV or XLSX).
	RawInput string `yaml:"raw_input"`

	// OutputDir is the directory where cleaned marts are written.
	OutputDir string `yaml:"output_dir"`

	// WriteXLSX gates the secondary XLSX serialization of the sales mart.
	// A failed XLSX write is a warning, never an error: the primary CSV
	// marts are already on disk by the time it runs.
	WriteXLSX bool `yaml:"write_xlsx"`

	// BuildDims gates the dimensional projections (products, customers,
	// invoices) and the known-customer fact subset.
	BuildDims bool `yaml:"build_dims"`

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no config file is present.
// Both optional stages are on by default, matching the original workflow.
func Default() *Config {
	return &Config{
		RawInput:  DefaultRawInput,
		OutputDir: DefaultOutputDir,
		WriteXLSX: true,
		BuildDims: true,
		LogLevel:  "info",
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file at path, layering it over the defaults.
// A missing file is not an error, since the defaults (and any flag
// overrides) are enough to run; an unreadable or malformed file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.RawInput == "" {
		return fmt.Errorf("raw_input must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
