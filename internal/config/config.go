package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for an insdw run. Every stage
// receives it explicitly; there is no shared global state.
type Config struct {
	DSN          string
	RawPath      string
	PreparedPath string
	CubePath     string
	Format       string // prepared output format: "csv" or "parquet"
	LogFormat    string // "text" or "json"

	// SkipInvalid switches the prepare stage from strict mode (a row
	// that fails type coercion aborts the run) to skip mode (the row
	// is dropped with a logged warning).
	SkipInvalid bool

	// DropOutliers enables the IQR filter on charges during prepare.
	DropOutliers bool

	// FromWarehouse makes the cube stage aggregate via SQL against the
	// warehouse instead of reading the prepared file.
	FromWarehouse bool
}

// yamlConfig is the on-disk YAML structure. File values act as
// defaults; flags set on the command line take precedence.
type yamlConfig struct {
	DSN          string `yaml:"dsn"`
	RawPath      string `yaml:"raw_path"`
	PreparedPath string `yaml:"prepared_path"`
	CubePath     string `yaml:"cube_path"`
	Format       string `yaml:"format"`
	SkipInvalid  bool   `yaml:"skip_invalid"`
	DropOutliers bool   `yaml:"drop_outliers"`
}

// LoadFromFile reads a YAML config file and merges its values into
// Config, filling only fields the command line left unset.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if c.DSN == "" {
		c.DSN = yc.DSN
	}
	if c.RawPath == "" {
		c.RawPath = yc.RawPath
	}
	if c.PreparedPath == "" {
		c.PreparedPath = yc.PreparedPath
	}
	if c.CubePath == "" {
		c.CubePath = yc.CubePath
	}
	if c.Format == "" {
		c.Format = yc.Format
	}
	if !c.SkipInvalid {
		c.SkipInvalid = yc.SkipInvalid
	}
	if !c.DropOutliers {
		c.DropOutliers = yc.DropOutliers
	}
	return nil
}

// ValidatePrepare checks the fields the prepare stage needs.
func (c *Config) ValidatePrepare() error {
	if c.RawPath == "" {
		return fmt.Errorf("--raw is required")
	}
	if _, err := os.Stat(c.RawPath); err != nil {
		return fmt.Errorf("raw file not accessible: %w", err)
	}
	if c.PreparedPath == "" {
		return fmt.Errorf("--prepared is required")
	}
	switch c.Format {
	case "", "csv", "parquet":
	default:
		return fmt.Errorf("unknown format %q (want csv or parquet)", c.Format)
	}
	return nil
}

// ValidateLoad checks the fields the warehouse load stage needs.
func (c *Config) ValidateLoad() error {
	if c.PreparedPath == "" {
		return fmt.Errorf("--prepared is required")
	}
	if _, err := os.Stat(c.PreparedPath); err != nil {
		return fmt.Errorf("prepared file not accessible: %w", err)
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or INSURANCE_DB_URL is required")
	}
	return nil
}

// ValidateCube checks the fields the cube stage needs.
func (c *Config) ValidateCube() error {
	if c.CubePath == "" {
		return fmt.Errorf("--cube is required")
	}
	if c.FromWarehouse {
		if c.DSN == "" {
			return fmt.Errorf("--dsn or INSURANCE_DB_URL is required with --from-dw")
		}
		return nil
	}
	if c.PreparedPath == "" {
		return fmt.Errorf("--prepared is required")
	}
	if _, err := os.Stat(c.PreparedPath); err != nil {
		return fmt.Errorf("prepared file not accessible: %w", err)
	}
	return nil
}
