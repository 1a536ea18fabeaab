package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/insurancedw/internal/config"
	"github.com/gyeh/insurancedw/internal/exitcode"
	"github.com/gyeh/insurancedw/internal/logging"
	"github.com/gyeh/insurancedw/internal/tabio"
	"github.com/gyeh/insurancedw/internal/warehouse"
)

var cfg config.Config
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "insdw",
	Short: "Insurance charges BI pipeline: prepare → warehouse → cube",
	Long: "Cleans the raw medical-insurance dataset, loads it into a Postgres star schema, " +
		"and derives the OLAP cube consumed by the reporting layer.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("INSURANCE_DB_URL"), "Postgres connection string (or set INSURANCE_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfgFile, "config", "", "Optional YAML config file with path and policy defaults")
}

// setupRun initializes logging and merges the optional config file.
// It exits on a bad config file rather than returning, matching the
// usage-error handling of the individual commands.
func setupRun() zerolog.Logger {
	log := logging.Setup(cfg.LogFormat)
	if cfgFile != "" {
		if err := cfg.LoadFromFile(cfgFile); err != nil {
			log.Error().Err(err).Msg("config file load failed")
			os.Exit(exitcode.UsageError)
		}
	}
	return log
}

// exitFor maps a pipeline failure to its process exit code.
func exitFor(err error) int {
	var schemaErr *tabio.SchemaError
	var rowErr *tabio.RowError
	var integrityErr *warehouse.IntegrityError
	switch {
	case errors.As(err, &integrityErr):
		return exitcode.IntegrityError
	case errors.As(err, &schemaErr), errors.Is(err, fs.ErrNotExist):
		return exitcode.InputError
	case errors.As(err, &rowErr):
		return exitcode.ValidationError
	}
	return exitcode.WriteError
}
