package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/insurancedw/internal/exitcode"
	"github.com/gyeh/insurancedw/internal/prepare"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Clean and enrich the raw insurance dataset",
	RunE:  runPrepare,
}

func init() {
	f := prepareCmd.Flags()
	f.StringVar(&cfg.RawPath, "raw", "", "Path to raw insurance CSV (required)")
	f.StringVar(&cfg.PreparedPath, "prepared", "", "Path for the prepared output file (required)")
	f.StringVar(&cfg.Format, "format", "", "Output format: csv or parquet (default: inferred from extension)")
	f.BoolVar(&cfg.SkipInvalid, "skip-invalid", false, "Drop rows that fail type coercion instead of aborting")
	f.BoolVar(&cfg.DropOutliers, "drop-outliers", false, "Remove extreme charge outliers (IQR filter)")
	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, args []string) error {
	log := setupRun()

	if err := cfg.ValidatePrepare(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	summary, err := prepare.Run(log, &cfg)
	if err != nil {
		if pe, ok := err.(*prepare.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("prepare failed")
		} else {
			log.Error().Err(err).Msg("prepare failed")
		}
		os.Exit(exitFor(err))
	}

	fmt.Printf("Prepare complete: %d rows read, %d rows written (%.1fs)\n",
		summary.RowsRead, summary.RowsWritten, summary.DurationTotal.Seconds())
	return nil
}
