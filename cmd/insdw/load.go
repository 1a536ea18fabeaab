package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/insurancedw/internal/db"
	"github.com/gyeh/insurancedw/internal/exitcode"
	"github.com/gyeh/insurancedw/internal/warehouse"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the prepared dataset into the warehouse star schema",
	RunE:  runLoad,
}

func init() {
	f := loadCmd.Flags()
	f.StringVar(&cfg.PreparedPath, "prepared", "", "Path to the prepared dataset file (required)")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := setupRun()
	ctx := context.Background()

	if err := cfg.ValidateLoad(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := warehouse.Run(ctx, pool, log, &cfg)
	if err != nil {
		if pe, ok := err.(*warehouse.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("warehouse load failed")
		} else {
			log.Error().Err(err).Msg("warehouse load failed")
		}
		os.Exit(exitFor(err))
	}

	fmt.Printf("Load complete: %d fact rows, %d/%d/%d dimension rows (%.1fs)\n",
		summary.FactRows, summary.RegionRows, summary.RiskRows, summary.AgeRows,
		summary.DurationTotal.Seconds())
	return nil
}
