package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/gyeh/insurancedw/internal/cube"
	"github.com/gyeh/insurancedw/internal/db"
	"github.com/gyeh/insurancedw/internal/exitcode"
)

var cubeCmd = &cobra.Command{
	Use:   "cube",
	Short: "Aggregate charges into the OLAP cube file",
	RunE:  runCube,
}

func init() {
	f := cubeCmd.Flags()
	f.StringVar(&cfg.PreparedPath, "prepared", "", "Path to the prepared dataset file")
	f.StringVar(&cfg.CubePath, "cube", "", "Path for the cube CSV output (required)")
	f.BoolVar(&cfg.FromWarehouse, "from-dw", false, "Aggregate in the warehouse via SQL instead of reading the prepared file")
	rootCmd.AddCommand(cubeCmd)
}

func runCube(cmd *cobra.Command, args []string) error {
	log := setupRun()
	ctx := context.Background()

	if err := cfg.ValidateCube(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	var pool *pgxpool.Pool
	if cfg.FromWarehouse {
		var err error
		pool, err = db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.DBConnError)
		}
		defer pool.Close()
	}

	summary, err := cube.Run(ctx, pool, log, &cfg)
	if err != nil {
		if pe, ok := err.(*cube.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("cube build failed")
		} else {
			log.Error().Err(err).Msg("cube build failed")
		}
		os.Exit(exitFor(err))
	}

	fmt.Printf("Cube complete: %d cells covering %d records (%.1fs)\n",
		summary.Cells, summary.TotalCount, summary.DurationTotal.Seconds())
	return nil
}
