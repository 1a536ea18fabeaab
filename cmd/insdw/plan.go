package main

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gyeh/insurancedw/internal/exitcode"
	"github.com/gyeh/insurancedw/internal/model"
	"github.com/gyeh/insurancedw/internal/normalize"
	"github.com/gyeh/insurancedw/internal/tabio"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and stats of a raw file (no writes)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&cfg.RawPath, "raw", "", "Path to raw insurance CSV (required)")
	_ = planCmd.MarkFlagRequired("raw")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := setupRun()

	if cfg.RawPath == "" {
		log.Error().Msg("--raw is required")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.RawPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.InputError)
	}
	stat, err := os.Stat(cfg.RawPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to stat file")
		os.Exit(exitcode.InputError)
	}

	rows, err := tabio.ReadRaw(cfg.RawPath)
	if err != nil {
		log.Error().Err(err).Msg("raw file validation failed")
		os.Exit(exitcode.InputError)
	}

	badByColumn := make(map[string]int64)
	regions := make(map[string]int64)
	var missing int64
	chargesMin, chargesMax := math.Inf(1), math.Inf(-1)

	for i := range rows {
		row := &rows[i]
		blank := false
		for _, field := range []string{row.Age, row.Sex, row.BMI, row.Smoker, row.Region, row.Charges} {
			if field == "" {
				blank = true
			}
		}
		if blank {
			missing++
			continue
		}
		if _, err := normalize.ParseI64(row.Age); err != nil {
			badByColumn["age"]++
		}
		if _, err := normalize.ParseF64(row.BMI); err != nil {
			badByColumn["bmi"]++
		}
		if row.Children != "" {
			if _, err := normalize.ParseI64(row.Children); err != nil {
				badByColumn["children"]++
			}
		}
		if _, err := normalize.ParseSmoker(row.Smoker); err != nil {
			badByColumn["smoker"]++
		}
		if charges, err := normalize.ParseF64(row.Charges); err != nil {
			badByColumn["charges"]++
		} else {
			chargesMin = math.Min(chargesMin, charges)
			chargesMax = math.Max(chargesMax, charges)
		}
		regions[normalize.Category(row.Region)]++
	}

	fmt.Println("=== insdw plan ===")
	fmt.Printf("File:       %s\n", cfg.RawPath)
	fmt.Printf("SHA-256:    %s\n", sha)
	fmt.Printf("Size:       %d bytes\n", stat.Size())
	fmt.Printf("Total rows: %d\n", len(rows))
	fmt.Printf("Missing:    %d rows with blank required fields\n", missing)

	if len(badByColumn) > 0 {
		fmt.Println("\nUnparseable values by column:")
		for _, col := range model.RawColumns {
			if n := badByColumn[col]; n > 0 {
				fmt.Printf("  %-10s %d\n", col, n)
			}
		}
	}

	fmt.Println("\nRegion distribution:")
	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-12s %6d\n", name, regions[name])
	}

	if !math.IsInf(chargesMin, 1) {
		fmt.Printf("\nCharges range: %.2f .. %.2f\n", chargesMin, chargesMax)
	}
	fmt.Println("Schema validation: OK")

	return nil
}
