package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/insurancedw/internal/config"
	"github.com/gyeh/insurancedw/internal/db"
	"github.com/gyeh/insurancedw/internal/model"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full warehouse load: preflight → reset → dimensions
// → facts → finalize. Everything that changes warehouse tables happens
// inside a single transaction, so a failed run leaves the previous
// warehouse contents intact.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*model.LoadSummary, error) {
	totalStart := time.Now()

	// Phase 1: preflight
	log.Info().Str("file", cfg.PreparedPath).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, cfg.PreparedPath)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	summary, err := loadInTx(ctx, pool, log, pf)
	if err != nil {
		_ = FinishLoadRun(ctx, pool, pf.LoadRunID, "failed", 0)
		return nil, err
	}

	// Phase 5: finalize audit row
	if err := FinishLoadRun(ctx, pool, pf.LoadRunID, "loaded", summary.FactRows); err != nil {
		return nil, &PipelineError{Phase: "finalize", Err: err}
	}

	summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Int64("fact_rows", summary.FactRows).
		Int64("region_rows", summary.RegionRows).
		Int64("risk_rows", summary.RiskRows).
		Int64("age_rows", summary.AgeRows).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("warehouse load complete")

	return summary, nil
}

func loadInTx(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult) (*model.LoadSummary, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, &PipelineError{Phase: "reset", Err: err}
	}
	defer tx.Rollback(ctx)

	// Phase 2: full-refresh reset. RESTART IDENTITY keeps fact_key
	// assignment deterministic across runs.
	log.Info().Msg("truncating warehouse tables")
	_, err = tx.Exec(ctx,
		`TRUNCATE dw.fact_insurance_charges, dw.dim_region, dw.dim_risk, dw.dim_age
		 RESTART IDENTITY CASCADE`)
	if err != nil {
		return nil, &PipelineError{Phase: "reset", Err: err}
	}

	// Phase 3: dimensions, first-seen key order
	dims := BuildDims(pf.Records)
	if err := insertDims(ctx, tx, dims); err != nil {
		return nil, &PipelineError{Phase: "dimensions", Err: err}
	}
	log.Info().
		Int("regions", len(dims.Regions)).
		Int("risks", len(dims.Risks)).
		Int("age_groups", len(dims.AgeGroups)).
		Msg("dimensions inserted")

	// Phase 4: facts via COPY
	factRows, err := dims.FactRows(pf.Records)
	if err != nil {
		return nil, &PipelineError{Phase: "facts", Err: err}
	}
	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"dw", "fact_insurance_charges"},
		db.FactColumns(),
		db.NewFactSource(factRows),
	)
	if err != nil {
		return nil, &PipelineError{Phase: "facts", Err: err}
	}
	if copied != int64(len(pf.Records)) {
		return nil, &PipelineError{
			Phase: "facts",
			Err:   fmt.Errorf("fact count %d does not match prepared count %d", copied, len(pf.Records)),
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &PipelineError{Phase: "facts", Err: err}
	}

	return &model.LoadSummary{
		PreparedPath: pf.FilePath,
		FileSHA256:   pf.FileSHA256,
		LoadRunID:    pf.LoadRunID.String(),
		RowsRead:     int64(len(pf.Records)),
		RegionRows:   int64(len(dims.Regions)),
		RiskRows:     int64(len(dims.Risks)),
		AgeRows:      int64(len(dims.AgeGroups)),
		FactRows:     copied,
	}, nil
}

func insertDims(ctx context.Context, tx pgx.Tx, dims *Dims) error {
	batch := &pgx.Batch{}
	for i, region := range dims.Regions {
		batch.Queue(
			"INSERT INTO dw.dim_region (region_key, region) VALUES ($1, $2)",
			int64(i+1), region)
	}
	for i, risk := range dims.Risks {
		batch.Queue(
			"INSERT INTO dw.dim_risk (risk_key, smoker_flag, bmi_category) VALUES ($1, $2, $3)",
			int64(i+1), risk.SmokerFlag, risk.BMICategory)
	}
	for i, ageGroup := range dims.AgeGroups {
		batch.Queue(
			"INSERT INTO dw.dim_age (age_key, age_group) VALUES ($1, $2)",
			int64(i+1), ageGroup)
	}

	res := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := res.Exec(); err != nil {
			res.Close()
			return fmt.Errorf("insert dimension row: %w", err)
		}
	}
	return res.Close()
}
