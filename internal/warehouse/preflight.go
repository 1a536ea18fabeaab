package warehouse

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/insurancedw/internal/model"
	"github.com/gyeh/insurancedw/internal/normalize"
	"github.com/gyeh/insurancedw/internal/tabio"
)

// PreflightResult holds the context resolved before any warehouse
// tables are touched.
type PreflightResult struct {
	// FilePath is the prepared file path as passed in.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the prepared file.
	FileSHA256 string
	// LoadRunID is a freshly generated UUIDv4 identifying this load in
	// the etl.load_runs audit table.
	LoadRunID uuid.UUID
	// Records is the fully parsed prepared table.
	Records []model.PreparedRecord
}

// Preflight hashes and reads the prepared file, then registers the run
// in etl.load_runs with status "loading".
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, path string) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(path)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	recs, err := tabio.ReadPrepared(path)
	if err != nil {
		return nil, fmt.Errorf("preflight read: %w", err)
	}

	runID := uuid.New()
	_, err = pool.Exec(ctx,
		`INSERT INTO etl.load_runs (load_run_id, source_file_name, source_file_sha256, rows_read)
		 VALUES ($1, $2, $3, $4)`,
		runID, filepath.Base(path), sha, int64(len(recs)),
	)
	if err != nil {
		return nil, fmt.Errorf("preflight register load run: %w", err)
	}

	log.Info().
		Str("file", filepath.Base(path)).
		Str("sha256", sha).
		Str("load_run_id", runID.String()).
		Int("rows", len(recs)).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	return &PreflightResult{
		FilePath:   path,
		FileSHA256: sha,
		LoadRunID:  runID,
		Records:    recs,
	}, nil
}

// FinishLoadRun marks the audit row terminal: "loaded" with the fact
// row count, or "failed".
func FinishLoadRun(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID, status string, rowsLoaded int64) error {
	_, err := pool.Exec(ctx,
		`UPDATE etl.load_runs
		 SET status = $2, rows_loaded = $3, finished_at = now()
		 WHERE load_run_id = $1`,
		runID, status, rowsLoaded,
	)
	return err
}
