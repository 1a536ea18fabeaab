package prepare

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/insurancedw/internal/config"
	"github.com/gyeh/insurancedw/internal/model"
	"github.com/gyeh/insurancedw/internal/tabio"
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

// Run executes the full prepare pipeline: read → clean → derive →
// dedupe → outliers (optional) → write. The output file is written
// atomically, so a failed run leaves no partial file behind.
func Run(log zerolog.Logger, cfg *config.Config) (*model.PrepareSummary, error) {
	totalStart := time.Now()

	// Phase 1: read raw CSV
	log.Info().Str("file", cfg.RawPath).Msg("reading raw dataset")
	readStart := time.Now()
	raws, err := tabio.ReadRaw(cfg.RawPath)
	if err != nil {
		return nil, &PipelineError{Phase: "read", Err: err}
	}
	readDur := time.Since(readStart)
	log.Info().Int("rows", len(raws)).Dur("duration", readDur).Msg("raw dataset read")

	// Phase 2: coerce types, handle missing values, derive features
	var recs []model.PreparedRecord
	var rowsMissing, rowsRejected int64
	for i := range raws {
		rec, missing, cerr := coerceRow(&raws[i])
		if missing {
			rowsMissing++
			continue
		}
		if cerr != nil {
			if !cfg.SkipInvalid {
				return nil, &PipelineError{Phase: "clean", Err: cerr}
			}
			rowsRejected++
			log.Warn().Err(cerr).Int64("row", raws[i].Line).Msg("row rejected")
			continue
		}
		derive(&rec)
		recs = append(recs, rec)
	}
	log.Info().
		Int("rows", len(recs)).
		Int64("missing", rowsMissing).
		Int64("rejected", rowsRejected).
		Msg("rows cleaned")

	// Phase 3: exact-duplicate removal, first occurrence wins
	recs, dupes := dedupe(recs)
	log.Info().Int64("removed", dupes).Msg("duplicates removed")

	// Phase 4: optional IQR outlier filter on charges
	var outliers int64
	if cfg.DropOutliers {
		recs, outliers = dropOutliers(recs)
		log.Info().Int64("removed", outliers).Msg("charge outliers removed")
	}

	// Phase 5: write prepared file
	format := cfg.Format
	if format == "" {
		format = tabio.FormatFor(cfg.PreparedPath)
	}
	writeStart := time.Now()
	if err := tabio.WritePrepared(cfg.PreparedPath, format, recs); err != nil {
		return nil, &PipelineError{Phase: "write", Err: err}
	}
	writeDur := time.Since(writeStart)

	summary := &model.PrepareSummary{
		RawPath:       cfg.RawPath,
		PreparedPath:  cfg.PreparedPath,
		RowsRead:      int64(len(raws)),
		RowsMissing:   rowsMissing,
		RowsRejected:  rowsRejected,
		RowsDeduped:   dupes,
		RowsOutliers:  outliers,
		RowsWritten:   int64(len(recs)),
		DurationRead:  readDur,
		DurationWrite: writeDur,
		DurationTotal: time.Since(totalStart),
	}

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_written", summary.RowsWritten).
		Str("format", format).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("prepare pipeline complete")

	return summary, nil
}
