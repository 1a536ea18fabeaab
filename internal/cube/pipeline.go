package cube

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
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

// Run builds the cube file. With cfg.FromWarehouse the aggregation
// happens in the warehouse via SQL (pool must be non-nil); otherwise
// the prepared file is read and aggregated in memory. The cube CSV is
// written atomically either way.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*model.CubeSummary, error) {
	totalStart := time.Now()

	var cells []model.CubeCell
	var rowsRead int64
	source := "file"

	if cfg.FromWarehouse {
		source = "warehouse"
		log.Info().Msg("aggregating cube from warehouse")
		var err error
		cells, err = BuildFromWarehouse(ctx, pool)
		if err != nil {
			return nil, &PipelineError{Phase: "aggregate", Err: err}
		}
		for i := range cells {
			rowsRead += cells[i].ChargesCount
		}
	} else {
		log.Info().Str("file", cfg.PreparedPath).Msg("reading prepared dataset")
		recs, err := tabio.ReadPrepared(cfg.PreparedPath)
		if err != nil {
			return nil, &PipelineError{Phase: "read", Err: err}
		}
		rowsRead = int64(len(recs))
		cells = Build(recs)
	}

	if err := tabio.WriteCubeCSV(cfg.CubePath, cells); err != nil {
		return nil, &PipelineError{Phase: "write", Err: err}
	}

	var totalCount int64
	var totalSum float64
	for i := range cells {
		totalCount += cells[i].ChargesCount
		totalSum += cells[i].ChargesSum
	}

	summary := &model.CubeSummary{
		Source:        source,
		CubePath:      cfg.CubePath,
		RowsRead:      rowsRead,
		Cells:         int64(len(cells)),
		TotalCount:    totalCount,
		TotalSum:      totalSum,
		DurationTotal: time.Since(totalStart),
	}

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("cells", summary.Cells).
		Int64("total_count", summary.TotalCount).
		Float64("total_sum", summary.TotalSum).
		Str("source", source).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("cube build complete")

	return summary, nil
}
