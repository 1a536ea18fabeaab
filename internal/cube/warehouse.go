package cube

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/insurancedw/internal/model"
	embedsql "github.com/gyeh/insurancedw/internal/sql"
)

// BuildFromWarehouse aggregates cube cells with a single GROUP BY over
// the star schema, the same grouping Build does in memory. The query's
// ORDER BY matches Build's sort, so both sources produce identical
// output for the same data.
func BuildFromWarehouse(ctx context.Context, pool *pgxpool.Pool) ([]model.CubeCell, error) {
	rows, err := pool.Query(ctx, embedsql.CubeFromWarehouse)
	if err != nil {
		return nil, fmt.Errorf("cube query: %w", err)
	}
	defer rows.Close()

	var cells []model.CubeCell
	for rows.Next() {
		var c model.CubeCell
		if err := rows.Scan(&c.AgeGroup, &c.SmokerFlag, &c.Region, &c.BMICategory,
			&c.ChargesSum, &c.ChargesAvg, &c.ChargesCount); err != nil {
			return nil, fmt.Errorf("scan cube cell: %w", err)
		}
		cells = append(cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read cube cells: %w", err)
	}
	return cells, nil
}
