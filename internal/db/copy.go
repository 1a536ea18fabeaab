package db

import "github.com/jackc/pgx/v5"

// FactRow is one fully resolved fact table row, ready for COPY.
type FactRow struct {
	RegionKey int64
	RiskKey   int64
	AgeKey    int64
	Age       int
	BMI       float64
	Children  int
	Charges   float64
}

// FactColumns returns the COPY column order for fact rows. fact_key is
// omitted; the database generates it.
func FactColumns() []string {
	return []string{"region_key", "risk_key", "age_key", "age", "bmi", "children", "charges"}
}

// FactSource implements pgx.CopyFromSource over a slice of fact rows.
type FactSource struct {
	rows []FactRow
	idx  int
}

// NewFactSource creates a CopyFromSource for the given rows.
func NewFactSource(rows []FactRow) *FactSource {
	return &FactSource{rows: rows, idx: -1}
}

// Next advances to the next row.
func (s *FactSource) Next() bool {
	s.idx++
	return s.idx < len(s.rows)
}

// Values returns the current row's values in COPY column order.
func (s *FactSource) Values() ([]any, error) {
	r := &s.rows[s.idx]
	return []any{r.RegionKey, r.RiskKey, r.AgeKey, r.Age, r.BMI, r.Children, r.Charges}, nil
}

// Err returns any error encountered during iteration.
func (s *FactSource) Err() error {
	return nil
}

// Compile-time check that FactSource satisfies the interface.
var _ pgx.CopyFromSource = (*FactSource)(nil)
