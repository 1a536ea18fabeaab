package model

// CubeKey is the composite grouping key of the OLAP cube: one value
// per categorical dimension.
type CubeKey struct {
	AgeGroup    string
	SmokerFlag  bool
	Region      string
	BMICategory string
}

// CubeCell is one non-empty cell of the cube: a grouping key plus the
// aggregate charge measures for the records that share it.
type CubeCell struct {
	CubeKey
	ChargesSum   float64
	ChargesAvg   float64
	ChargesCount int64
}

// CubeColumns is the column set of the cube output file, in order.
var CubeColumns = []string{
	"age_group", "smoker_flag", "region", "bmi_category",
	"charges_sum", "charges_avg", "charges_count",
}
