package model

// RawColumns is the required column set of the raw insurance dataset,
// in canonical order.
var RawColumns = []string{"age", "sex", "bmi", "children", "smoker", "region", "charges"}

// PreparedColumns is the column set of the prepared dataset: the raw
// columns followed by the derived ones.
var PreparedColumns = []string{
	"age", "sex", "bmi", "children", "smoker", "region", "charges",
	"age_group", "bmi_category", "smoker_flag",
}

// RawRow is one untyped row of the raw dataset as read from CSV.
// Line is the 1-based data row number used in error and warning messages.
type RawRow struct {
	Line     int64
	Age      string
	Sex      string
	BMI      string
	Children string
	Smoker   string
	Region   string
	Charges  string
}

// PreparedRecord is one cleaned, typed, enriched insurance record.
// Smoker keeps the canonical "yes"/"no" string while SmokerFlag is
// the boolean form used by the risk dimension and the cube.
// The struct is comparable so exact-duplicate detection can use it as
// a map key directly.
type PreparedRecord struct {
	Age         int     `parquet:"age"`
	Sex         string  `parquet:"sex"`
	BMI         float64 `parquet:"bmi"`
	Children    int     `parquet:"children"`
	Smoker      string  `parquet:"smoker"`
	Region      string  `parquet:"region"`
	Charges     float64 `parquet:"charges"`
	AgeGroup    string  `parquet:"age_group"`
	BMICategory string  `parquet:"bmi_category"`
	SmokerFlag  bool    `parquet:"smoker_flag"`
}
