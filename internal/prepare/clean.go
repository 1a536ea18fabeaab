package prepare

import (
	"strings"

	"github.com/gyeh/insurancedw/internal/model"
	"github.com/gyeh/insurancedw/internal/normalize"
	"github.com/gyeh/insurancedw/internal/tabio"
)

// coerceRow types a raw row into a PreparedRecord.
//
// A blank required field marks the row as missing (dropped, the
// original dataset's missing-value rule); a blank children field
// defaults to 0. A non-blank field that fails to parse returns a
// RowError, which the pipeline treats per the configured policy.
func coerceRow(raw *model.RawRow) (rec model.PreparedRecord, missing bool, err error) {
	for _, field := range []string{raw.Age, raw.Sex, raw.BMI, raw.Smoker, raw.Region, raw.Charges} {
		if strings.TrimSpace(field) == "" {
			return rec, true, nil
		}
	}

	age, perr := normalize.ParseI64(raw.Age)
	if perr != nil {
		return rec, false, &tabio.RowError{Row: raw.Line, Column: "age", Err: perr}
	}
	bmi, perr := normalize.ParseF64(raw.BMI)
	if perr != nil {
		return rec, false, &tabio.RowError{Row: raw.Line, Column: "bmi", Err: perr}
	}
	var children int64
	if strings.TrimSpace(raw.Children) != "" {
		children, perr = normalize.ParseI64(raw.Children)
		if perr != nil {
			return rec, false, &tabio.RowError{Row: raw.Line, Column: "children", Err: perr}
		}
	}
	smoker, perr := normalize.ParseSmoker(raw.Smoker)
	if perr != nil {
		return rec, false, &tabio.RowError{Row: raw.Line, Column: "smoker", Err: perr}
	}
	charges, perr := normalize.ParseF64(raw.Charges)
	if perr != nil {
		return rec, false, &tabio.RowError{Row: raw.Line, Column: "charges", Err: perr}
	}

	rec = model.PreparedRecord{
		Age:        int(age),
		Sex:        normalize.Category(raw.Sex),
		BMI:        bmi,
		Children:   int(children),
		Smoker:     normalize.CanonicalSmoker(smoker),
		Region:     normalize.Category(raw.Region),
		Charges:    charges,
		SmokerFlag: smoker,
	}
	return rec, false, nil
}
