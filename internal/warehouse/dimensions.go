package warehouse

import (
	"fmt"

	"github.com/gyeh/insurancedw/internal/db"
	"github.com/gyeh/insurancedw/internal/model"
)

// IntegrityError reports a fact row whose dimension value has no
// surrogate key. Dimensions are extracted from the same table as the
// facts, so this can only mean an internal bug.
type IntegrityError struct {
	Dimension string
	Value     string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("fact references %s value %q with no dimension row", e.Dimension, e.Value)
}

// RiskValue is one logical row of dim_risk.
type RiskValue struct {
	SmokerFlag  bool
	BMICategory string
}

// Dims holds the three dimensions extracted from a prepared table.
// Surrogate keys are assigned in first-seen order starting at 1, so a
// given prepared file always produces the same key values.
type Dims struct {
	Regions   []string
	Risks     []RiskValue
	AgeGroups []string

	regionKeys map[string]int64
	riskKeys   map[RiskValue]int64
	ageKeys    map[string]int64
}

// BuildDims extracts the distinct dimension values from prepared
// records in first-seen order.
func BuildDims(recs []model.PreparedRecord) *Dims {
	d := &Dims{
		regionKeys: make(map[string]int64),
		riskKeys:   make(map[RiskValue]int64),
		ageKeys:    make(map[string]int64),
	}
	for i := range recs {
		rec := &recs[i]
		if _, ok := d.regionKeys[rec.Region]; !ok {
			d.Regions = append(d.Regions, rec.Region)
			d.regionKeys[rec.Region] = int64(len(d.Regions))
		}
		risk := RiskValue{SmokerFlag: rec.SmokerFlag, BMICategory: rec.BMICategory}
		if _, ok := d.riskKeys[risk]; !ok {
			d.Risks = append(d.Risks, risk)
			d.riskKeys[risk] = int64(len(d.Risks))
		}
		if _, ok := d.ageKeys[rec.AgeGroup]; !ok {
			d.AgeGroups = append(d.AgeGroups, rec.AgeGroup)
			d.ageKeys[rec.AgeGroup] = int64(len(d.AgeGroups))
		}
	}
	return d
}

// RegionKey resolves a region's surrogate key.
func (d *Dims) RegionKey(region string) (int64, error) {
	k, ok := d.regionKeys[region]
	if !ok {
		return 0, &IntegrityError{Dimension: "region", Value: region}
	}
	return k, nil
}

// RiskKey resolves a (smoker_flag, bmi_category) surrogate key.
func (d *Dims) RiskKey(v RiskValue) (int64, error) {
	k, ok := d.riskKeys[v]
	if !ok {
		return 0, &IntegrityError{
			Dimension: "risk",
			Value:     fmt.Sprintf("smoker_flag=%t bmi_category=%s", v.SmokerFlag, v.BMICategory),
		}
	}
	return k, nil
}

// AgeKey resolves an age group's surrogate key.
func (d *Dims) AgeKey(ageGroup string) (int64, error) {
	k, ok := d.ageKeys[ageGroup]
	if !ok {
		return 0, &IntegrityError{Dimension: "age", Value: ageGroup}
	}
	return k, nil
}

// FactRows resolves every prepared record against the dimensions,
// producing COPY-ready fact rows in source order.
func (d *Dims) FactRows(recs []model.PreparedRecord) ([]db.FactRow, error) {
	rows := make([]db.FactRow, 0, len(recs))
	for i := range recs {
		rec := &recs[i]
		regionKey, err := d.RegionKey(rec.Region)
		if err != nil {
			return nil, err
		}
		riskKey, err := d.RiskKey(RiskValue{SmokerFlag: rec.SmokerFlag, BMICategory: rec.BMICategory})
		if err != nil {
			return nil, err
		}
		ageKey, err := d.AgeKey(rec.AgeGroup)
		if err != nil {
			return nil, err
		}
		rows = append(rows, db.FactRow{
			RegionKey: regionKey,
			RiskKey:   riskKey,
			AgeKey:    ageKey,
			Age:       rec.Age,
			BMI:       rec.BMI,
			Children:  rec.Children,
			Charges:   rec.Charges,
		})
	}
	return rows, nil
}
