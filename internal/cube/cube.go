// Package cube derives the OLAP cube: charge aggregates grouped along
// the four categorical dimensions of the prepared dataset.
package cube

import (
	"sort"

	"github.com/gyeh/insurancedw/internal/model"
)

// Build aggregates prepared records into cube cells in a single pass:
// one cell per (age_group, smoker_flag, region, bmi_category)
// combination that actually occurs, holding sum, mean, and count of
// charges. Cells come back sorted lexicographically by key (false
// before true for smoker_flag) so output is reproducible.
func Build(recs []model.PreparedRecord) []model.CubeCell {
	type acc struct {
		sum   float64
		count int64
	}
	groups := make(map[model.CubeKey]*acc)
	for i := range recs {
		rec := &recs[i]
		key := model.CubeKey{
			AgeGroup:    rec.AgeGroup,
			SmokerFlag:  rec.SmokerFlag,
			Region:      rec.Region,
			BMICategory: rec.BMICategory,
		}
		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
		}
		a.sum += rec.Charges
		a.count++
	}

	cells := make([]model.CubeCell, 0, len(groups))
	for key, a := range groups {
		cells = append(cells, model.CubeCell{
			CubeKey:      key,
			ChargesSum:   a.sum,
			ChargesAvg:   a.sum / float64(a.count),
			ChargesCount: a.count,
		})
	}

	sort.Slice(cells, func(i, j int) bool {
		a, b := &cells[i], &cells[j]
		if a.AgeGroup != b.AgeGroup {
			return a.AgeGroup < b.AgeGroup
		}
		if a.SmokerFlag != b.SmokerFlag {
			return !a.SmokerFlag
		}
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		return a.BMICategory < b.BMICategory
	})
	return cells
}
