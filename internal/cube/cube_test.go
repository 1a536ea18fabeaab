package cube

import (
	"math"
	"sort"
	"testing"

	"github.com/gyeh/insurancedw/internal/model"
)

func rec(ageGroup string, smoker bool, region, bmiCat string, charges float64) model.PreparedRecord {
	return model.PreparedRecord{
		Age:         50,
		Sex:         "male",
		BMI:         32,
		Smoker:      "yes",
		Region:      region,
		Charges:     charges,
		AgeGroup:    ageGroup,
		BMICategory: bmiCat,
		SmokerFlag:  smoker,
	}
}

func TestBuild_MergesIdenticalKeys(t *testing.T) {
	recs := []model.PreparedRecord{
		rec("50-59", true, "southeast", "obese", 40000),
		rec("50-59", true, "southeast", "obese", 45000),
	}
	cells := Build(recs)
	if len(cells) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(cells))
	}
	c := cells[0]
	if c.ChargesSum != 85000 {
		t.Errorf("sum = %v, want 85000", c.ChargesSum)
	}
	if c.ChargesAvg != 42500 {
		t.Errorf("avg = %v, want 42500", c.ChargesAvg)
	}
	if c.ChargesCount != 2 {
		t.Errorf("count = %d, want 2", c.ChargesCount)
	}
}

func TestBuild_Completeness(t *testing.T) {
	regions := []string{"southwest", "southeast", "northwest", "northeast"}
	ages := []string{"18-29", "30-39", "40-49", "50-59", "60+"}
	bmis := []string{"normal", "overweight", "obese"}

	var recs []model.PreparedRecord
	var totalCharges float64
	for i := 0; i < 500; i++ {
		charges := float64(1000 + i*37)
		totalCharges += charges
		recs = append(recs, rec(ages[i%len(ages)], i%3 == 0, regions[i%len(regions)], bmis[i%len(bmis)], charges))
	}

	cells := Build(recs)

	var cellCount int64
	var cellSum float64
	for _, c := range cells {
		if c.ChargesCount == 0 {
			t.Error("cube must not contain empty cells")
		}
		cellCount += c.ChargesCount
		cellSum += c.ChargesSum
	}
	if cellCount != int64(len(recs)) {
		t.Errorf("sum of cell counts = %d, want %d", cellCount, len(recs))
	}
	if rel := math.Abs(cellSum-totalCharges) / totalCharges; rel > 1e-6 {
		t.Errorf("sum of cell sums = %v, want %v (rel err %v)", cellSum, totalCharges, rel)
	}
}

func TestBuild_DeterministicOrder(t *testing.T) {
	recs := []model.PreparedRecord{
		rec("60+", false, "northwest", "normal", 100),
		rec("18-29", true, "southeast", "obese", 200),
		rec("18-29", false, "southeast", "obese", 300),
		rec("18-29", false, "northeast", "normal", 400),
	}

	cells := Build(recs)
	if !sort.SliceIsSorted(cells, func(i, j int) bool {
		a, b := cells[i], cells[j]
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
	}) {
		t.Errorf("cells not in lexicographic key order: %+v", cells)
	}

	// Same input shuffled must produce identical output.
	shuffled := []model.PreparedRecord{recs[3], recs[1], recs[0], recs[2]}
	again := Build(shuffled)
	if len(again) != len(cells) {
		t.Fatalf("cell count changed: %d vs %d", len(again), len(cells))
	}
	for i := range cells {
		if cells[i] != again[i] {
			t.Errorf("cell %d differs across input orders: %+v vs %+v", i, cells[i], again[i])
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	if cells := Build(nil); len(cells) != 0 {
		t.Errorf("expected no cells for empty input, got %d", len(cells))
	}
}
