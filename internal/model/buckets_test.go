package model

import "testing"

func TestAgeGroupFor(t *testing.T) {
	cases := map[int]string{
		18:  "18-29",
		29:  "18-29",
		30:  "30-39",
		39:  "30-39",
		40:  "40-49",
		50:  "50-59",
		59:  "50-59",
		60:  "60+",
		95:  "60+",
	}
	for age, want := range cases {
		if got := AgeGroupFor(age); got != want {
			t.Errorf("AgeGroupFor(%d) = %q, want %q", age, got, want)
		}
	}
}

func TestBMICategoryFor(t *testing.T) {
	cases := map[float64]string{
		16.0: "underweight",
		18.4: "underweight",
		18.5: "normal",
		24.9: "normal",
		25.0: "overweight",
		29.9: "overweight",
		30.0: "obese",
		39.9: "obese",
		40.0: "extreme",
		55.0: "extreme",
	}
	for bmi, want := range cases {
		if got := BMICategoryFor(bmi); got != want {
			t.Errorf("BMICategoryFor(%v) = %q, want %q", bmi, got, want)
		}
	}
}

func TestLabelSetsAreFixed(t *testing.T) {
	if got := len(AgeGroupLabels()); got != 5 {
		t.Errorf("expected 5 age groups, got %d", got)
	}
	if got := len(BMICategoryLabels()); got != 5 {
		t.Errorf("expected 5 bmi categories, got %d", got)
	}

	// Every bucketed value must land in the fixed label set.
	ageLabels := make(map[string]bool)
	for _, l := range AgeGroupLabels() {
		ageLabels[l] = true
	}
	for age := 18; age <= 100; age++ {
		if !ageLabels[AgeGroupFor(age)] {
			t.Errorf("AgeGroupFor(%d) = %q not in fixed label set", age, AgeGroupFor(age))
		}
	}
}
