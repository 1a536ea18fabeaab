package model

import "math"

// AgeBucket maps an inclusive upper age bound to a group label.
type AgeBucket struct {
	Label string
	Max   int
}

// AgeBuckets lists the age groups in ascending order. The last bucket
// is open-ended.
var AgeBuckets = []AgeBucket{
	{Label: "18-29", Max: 29},
	{Label: "30-39", Max: 39},
	{Label: "40-49", Max: 49},
	{Label: "50-59", Max: 59},
	{Label: "60+", Max: math.MaxInt},
}

// AgeGroupFor returns the age group label for an age.
func AgeGroupFor(age int) string {
	for _, b := range AgeBuckets {
		if age <= b.Max {
			return b.Label
		}
	}
	return AgeBuckets[len(AgeBuckets)-1].Label
}

// BMIBucket maps an exclusive upper BMI bound to a clinical category.
type BMIBucket struct {
	Label string
	Max   float64
}

// BMIBuckets lists the BMI categories at standard clinical thresholds,
// ascending. The last bucket is open-ended.
var BMIBuckets = []BMIBucket{
	{Label: "underweight", Max: 18.5},
	{Label: "normal", Max: 25},
	{Label: "overweight", Max: 30},
	{Label: "obese", Max: 40},
	{Label: "extreme", Max: math.Inf(1)},
}

// BMICategoryFor returns the clinical category for a BMI value.
func BMICategoryFor(bmi float64) string {
	for _, b := range BMIBuckets {
		if bmi < b.Max {
			return b.Label
		}
	}
	return BMIBuckets[len(BMIBuckets)-1].Label
}

// AgeGroupLabels returns the fixed set of age group labels in order.
func AgeGroupLabels() []string {
	labels := make([]string, len(AgeBuckets))
	for i, b := range AgeBuckets {
		labels[i] = b.Label
	}
	return labels
}

// BMICategoryLabels returns the fixed set of BMI categories in order.
func BMICategoryLabels() []string {
	labels := make([]string, len(BMIBuckets))
	for i, b := range BMIBuckets {
		labels[i] = b.Label
	}
	return labels
}
