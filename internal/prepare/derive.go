package prepare

import "github.com/gyeh/insurancedw/internal/model"

// derive fills the bucketed risk features computed from the typed
// columns: age_group and bmi_category. smoker_flag is set during
// coercion since it is just the typed form of the smoker column.
func derive(rec *model.PreparedRecord) {
	rec.AgeGroup = model.AgeGroupFor(rec.Age)
	rec.BMICategory = model.BMICategoryFor(rec.BMI)
}
