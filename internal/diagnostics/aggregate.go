package diagnostics

import "math"

// Weights of the categories in the overall score. They sum to 1.
var Weights = map[string]float64{
	CategoryIncome:    0.15,
	CategoryExpenses:  0.10,
	CategoryDebt:      0.15,
	CategoryAssets:    0.15,
	CategoryInsurance: 0.05,
	CategoryGoals:     0.05,
	CategoryBudgeting: 0.15,
	CategoryCredit:    0.10,
	CategoryTax:       0.05,
	CategoryBehavior:  0.05,
}

// OverallScore is the weighted sum of the category scores rounded to one
// decimal. Categories are summed in execution order so the result is stable.
func OverallScore(d Diagnostics) float64 {
	total := 0.0
	for _, r := range d.Results() {
		total += float64(r.Result.Score) * Weights[r.Name]
	}
	return math.Round(total*10) / 10
}

var gradeBands = []struct {
	min   float64
	grade string
}{
	{90, "A+"},
	{85, "A"},
	{80, "A-"},
	{75, "B+"},
	{70, "B"},
	{65, "B-"},
	{60, "C+"},
	{55, "C"},
	{50, "C-"},
	{45, "D+"},
	{40, "D"},
}

// Grade maps an overall score onto its letter grade.
func Grade(score float64) string {
	for _, band := range gradeBands {
		if score >= band.min {
			return band.grade
		}
	}
	return "F"
}
