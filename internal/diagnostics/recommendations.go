package diagnostics

import (
	"fjacquet/finhealth/internal/currencyutils"
)

// Recommendation priorities
const (
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// GenerateRecommendations applies one rule per category and returns the
// triggered action items in category order.
func GenerateRecommendations(d Diagnostics) []Recommendation {
	recs := []Recommendation{}

	if d.Income.Score < 60 {
		recs = append(recs, Recommendation{
			Category: "Income",
			Priority: PriorityHigh,
			Action:   "Diversify income sources or seek opportunities for income growth",
			Impact:   "Increase financial stability and growth potential",
		})
	}

	if m := d.Expenses.ExpenseMetrics; m != nil && m.ExpenseRatio > 0.9 {
		recs = append(recs, Recommendation{
			Category: "Expenses",
			Priority: PriorityHigh,
			Action:   "Reduce discretionary spending - aim for 70-80% expense-to-income ratio",
			Impact:   "Could save " + currencyutils.FormatEuro(m.AvgMonthlyExpenses*0.2) + "/month",
		})
	}

	if m := d.Debt.DebtMetrics; m != nil && m.DebtToIncome > 0.36 {
		recs = append(recs, Recommendation{
			Category: "Debt",
			Priority: PriorityCritical,
			Action:   "Create aggressive debt paydown plan - consider debt consolidation",
			Impact:   "Improve credit score and free up monthly cash flow",
		})
	}

	if m := d.Assets.AssetMetrics; m != nil && m.EmergencyFundMonths < 3 {
		recs = append(recs, Recommendation{
			Category: "Emergency Fund",
			Priority: PriorityHigh,
			Action:   "Build emergency fund to cover 3-6 months of expenses",
			Impact:   "Provide financial security against unexpected events",
		})
	}

	// Without budgeting data the savings rate counts as zero.
	savingsRate := 0.0
	if m := d.Budgeting.BudgetMetrics; m != nil {
		savingsRate = m.AvgSavingsRate
	}
	if savingsRate < 10 {
		recs = append(recs, Recommendation{
			Category: "Savings",
			Priority: PriorityHigh,
			Action:   "Aim to save at least 15-20% of income monthly",
			Impact:   "Build wealth and achieve financial goals faster",
		})
	}

	return recs
}
