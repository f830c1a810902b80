package diagnostics

import (
	"fjacquet/finhealth/internal/stats"
)

// Gaps about savings and planning
const (
	GapNoInvestments = "No investment activity detected - consider building an investment portfolio"
	GapNoGoals       = "No financial goals defined - goal setting is crucial for financial success"
)

func diagnoseAssets(in *input, f *Findings) AssetDiagnostic {
	total := in.totalBalance()
	investments := in.matching(in.keywords.Investment)
	hasInvestments := len(investments) > 0
	investmentRate := stats.SafeDiv(float64(len(investments)), float64(len(in.all)), 0)

	avgIncome := in.avgMonthlyIncome(1)
	avgExpenses := in.avgMonthlyExpenses(1)
	emergencyMonths := 0.0
	if avgExpenses > 0 {
		emergencyMonths = total / avgExpenses
	}

	score := 0
	switch {
	case emergencyMonths >= 6:
		score += 40
	case emergencyMonths >= 3:
		score += 30
	case emergencyMonths >= 1:
		score += 15
	default:
		f.AddRisk("Insufficient emergency fund: only %.1f months of expenses", emergencyMonths)
	}

	if hasInvestments {
		score += 30
		switch {
		case investmentRate > 0.05:
			score += 20
		case investmentRate > 0.02:
			score += 10
		}
	} else {
		f.AddGap(GapNoInvestments)
		score += 10
	}

	if avgIncome > 0 && total/(avgIncome*12) > 1 {
		score += 10
	}

	return AssetDiagnostic{
		CategoryResult: scored(score),
		AssetMetrics: &AssetMetrics{
			TotalBalance:        total,
			LiquidBalance:       in.liquidBalance(),
			EmergencyFundMonths: emergencyMonths,
			HasInvestments:      hasInvestments,
			InvestmentActivity:  investmentRate * 100,
		},
	}
}

func diagnoseGoals(in *input, f *Findings) GoalDiagnostic {
	if !in.profile.HasGoals() {
		f.AddGap(GapNoGoals)
		return GoalDiagnostic{CategoryResult: CategoryResult{
			Score:              40,
			Status:             StatusUndefined,
			NeedsQuestionnaire: true,
		}}
	}

	score := 60
	avgSavings := 0.0
	if len(in.income) > 0 && len(in.expenses) > 0 {
		avgSavings = in.monthlyNet().Mean()
		if avgSavings > 0 {
			score += 40
		}
	}

	return GoalDiagnostic{
		CategoryResult: scored(score),
		GoalMetrics: &GoalMetrics{
			GoalsCount:        len(in.profile.Goals),
			AvgMonthlySavings: avgSavings,
		},
	}
}
