package diagnostics

import (
	"fjacquet/finhealth/internal/models"
	"fjacquet/finhealth/internal/stats"
)

// Gaps recorded when no matching transactions exist. The debt gap keeps both
// readings open: the user may be debt-free or the statement may be incomplete.
const (
	GapNoDebt      = "No debt payments detected - this may mean no debt or missing data; please confirm if you have any loans or credit cards"
	GapNoInsurance = "No insurance payments detected - please confirm your coverage status"
	GapNoCredit    = "No credit card activity detected - unable to assess credit health"
	GapNoTax       = "No tax-related transactions detected - please verify your tax compliance"
)

func diagnoseDebt(in *input, f *Findings) DebtDiagnostic {
	payments := in.matching(in.keywords.Debt)
	if len(payments) == 0 {
		f.AddGap(GapNoDebt)
		return DebtDiagnostic{CategoryResult: CategoryResult{Score: 70, Status: StatusAssumedNoDebt}}
	}

	avgDebt := stats.SumByMonth(payments).Mean()
	avgIncome := in.avgMonthlyIncome(1)
	dti := stats.SafeDiv(avgDebt, avgIncome, 0)

	score := 100
	switch {
	case dti > 0.5:
		score = 20
		f.AddRisk("Very high debt-to-income ratio: %.0f%%", dti*100)
	case dti > 0.36:
		score = 40
		f.AddRisk("High debt-to-income ratio: %.0f%%", dti*100)
	case dti > 0.28:
		score = 60
	case dti > 0.15:
		score = 80
	}

	return DebtDiagnostic{
		CategoryResult: scored(score),
		DebtMetrics: &DebtMetrics{
			AvgMonthlyDebt: avgDebt,
			DebtToIncome:   dti,
			DebtTypes:      uniqueDescriptions(payments),
		},
	}
}

func diagnoseInsurance(in *input, f *Findings) InsuranceDiagnostic {
	payments := in.matching(in.keywords.Insurance)
	if len(payments) == 0 {
		f.AddGap(GapNoInsurance)
		return InsuranceDiagnostic{CategoryResult: CategoryResult{
			Score:              30,
			Status:             StatusUnknown,
			NeedsQuestionnaire: true,
		}}
	}

	premium := stats.SumByMonth(payments).Mean()
	ratio := stats.SafeDiv(premium, in.avgMonthlyIncome(1), 0)
	types := uniqueDescriptions(payments)

	score := 50
	if types >= 2 {
		score += 20
	}
	if ratio > 0.02 && ratio < 0.15 {
		score += 30
	}

	// The policy types behind the payments still need confirming.
	result := scored(score)
	result.NeedsQuestionnaire = true

	return InsuranceDiagnostic{
		CategoryResult: result,
		InsuranceMetrics: &InsuranceMetrics{
			MonthlyPremium:         premium,
			InsuranceTypesDetected: types,
			InsuranceRatio:         ratio,
		},
	}
}

func diagnoseCredit(in *input, f *Findings) CreditDiagnostic {
	payments := in.matching(in.keywords.Credit)
	if len(payments) == 0 {
		f.AddGap(GapNoCredit)
		return CreditDiagnostic{CategoryResult: CategoryResult{
			Score:              60,
			Status:             StatusUnknown,
			NeedsQuestionnaire: true,
		}}
	}

	monthly := stats.SumByMonth(payments)
	avgPayment := monthly.Mean()
	ratio := stats.SafeDiv(avgPayment, in.avgMonthlyIncome(1), 0)

	score := 50
	switch {
	case ratio < 0.1:
		score += 30
	case ratio < 0.2:
		score += 20
	case ratio < 0.3:
		score += 10
	default:
		f.AddRisk("High credit card usage: %.0f%% of income", ratio*100)
	}

	if monthly.Len() >= 3 {
		score += 20
	}

	// The actual credit score can only come from the user.
	result := scored(score)
	result.NeedsQuestionnaire = true

	return CreditDiagnostic{
		CategoryResult: result,
		CreditMetrics: &CreditMetrics{
			AvgMonthlyCCPayment: avgPayment,
			CCToIncomeRatio:     ratio,
			ActiveMonths:        monthly.Len(),
		},
	}
}

func diagnoseTax(in *input, f *Findings) TaxDiagnostic {
	taxTxs := in.matching(in.keywords.Tax)
	if len(taxTxs) == 0 {
		f.AddGap(GapNoTax)
		return TaxDiagnostic{CategoryResult: CategoryResult{
			Score:              60,
			Status:             StatusUnknown,
			NeedsQuestionnaire: true,
		}}
	}

	payments := models.Filter(taxTxs, models.Transaction.IsExpense)
	refunds := models.Filter(taxTxs, models.Transaction.IsIncome)
	paid := stats.Sum(amounts(payments))
	refunded := stats.Sum(amounts(refunds))

	totalIncome := 1.0
	if len(in.income) > 0 {
		totalIncome = stats.Sum(amounts(in.income))
	}
	rate := stats.SafeDiv(paid-refunded, totalIncome, 0)

	score := 70
	if len(payments) > 0 {
		score += 20
	}
	if rate > 0 && rate < 0.4 {
		score += 10
	}

	return TaxDiagnostic{
		CategoryResult: scored(score),
		TaxMetrics: &TaxMetrics{
			TotalTaxPaid:     paid,
			TotalRefunds:     refunded,
			EffectiveTaxRate: rate * 100,
		},
	}
}
