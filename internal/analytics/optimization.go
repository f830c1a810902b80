package analytics

import (
	"fmt"
	"sort"

	"fjacquet/finhealth/internal/currencyutils"
	"fjacquet/finhealth/internal/models"
	"fjacquet/finhealth/internal/stats"
)

// Optimization recommendation types
const (
	RecommendationReduceVariability  = "reduce_variability"
	RecommendationReduceHighSpending = "reduce_high_spending"
	RecommendationIncreaseIncome     = "increase_income"
)

const (
	maxAnalyzedCategories         = 10
	maxCategoryRecommendations    = 3
	highSpendingThreshold         = 200.0
	optimizableVariabilityPercent = 30.0
	highVariabilityPercent        = 50.0
	highExpenseToIncomeRatio      = 0.8
	highSpendingReductionShare    = 0.2
)

// Expense and savings trend labels
const (
	TrendLabelIncreasing = "increasing"
	TrendLabelDecreasing = "decreasing"
	TrendLabelImproving  = "improving"
	TrendLabelDeclining  = "declining"
	TrendLabelStable     = "stable"
)

// MonthlyTotal is one row of the month-by-month comparison.
type MonthlyTotal struct {
	Month       string  `json:"month"`
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Savings     float64 `json:"savings"`
	SavingsRate float64 `json:"savings_rate"`
}

// CategoryStat describes how a category's monthly spend moves.
type CategoryStat struct {
	Category                string  `json:"category"`
	AvgMonthly              float64 `json:"avg_monthly"`
	MinMonthly              float64 `json:"min_monthly"`
	MaxMonthly              float64 `json:"max_monthly"`
	StdDev                  float64 `json:"std_dev"`
	VariabilityPercent      float64 `json:"variability_percent"`
	PotentialMonthlySavings float64 `json:"potential_monthly_savings"`
	IsOptimizable           bool    `json:"is_optimizable"`
	MonthsAnalyzed          int     `json:"months_analyzed"`
}

// OptimizationRecommendation is a concrete cost-cutting or income action.
type OptimizationRecommendation struct {
	Type             string  `json:"type"`
	Category         string  `json:"category"`
	Priority         string  `json:"priority"`
	Message          string  `json:"message"`
	PotentialSavings float64 `json:"potential_savings"`
}

// OptimizationSummary compares the current savings with what the
// recommendations could achieve.
type OptimizationSummary struct {
	AvgMonthlyIncome             float64 `json:"avg_monthly_income"`
	AvgMonthlyExpenses           float64 `json:"avg_monthly_expenses"`
	AvgMonthlySavings            float64 `json:"avg_monthly_savings"`
	CurrentSavingsRate           float64 `json:"current_savings_rate"`
	TotalPotentialMonthlySavings float64 `json:"total_potential_monthly_savings"`
	OptimizedMonthlySavings      float64 `json:"optimized_monthly_savings"`
	OptimizedSavingsRate         float64 `json:"optimized_savings_rate"`
	ImprovementPercent           float64 `json:"improvement_percent"`
	ExpenseTrend                 string  `json:"expense_trend"`
	SavingsTrend                 string  `json:"savings_trend"`
}

// Optimization is the spend-optimization analysis.
type Optimization struct {
	MonthlyComparison []MonthlyTotal               `json:"monthly_comparison"`
	CategoryAnalysis  []CategoryStat               `json:"category_analysis"`
	Recommendations   []OptimizationRecommendation `json:"recommendations"`
	Summary           OptimizationSummary          `json:"summary"`
}

// AnalyzeSpendingOptimization looks at the last numMonths months with any
// activity. Categories whose monthly spend varies by more than 30% or
// averages above 200 are optimizable; the three with the largest potential
// savings get a recommendation, and an expense-to-income ratio above 0.8 adds
// an income recommendation.
func AnalyzeSpendingOptimization(txs []models.Transaction, numMonths int) Optimization {
	months := recentMonths(txs, numMonths)
	inWindow := make(map[string]bool, len(months))
	for _, m := range months {
		inWindow[m] = true
	}
	recent := models.Filter(txs, func(tx models.Transaction) bool { return inWindow[tx.Month] })

	categories := categoryStats(models.Filter(recent, models.Transaction.IsExpense))
	comparison := monthlyComparison(recent, months)

	// The three optimizable categories with the largest potential savings
	// are considered, even when none of the rules below applies to one.
	var recs []OptimizationRecommendation
	considered := 0
	for _, c := range categories {
		if considered == maxCategoryRecommendations {
			break
		}
		if !c.IsOptimizable {
			continue
		}
		considered++
		if rec, ok := categoryRecommendation(c); ok {
			recs = append(recs, rec)
		}
	}

	incomes := make([]float64, len(comparison))
	expenses := make([]float64, len(comparison))
	for i, m := range comparison {
		incomes[i] = m.Income
		expenses[i] = m.Expenses
	}
	avgIncome := stats.Mean(incomes)
	avgExpenses := stats.Mean(expenses)

	if avgIncome > 0 && avgExpenses/avgIncome > highExpenseToIncomeRatio {
		recs = append(recs, OptimizationRecommendation{
			Type:     RecommendationIncreaseIncome,
			Category: "Income",
			Priority: "high",
			Message: fmt.Sprintf("Your expense-to-income ratio is high (%.0f%%). "+
				"Consider supplementary income sources or negotiating a raise.", avgExpenses/avgIncome*100),
		})
	}
	if recs == nil {
		recs = []OptimizationRecommendation{}
	}

	totalPotential := 0.0
	for _, r := range recs {
		totalPotential += r.PotentialSavings
	}

	currentSavings := avgIncome - avgExpenses
	optimizedSavings := currentSavings + totalPotential
	currentRate := 0.0
	optimizedRate := 0.0
	if avgIncome > 0 {
		currentRate = currentSavings / avgIncome * 100
		optimizedRate = optimizedSavings / avgIncome * 100
	}

	expenseTrend, savingsTrend := 0.0, 0.0
	if n := len(comparison); n >= 2 {
		expenseTrend = comparison[n-1].Expenses - comparison[0].Expenses
		savingsTrend = comparison[n-1].Savings - comparison[0].Savings
	}

	analysis := categories
	if len(analysis) > maxAnalyzedCategories {
		analysis = analysis[:maxAnalyzedCategories]
	}

	return Optimization{
		MonthlyComparison: comparison,
		CategoryAnalysis:  analysis,
		Recommendations:   recs,
		Summary: OptimizationSummary{
			AvgMonthlyIncome:             avgIncome,
			AvgMonthlyExpenses:           avgExpenses,
			AvgMonthlySavings:            currentSavings,
			CurrentSavingsRate:           currentRate,
			TotalPotentialMonthlySavings: totalPotential,
			OptimizedMonthlySavings:      optimizedSavings,
			OptimizedSavingsRate:         optimizedRate,
			ImprovementPercent:           optimizedRate - currentRate,
			ExpenseTrend:                 trendLabel(expenseTrend, TrendLabelIncreasing, TrendLabelDecreasing),
			SavingsTrend:                 trendLabel(savingsTrend, TrendLabelImproving, TrendLabelDeclining),
		},
	}
}

// recentMonths returns the last n distinct months with any transaction, in
// calendar order.
func recentMonths(txs []models.Transaction, n int) []string {
	seen := make(map[string]bool)
	var months []string
	for _, tx := range txs {
		if !seen[tx.Month] {
			seen[tx.Month] = true
			months = append(months, tx.Month)
		}
	}
	sort.Strings(months)
	if n > 0 && len(months) > n {
		months = months[len(months)-n:]
	}
	return months
}

// categoryStats summarizes the monthly spend of each category, largest
// potential savings first.
func categoryStats(expenses []models.Transaction) []CategoryStat {
	byCategory, order := groupByCategory(expenses)
	out := make([]CategoryStat, 0, len(order))
	for _, category := range order {
		monthly := stats.SumByMonth(byCategory[category]).Values
		avg := stats.Mean(monthly)
		lo, hi := stats.Min(monthly), stats.Max(monthly)
		std := stats.PopStdDev(monthly)
		variability := 0.0
		if avg > 0 {
			variability = std / avg * 100
		}
		out = append(out, CategoryStat{
			Category:                category,
			AvgMonthly:              avg,
			MinMonthly:              lo,
			MaxMonthly:              hi,
			StdDev:                  std,
			VariabilityPercent:      variability,
			PotentialMonthlySavings: (hi - lo) / float64(len(monthly)),
			IsOptimizable:           variability > optimizableVariabilityPercent || avg > highSpendingThreshold,
			MonthsAnalyzed:          len(monthly),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PotentialMonthlySavings > out[j].PotentialMonthlySavings
	})
	return out
}

func categoryRecommendation(c CategoryStat) (OptimizationRecommendation, bool) {
	switch {
	case c.VariabilityPercent > highVariabilityPercent:
		return OptimizationRecommendation{
			Type:     RecommendationReduceVariability,
			Category: c.Category,
			Priority: "high",
			Message: fmt.Sprintf("Your %s spending varies significantly (±%.0f%%). "+
				"If you can consistently spend closer to your minimum of %s, you could save %s/month.",
				c.Category, c.VariabilityPercent,
				currencyutils.FormatEuro(c.MinMonthly), currencyutils.FormatEuro(c.PotentialMonthlySavings)),
			PotentialSavings: c.PotentialMonthlySavings,
		}, true
	case c.AvgMonthly > highSpendingThreshold:
		saving := c.AvgMonthly * highSpendingReductionShare
		return OptimizationRecommendation{
			Type:     RecommendationReduceHighSpending,
			Category: c.Category,
			Priority: "medium",
			Message: fmt.Sprintf("%s averages %s/month. Reducing by 20%% could save %s/month.",
				c.Category, currencyutils.FormatEuro(c.AvgMonthly), currencyutils.FormatEuro(saving)),
			PotentialSavings: saving,
		}, true
	default:
		return OptimizationRecommendation{}, false
	}
}

func monthlyComparison(txs []models.Transaction, months []string) []MonthlyTotal {
	income := stats.SumByMonth(models.Filter(txs, models.Transaction.IsIncome))
	expenses := stats.SumByMonth(models.Filter(txs, models.Transaction.IsExpense))

	out := make([]MonthlyTotal, 0, len(months))
	for _, m := range months {
		in, ex := income.Get(m), expenses.Get(m)
		rate := 0.0
		if in > 0 {
			rate = (in - ex) / in * 100
		}
		out = append(out, MonthlyTotal{Month: m, Income: in, Expenses: ex, Savings: in - ex, SavingsRate: rate})
	}
	return out
}

func trendLabel(delta float64, up, down string) string {
	switch {
	case delta > 0:
		return up
	case delta < 0:
		return down
	default:
		return TrendLabelStable
	}
}
