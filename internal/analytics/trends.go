package analytics

import (
	"math"
	"sort"

	"fjacquet/finhealth/internal/models"
	"fjacquet/finhealth/internal/stats"
)

// Forecast confidence levels
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// Forecast directions
const (
	TrendIncreasing = "Increasing"
	TrendDecreasing = "Decreasing"
	TrendStable     = "Stable"
)

// MonthlyTrends holds income, expenses and savings per calendar month.
type MonthlyTrends struct {
	Months           []string  `json:"months"`
	Income           []float64 `json:"income"`
	Expenses         []float64 `json:"expenses"`
	Savings          []float64 `json:"savings"`
	MoMIncomeChange  float64   `json:"mom_income_change"`
	MoMExpenseChange float64   `json:"mom_expense_change"`
}

// CalculateMonthlyTrends sums income and expenses for every month with
// activity, keeps the last numMonths of them and computes the percentage
// change between the two most recent months. A change against a zero month
// is reported as 0.
func CalculateMonthlyTrends(txs []models.Transaction, numMonths int) MonthlyTrends {
	income := stats.SumByMonth(models.Filter(txs, models.Transaction.IsIncome))
	expenses := stats.SumByMonth(models.Filter(txs, models.Transaction.IsExpense))

	months := stats.NetByMonth(income, expenses).Months
	if numMonths > 0 && len(months) > numMonths {
		months = months[len(months)-numMonths:]
	}

	trends := MonthlyTrends{
		Months:   append([]string{}, months...),
		Income:   income.Align(months),
		Expenses: expenses.Align(months),
		Savings:  make([]float64, len(months)),
	}
	for i := range months {
		trends.Savings[i] = trends.Income[i] - trends.Expenses[i]
	}

	if n := len(months); n >= 2 {
		trends.MoMIncomeChange = percentChange(trends.Income[n-2], trends.Income[n-1])
		trends.MoMExpenseChange = percentChange(trends.Expenses[n-2], trends.Expenses[n-1])
	}
	return trends
}

func percentChange(prev, cur float64) float64 {
	if prev <= 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}

// Prediction is the linear forecast of next month's expenses.
type Prediction struct {
	PredictedExpenses float64 `json:"predicted_expenses"`
	Trend             string  `json:"trend,omitempty"`
	Confidence        string  `json:"confidence"`
	RSquared          float64 `json:"r_squared"`
}

// PredictNextMonth fits a least-squares line through the monthly expenses and
// evaluates it one month ahead. With fewer than two months the last value is
// repeated with low confidence. The forecast never goes below zero.
func PredictNextMonth(expenses []float64) Prediction {
	if len(expenses) < 2 {
		p := Prediction{Confidence: ConfidenceLow}
		if len(expenses) == 1 {
			p.PredictedExpenses = expenses[0]
		}
		return p
	}

	fit := stats.FitLine(expenses)
	p := Prediction{
		PredictedExpenses: math.Max(0, fit.Predict(float64(len(expenses)))),
		Confidence:        confidenceFor(fit.RSquared),
		RSquared:          fit.RSquared,
	}
	switch {
	case fit.Slope > 0:
		p.Trend = TrendIncreasing
	case fit.Slope < 0:
		p.Trend = TrendDecreasing
	default:
		p.Trend = TrendStable
	}
	return p
}

func confidenceFor(r2 float64) string {
	switch {
	case r2 > 0.7:
		return ConfidenceHigh
	case r2 > 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// CategoryTrend is the monthly spending series of one category.
type CategoryTrend struct {
	Category   string    `json:"category"`
	Months     []string  `json:"months"`
	Amounts    []float64 `json:"amounts"`
	Total      float64   `json:"total"`
	AvgMonthly float64   `json:"avg_monthly"`
}

// AnalyzeCategoryTrends returns the monthly series of the topN categories by
// total spend, largest first. Each series only covers months in which the
// category had spending.
func AnalyzeCategoryTrends(txs []models.Transaction, topN int) []CategoryTrend {
	expenses := models.Filter(txs, models.Transaction.IsExpense)
	byCategory, order := groupByCategory(expenses)

	trends := make([]CategoryTrend, 0, len(order))
	for _, category := range order {
		rows := byCategory[category]
		monthly := stats.SumByMonth(rows)
		trends = append(trends, CategoryTrend{
			Category:   category,
			Months:     monthly.Months,
			Amounts:    monthly.Values,
			Total:      stats.Sum(monthly.Values),
			AvgMonthly: monthly.Mean(),
		})
	}

	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].Total > trends[j].Total
	})
	if topN > 0 && len(trends) > topN {
		trends = trends[:topN]
	}
	return trends
}

// groupByCategory splits transactions per category and returns the
// categories in order of first appearance.
func groupByCategory(txs []models.Transaction) (map[string][]models.Transaction, []string) {
	groups := make(map[string][]models.Transaction)
	var order []string
	for _, tx := range txs {
		if _, ok := groups[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		groups[tx.Category] = append(groups[tx.Category], tx)
	}
	return groups, order
}
