package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"fjacquet/finhealth/internal/logging"
	"fjacquet/finhealth/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func tx(date string, amount float64, typ, category, description string) models.Transaction {
	d := day(date)
	return models.Transaction{
		Date:        d,
		Amount:      amount,
		Type:        typ,
		Category:    category,
		Description: description,
		Month:       models.MonthKey(d),
	}
}

func expense(date string, amount float64, category, description string) models.Transaction {
	return tx(date, amount, models.TypeExpense, category, description)
}

func income(date string, amount float64) models.Transaction {
	return tx(date, amount, models.TypeIncome, "Salary", "Salary")
}

func TestDetectRecurring_MonthlySubscription(t *testing.T) {
	txs := []models.Transaction{
		expense("2024-01-01", 12.99, "Entertainment", "Netflix"),
		expense("2024-02-01", 12.99, "Entertainment", "Netflix"),
		expense("2024-03-01", 12.99, "Entertainment", "Netflix"),
		expense("2024-04-01", 12.99, "Entertainment", "Netflix"),
		expense("2024-01-14", 85.10, "Groceries", "Grocery store"),
		expense("2024-02-03", 140.00, "Groceries", "Grocery store"),
		expense("2024-03-22", 61.45, "Groceries", "Grocery store"),
		income("2024-01-25", 3000),
	}

	got := DetectRecurring(txs, 3, 3, day("2024-04-15"))
	require.Len(t, got, 1)
	r := got[0]
	assert.Equal(t, "Netflix", r.Description)
	assert.InDelta(t, 12.99, r.Amount, 1e-9)
	assert.Equal(t, FrequencyMonthly, r.Frequency)
	assert.Equal(t, 4, r.Occurrences)
	assert.Equal(t, "2024-04-01", r.LastDate)
	assert.Equal(t, "2024-05-01", r.NextDue)
	assert.Equal(t, 30, r.AvgIntervalDays)
}

func TestDetectRecurring(t *testing.T) {
	weekly := []models.Transaction{}
	for _, d := range []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29"} {
		weekly = append(weekly, expense(d, 9.5, "Fitness", "Gym pass"))
	}

	tests := []struct {
		name      string
		txs       []models.Transaction
		now       string
		wantFreq  string
		wantDue   string
		wantCount int
	}{
		{name: "weekly", txs: weekly, now: "2024-02-01", wantFreq: FrequencyWeekly, wantDue: "2024-02-05", wantCount: 1},
		{name: "overdue", txs: weekly, now: "2024-03-01", wantFreq: FrequencyWeekly, wantDue: NextDueOverdue, wantCount: 1},
		{
			name: "too few occurrences",
			txs: []models.Transaction{
				expense("2024-01-01", 10, "Misc", "Spotify"),
				expense("2024-02-01", 10, "Misc", "Spotify"),
			},
			now: "2024-02-15",
		},
		{
			name: "amount varies",
			txs: []models.Transaction{
				expense("2024-01-01", 10, "Utilities", "Electricity"),
				expense("2024-02-01", 20, "Utilities", "Electricity"),
				expense("2024-03-01", 30, "Utilities", "Electricity"),
			},
			now: "2024-03-15",
		},
		{
			name: "irregular interval",
			txs: []models.Transaction{
				expense("2024-01-01", 10, "Misc", "Parking"),
				expense("2024-01-05", 10, "Misc", "Parking"),
				expense("2024-03-01", 10, "Misc", "Parking"),
			},
			now: "2024-03-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectRecurring(tt.txs, 3, 3, day(tt.now))
			require.Len(t, got, tt.wantCount)
			if tt.wantCount == 0 {
				assert.NotNil(t, got)
				return
			}
			assert.Equal(t, tt.wantFreq, got[0].Frequency)
			assert.Equal(t, tt.wantDue, got[0].NextDue)
		})
	}
}

func TestDetectRecurring_SharedPrefixReportedOnce(t *testing.T) {
	txs := []models.Transaction{
		expense("2024-01-03", 49.9, "Phone", "Swisscom mobile subscription invoice A"),
		expense("2024-02-03", 49.9, "Phone", "Swisscom mobile subscription invoice A"),
		expense("2024-03-03", 49.9, "Phone", "Swisscom mobile subscription invoice B"),
		expense("2024-04-03", 49.9, "Phone", "Swisscom mobile subscription invoice B"),
	}
	got := DetectRecurring(txs, 3, 3, day("2024-04-10"))

	// both descriptions share the same 20-character prefix
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Occurrences)
	assert.Equal(t, "Swisscom mobile subscription invoice A", got[0].Description)
}

func TestFrequencyFor(t *testing.T) {
	assert.Equal(t, FrequencyMonthly, frequencyFor(30))
	assert.Equal(t, FrequencyWeekly, frequencyFor(7))
	assert.Equal(t, FrequencyBiWeekly, frequencyFor(14))
	assert.Equal(t, "Every 90 days", frequencyFor(90.4))
	assert.Equal(t, "Every 3 days", frequencyFor(3))
}

func TestCalculateMonthlyTrends(t *testing.T) {
	txs := []models.Transaction{
		income("2024-01-25", 1000),
		income("2024-03-25", 1200),
		expense("2024-01-05", 500, "Rent", "Rent"),
		expense("2024-02-05", 600, "Rent", "Rent"),
		expense("2024-03-05", 300, "Rent", "Rent"),
	}

	got := CalculateMonthlyTrends(txs, 6)
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, got.Months)
	assert.Equal(t, []float64{1000, 0, 1200}, got.Income)
	assert.Equal(t, []float64{500, 600, 300}, got.Expenses)
	assert.Equal(t, []float64{500, -600, 900}, got.Savings)
	assert.Equal(t, 0.0, got.MoMIncomeChange)
	assert.InDelta(t, -50, got.MoMExpenseChange, 1e-9)

	last := CalculateMonthlyTrends(txs, 2)
	assert.Equal(t, []string{"2024-02", "2024-03"}, last.Months)

	empty := CalculateMonthlyTrends(nil, 6)
	assert.NotNil(t, empty.Months)
	assert.Empty(t, empty.Months)
}

func TestPredictNextMonth(t *testing.T) {
	tests := []struct {
		name       string
		expenses   []float64
		want       float64
		trend      string
		confidence string
	}{
		{name: "no data", expenses: nil, want: 0, confidence: ConfidenceLow},
		{name: "single month", expenses: []float64{50}, want: 50, confidence: ConfidenceLow},
		{name: "perfect line", expenses: []float64{100, 200, 300}, want: 400, trend: TrendIncreasing, confidence: ConfidenceHigh},
		{name: "clamped at zero", expenses: []float64{300, 200, 100, 0}, want: 0, trend: TrendDecreasing, confidence: ConfidenceHigh},
		{name: "flat", expenses: []float64{100, 100}, want: 100, trend: TrendStable, confidence: ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PredictNextMonth(tt.expenses)
			assert.InDelta(t, tt.want, got.PredictedExpenses, 1e-9)
			assert.Equal(t, tt.trend, got.Trend)
			assert.Equal(t, tt.confidence, got.Confidence)
		})
	}
}

func TestAnalyzeCategoryTrends(t *testing.T) {
	txs := []models.Transaction{
		expense("2024-01-05", 100, "Dining", "Cafe"),
		expense("2024-01-06", 1000, "Rent", "Rent"),
		expense("2024-02-06", 1000, "Rent", "Rent"),
		expense("2024-02-08", 50, "Books", "Bookshop"),
		expense("2024-02-09", 300, "Dining", "Restaurant"),
		income("2024-01-25", 3000),
	}

	got := AnalyzeCategoryTrends(txs, 2)
	require.Len(t, got, 2)
	assert.Equal(t, CategoryTrend{
		Category:   "Rent",
		Months:     []string{"2024-01", "2024-02"},
		Amounts:    []float64{1000, 1000},
		Total:      2000,
		AvgMonthly: 1000,
	}, got[0])
	assert.Equal(t, "Dining", got[1].Category)
	assert.InDelta(t, 200, got[1].AvgMonthly, 1e-9)
}

func TestCalculateBudgetStatus(t *testing.T) {
	txs := []models.Transaction{
		expense("2024-01-10", 500, "Groceries", "Market"),
		expense("2024-02-10", 450, "Groceries", "Market"),
		expense("2024-02-11", 90, "Dining", "Cafe"),
		expense("2024-02-12", 20, "Transport", "Bus"),
	}
	budgets := map[string]float64{"Transport": 100, "Groceries": 400, "Travel": 0, "Dining": 100}

	got := CalculateBudgetStatus(txs, budgets)
	require.Len(t, got, 4)

	assert.Equal(t, BudgetStatus{
		Category: "Groceries", Budget: 400, Spent: 450, Remaining: -50, PercentUsed: 112.5, Status: BudgetOver,
	}, got[0])
	assert.Equal(t, "Dining", got[1].Category)
	assert.Equal(t, BudgetWarning, got[1].Status)
	assert.Equal(t, "Transport", got[2].Category)
	assert.Equal(t, BudgetGood, got[2].Status)
	assert.Equal(t, BudgetStatus{Category: "Travel", Status: BudgetGood}, got[3])

	assert.Empty(t, CalculateBudgetStatus(nil, budgets))
	assert.Empty(t, CalculateBudgetStatus(txs, nil))
}

func TestDetectOutliers_Boundary(t *testing.T) {
	var txs []models.Transaction
	for i, amount := range []float64{10, 10, 10, 10, 100} {
		txs = append(txs, expense("2024-01-0"+string(rune('1'+i)), amount, "Snacks", "Kiosk"))
	}

	// mean 28, population stdev 36: the limit at k=2 is exactly 100
	assert.Empty(t, DetectOutliers(txs, 2.0))

	got := DetectOutliers(txs, 1.9)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-01-05", got[0].Date)
	assert.InDelta(t, 100, got[0].Amount, 1e-9)
	assert.InDelta(t, 28, got[0].TypicalAmount, 1e-9)
	assert.InDelta(t, 2.0, got[0].Deviation, 1e-9)
}

func TestDetectOutliers_SkipsSmallAndFlatCategories(t *testing.T) {
	txs := []models.Transaction{
		expense("2024-01-01", 10, "Small", "a"),
		expense("2024-01-02", 1000, "Small", "b"),
		expense("2024-01-03", 20, "Flat", "c"),
		expense("2024-01-04", 20, "Flat", "d"),
		expense("2024-01-05", 20, "Flat", "e"),
	}
	got := DetectOutliers(txs, 0.5)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDetectOutliers_TopTen(t *testing.T) {
	var txs []models.Transaction
	for i := 0; i < 12; i++ {
		category := string(rune('A' + i))
		for j := 0; j < 9; j++ {
			txs = append(txs, expense("2024-01-10", 10, category, "usual"))
		}
		txs = append(txs, expense("2024-01-11", float64(100+i), category, "spike"))
	}
	got := DetectOutliers(txs, 2.0)
	require.Len(t, got, 10)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Deviation, got[i].Deviation)
	}
}

func TestProjectSavingsGoals(t *testing.T) {
	goals := []models.Goal{
		{Name: "Car", Target: 8000},
		{Name: "House", Target: 25000},
		{Name: "Retire", Target: 100000},
		{Name: "Emergency", Target: 3000},
	}
	got := ProjectSavingsGoals(5000, 1000, goals, day("2024-01-01"))
	require.Len(t, got, 4)

	require.NotNil(t, got[0].MonthsNeeded)
	assert.InDelta(t, 3, *got[0].MonthsNeeded, 1e-9)
	assert.Equal(t, "2024-03-31", got[0].ProjectedDate)
	assert.Equal(t, GoalOnTrack, got[0].Status)
	assert.InDelta(t, 62.5, got[0].ProgressPercent, 1e-9)

	assert.Equal(t, GoalAtRisk, got[1].Status)
	assert.Equal(t, GoalOffTrack, got[2].Status)

	assert.Equal(t, GoalAchieved, got[3].Status)
	assert.Equal(t, 0.0, got[3].Remaining)
	assert.Equal(t, 100.0, got[3].ProgressPercent)
}

func TestProjectSavingsGoals_NoSavings(t *testing.T) {
	got := ProjectSavingsGoals(1000, 0, []models.Goal{{Name: "Trip", Target: 2000}}, day("2024-01-01"))
	require.Len(t, got, 1)
	assert.Nil(t, got[0].MonthsNeeded)
	assert.Equal(t, ProjectedUnknown, got[0].ProjectedDate)
	assert.Equal(t, GoalOffTrack, got[0].Status)

	raw, err := json.Marshal(got[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"months_needed":null`)
}

func TestAnalyzeSpendingOptimization(t *testing.T) {
	var txs []models.Transaction
	dining := []float64{100, 300, 200}
	shopping := []float64{50, 400, 50}
	for i, m := range []string{"01", "02", "03"} {
		txs = append(txs,
			income("2024-"+m+"-25", 3000),
			expense("2024-"+m+"-01", 1000, "Rent", "Rent"),
			expense("2024-"+m+"-10", dining[i], "Dining", "Restaurants"),
			expense("2024-"+m+"-15", shopping[i], "Shopping", "Mall"),
		)
	}

	got := AnalyzeSpendingOptimization(txs, 6)

	require.Len(t, got.MonthlyComparison, 3)
	assert.Equal(t, MonthlyTotal{Month: "2024-01", Income: 3000, Expenses: 1150, Savings: 1850, SavingsRate: 1850.0 / 3000 * 100}, got.MonthlyComparison[0])

	require.Len(t, got.CategoryAnalysis, 3)
	assert.Equal(t, "Shopping", got.CategoryAnalysis[0].Category)
	assert.Equal(t, "Dining", got.CategoryAnalysis[1].Category)
	assert.Equal(t, "Rent", got.CategoryAnalysis[2].Category)
	assert.True(t, got.CategoryAnalysis[1].IsOptimizable)

	require.Len(t, got.Recommendations, 2)
	assert.Equal(t, RecommendationReduceVariability, got.Recommendations[0].Type)
	assert.Equal(t, "Your Shopping spending varies significantly (±99%). "+
		"If you can consistently spend closer to your minimum of €50.00, you could save €116.67/month.",
		got.Recommendations[0].Message)
	assert.Equal(t, RecommendationReduceHighSpending, got.Recommendations[1].Type)
	assert.Equal(t, "Rent averages €1000.00/month. Reducing by 20% could save €200.00/month.",
		got.Recommendations[1].Message)

	s := got.Summary
	assert.InDelta(t, 3000, s.AvgMonthlyIncome, 1e-9)
	assert.InDelta(t, 4100.0/3, s.AvgMonthlyExpenses, 1e-9)
	assert.InDelta(t, 350.0/3+200, s.TotalPotentialMonthlySavings, 1e-9)
	assert.InDelta(t, s.OptimizedSavingsRate-s.CurrentSavingsRate, s.ImprovementPercent, 1e-9)
	assert.Equal(t, TrendLabelIncreasing, s.ExpenseTrend)
	assert.Equal(t, TrendLabelDeclining, s.SavingsTrend)
}

func TestAnalyzeSpendingOptimization_IncomeRecommendation(t *testing.T) {
	txs := []models.Transaction{
		income("2024-01-25", 1000),
		expense("2024-01-05", 900, "Misc", "Stuff"),
	}
	got := AnalyzeSpendingOptimization(txs, 6)

	require.Len(t, got.Recommendations, 2)
	rec := got.Recommendations[1]
	assert.Equal(t, RecommendationIncreaseIncome, rec.Type)
	assert.Equal(t, "Income", rec.Category)
	assert.Equal(t, "Your expense-to-income ratio is high (90%). "+
		"Consider supplementary income sources or negotiating a raise.", rec.Message)
	assert.Equal(t, TrendLabelStable, got.Summary.ExpenseTrend)
}

func TestAnalyzeSpendingOptimization_Empty(t *testing.T) {
	got := AnalyzeSpendingOptimization(nil, 6)
	assert.NotNil(t, got.Recommendations)
	assert.Empty(t, got.MonthlyComparison)
	assert.Equal(t, 0.0, got.Summary.CurrentSavingsRate)
}

func TestBuildOverview(t *testing.T) {
	ds := models.Dataset{
		Transactions: []models.Transaction{
			income("2024-01-25", 3000),
			expense("2024-01-05", 1000, "Rent", "Rent"),
			expense("2024-01-20", 500, "Food", "Market"),
			expense("2024-02-10", 100, "Fun", "Cinema"),
		},
		Accounts: []models.Account{
			{Type: "savings", Balance: 2000},
			{Type: "checking", Balance: 5000},
		},
	}
	got := BuildOverview(ds)

	assert.InDelta(t, 3000, got.Income, 1e-9)
	assert.InDelta(t, 1600, got.Expenses, 1e-9)
	assert.InDelta(t, 1400.0/3000, got.SavingsRate, 1e-9)
	assert.InDelta(t, 2000, got.LiquidSavings, 1e-9)
	assert.InDelta(t, 1800, got.TargetEmergency, 1e-9)
	assert.True(t, got.HasEmergencyFund)
	assert.Empty(t, got.Alerts)
	assert.Empty(t, got.Recommendations)
	assert.InDelta(t, 46.7, got.Benchmarks.YourSavingsRate, 1e-9)
	assert.Equal(t, 12.0, got.Benchmarks.AgeGroupAverage)

	require.Len(t, got.Overspending, 2)
	assert.Equal(t, "Rent", got.Overspending[0].Category)
	assert.InDelta(t, 0.625, got.Overspending[0].Percent, 1e-9)
	assert.Equal(t, "Food", got.Overspending[1].Category)
	assert.Len(t, got.CategoryBreakdown, 3)
}

func TestBuildOverview_Deficit(t *testing.T) {
	ds := models.Dataset{Transactions: []models.Transaction{
		income("2024-01-25", 1000),
		expense("2024-01-05", 2000, "Rent", "Rent"),
	}}
	got := BuildOverview(ds)

	assert.Equal(t, []string{AlertSpendingExceedsIncome, AlertNoEmergencyFund, AlertLowSavingsRate}, got.Alerts)
	assert.Equal(t, []string{"Reduce discretionary spend by 15% to free €300/month"}, got.Recommendations)
}

func TestAnalyzer_Analyze(t *testing.T) {
	var txs []models.Transaction
	for _, m := range []string{"01", "02", "03", "04"} {
		txs = append(txs,
			income("2024-"+m+"-25", 3000),
			expense("2024-"+m+"-01", 12.99, "Entertainment", "Netflix"),
			expense("2024-"+m+"-03", 1000, "Rent", "Rent"),
		)
	}
	savings := 4000.0
	profile := &models.UserProfile{
		Goals:          []models.Goal{{Name: "Car", Target: 10000}},
		Budgets:        map[string]float64{"Rent": 1200},
		CurrentSavings: &savings,
	}
	ds := models.Dataset{Transactions: txs, Accounts: []models.Account{{Type: "savings", Balance: 9000}}}

	logger := logging.NewMockLogger()
	analyzer := NewAnalyzer(Options{Now: func() time.Time { return day("2024-04-15") }}, logger)
	report := analyzer.Analyze(ds, profile)

	assert.Equal(t, 6, analyzer.Options().Months)
	require.Len(t, report.Recurring, 2)
	assert.Equal(t, "Rent", report.Recurring[0].Description)
	assert.Equal(t, "Netflix", report.Recurring[1].Description)
	assert.Equal(t, "2024-05-01", report.Recurring[1].NextDue)

	require.Len(t, report.SavingsGoals, 1)
	assert.Equal(t, 4000.0, report.SavingsGoals[0].Current)
	assert.Equal(t, GoalOnTrack, report.SavingsGoals[0].Status)

	require.Len(t, report.BudgetStatus, 1)
	assert.InDelta(t, 1000, report.BudgetStatus[0].Spent, 1e-9)

	assert.Len(t, report.MonthlyTrends.Months, 4)
	assert.InDelta(t, 1012.99, report.Prediction.PredictedExpenses, 1e-6)
	assert.True(t, logger.HasEntry("INFO", "Analytics complete"))

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{
		"monthly_comparison", "category_analysis", "recommendations", "summary",
		"overview", "monthly_trends", "prediction", "category_trends",
		"recurring_transactions", "unusual_spending", "budget_status", "savings_goals",
	} {
		assert.Contains(t, decoded, key)
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{Months: 3}.withDefaults()
	assert.Equal(t, 3, opts.Months)
	assert.Equal(t, 5, opts.TopCategories)
	assert.Equal(t, 2.0, opts.OutlierThreshold)
	assert.Equal(t, 3, opts.RecurringMinOccurrences)
	assert.Equal(t, 3, opts.RecurringToleranceDays)
	assert.NotNil(t, opts.Now)
}
