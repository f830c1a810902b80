package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightsSumToOne(t *testing.T) {
	total := 0.0
	for _, w := range Weights {
		total += w
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.Len(t, Weights, 10)
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.9, "A"},
		{85, "A"},
		{84.9, "A-"},
		{80, "A-"},
		{75, "B+"},
		{70, "B"},
		{65, "B-"},
		{60, "C+"},
		{55, "C"},
		{50, "C-"},
		{45, "D+"},
		{40, "D"},
		{39.9, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.score), "score %v", tt.score)
	}
}

func TestOverallScore(t *testing.T) {
	var d Diagnostics
	assert.Equal(t, 0.0, OverallScore(d))

	d.Income.Score = 100
	d.Expenses.Score = 100
	d.Debt.Score = 100
	d.Assets.Score = 100
	d.Insurance.Score = 100
	d.Goals.Score = 100
	d.Budgeting.Score = 100
	d.Credit.Score = 100
	d.Tax.Score = 100
	d.Behavior.Score = 100
	assert.InDelta(t, 100.0, OverallScore(d), 1e-9)

	d.Income.Score = 50
	d.Tax.Score = 0
	assert.InDelta(t, 87.5, OverallScore(d), 1e-9)
}

func TestGenerateRecommendations(t *testing.T) {
	var d Diagnostics
	d.Income.Score = 80
	d.Expenses.ExpenseMetrics = &ExpenseMetrics{AvgMonthlyExpenses: 1000, ExpenseRatio: 0.95}
	d.Debt.DebtMetrics = &DebtMetrics{DebtToIncome: 0.2}
	d.Assets.AssetMetrics = &AssetMetrics{EmergencyFundMonths: 6}
	d.Budgeting.BudgetMetrics = &BudgetMetrics{AvgSavingsRate: 20}

	recs := GenerateRecommendations(d)
	require.Len(t, recs, 1)
	assert.Equal(t, Recommendation{
		Category: "Expenses",
		Priority: PriorityHigh,
		Action:   "Reduce discretionary spending - aim for 70-80% expense-to-income ratio",
		Impact:   "Could save €200.00/month",
	}, recs[0])

	d.Debt.DebtMetrics.DebtToIncome = 0.4
	recs = GenerateRecommendations(d)
	require.Len(t, recs, 2)
	assert.Equal(t, "Debt", recs[1].Category)
	assert.Equal(t, PriorityCritical, recs[1].Priority)
}

func TestGenerateRecommendations_MissingBudgetCountsAsNoSavings(t *testing.T) {
	var d Diagnostics
	d.Income.Score = 90
	recs := GenerateRecommendations(d)
	require.Len(t, recs, 1)
	assert.Equal(t, "Savings", recs[0].Category)
}

func TestGenerateQuestionnaire(t *testing.T) {
	t.Run("dedup keeps first occurrence", func(t *testing.T) {
		gaps := []string{
			"No insurance payments detected",
			"Insurance documents missing",
			"No financial goals defined",
			"Goals unclear",
		}
		qs := GenerateQuestionnaire(gaps, nil)

		ids := make([]string, 0, len(qs))
		for _, q := range qs {
			ids = append(ids, q.ID)
		}
		assert.Equal(t, []string{QuestionInsuranceCoverage, QuestionFinancialGoals, QuestionRiskTolerance}, ids)
		assert.Equal(t, "What are your top 3 financial goals for the next 5 years?", qs[1].Question)
	})

	t.Run("fallback goals question", func(t *testing.T) {
		qs := GenerateQuestionnaire(nil, nil)
		require.Len(t, qs, 1)
		assert.Equal(t, QuestionFinancialGoals, qs[0].ID)
		assert.Equal(t, "What are your top 3 financial goals?", qs[0].Question)
	})

	t.Run("nothing to ask", func(t *testing.T) {
		qs := GenerateQuestionnaire(nil, goalProfile())
		assert.NotNil(t, qs)
		assert.Empty(t, qs)
	})

	t.Run("debt needs the no debt wording", func(t *testing.T) {
		qs := GenerateQuestionnaire([]string{"High debt load"}, goalProfile())
		assert.Empty(t, qs)

		qs = GenerateQuestionnaire([]string{GapNoDebt}, goalProfile())
		require.Len(t, qs, 2)
		assert.Equal(t, QuestionDebtConfirmation, qs[0].ID)
		assert.Equal(t, "yes_no", qs[0].Type)
		assert.Equal(t, QuestionCreditScore, qs[1].ID)
		assert.False(t, qs[1].Required)
	})

	t.Run("options are not shared", func(t *testing.T) {
		qs := GenerateQuestionnaire([]string{GapNoInsurance}, goalProfile())
		require.Len(t, qs, 1)
		qs[0].Options[0] = "changed"

		again := GenerateQuestionnaire([]string{GapNoInsurance}, goalProfile())
		assert.Equal(t, "Health", again[0].Options[0])
	})
}

func TestFindings_ReturnCopies(t *testing.T) {
	f := NewFindings()
	assert.NotNil(t, f.Gaps())
	assert.NotNil(t, f.Risks())

	f.AddGap("a")
	f.AddRisk("ratio %d%%", 50)
	gaps := f.Gaps()
	gaps[0] = "mutated"

	assert.Equal(t, []string{"a"}, f.Gaps())
	assert.Equal(t, []string{"ratio 50%"}, f.Risks())
}

func TestStatusForScore(t *testing.T) {
	assert.Equal(t, StatusExcellent, StatusForScore(80))
	assert.Equal(t, StatusGood, StatusForScore(79))
	assert.Equal(t, StatusGood, StatusForScore(60))
	assert.Equal(t, StatusFair, StatusForScore(40))
	assert.Equal(t, StatusPoor, StatusForScore(39))
	assert.Equal(t, StatusPoor, StatusForScore(0))
}
