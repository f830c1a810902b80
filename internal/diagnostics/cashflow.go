package diagnostics

import (
	"sort"

	"fjacquet/finhealth/internal/models"
	"fjacquet/finhealth/internal/stats"
)

// GapNoIncome is recorded when the dataset has no income rows.
const GapNoIncome = "No income data found - unable to assess income stability"

func diagnoseIncome(in *input, f *Findings) IncomeDiagnostic {
	if len(in.income) == 0 {
		f.AddGap(GapNoIncome)
		return IncomeDiagnostic{CategoryResult: CategoryResult{Score: 0, Status: StatusCritical}}
	}

	monthly := in.monthlyIncome
	avg := monthly.Mean()
	// One month has no spread: stability is reported as 0 and earns nothing.
	stability := 0.0
	if monthly.Len() > 1 {
		stability = 1 - stats.SafeDiv(stats.SampleStdDev(monthly.Values), avg, 1)
	}

	sources := incomeSources(in.income)
	total := stats.Sum(amounts(in.income))
	primaryDependency := 1.0
	if total > 0 {
		primaryDependency = sources[0].Total / total
	}

	score := 0
	switch {
	case avg > 3000:
		score += 30
	case avg > 2000:
		score += 20
	case avg > 1000:
		score += 10
	}

	switch {
	case monthly.Len() < 2:
	case stability > 0.8:
		score += 30
	case stability > 0.6:
		score += 20
	case stability > 0.4:
		score += 10
	}

	switch {
	case primaryDependency < 0.8:
		score += 20
	case primaryDependency < 0.95:
		score += 10
	}

	if recent, older, ok := trailingVsPrior(monthly.Values); ok {
		switch {
		case recent > older*1.1:
			score += 20
		case recent > older:
			score += 10
		}
	}

	if score > 100 {
		score = 100
	}

	top := sources
	if len(top) > 5 {
		top = top[:5]
	}

	return IncomeDiagnostic{
		CategoryResult: scored(score),
		IncomeMetrics: &IncomeMetrics{
			AvgMonthlyIncome:  avg,
			Stability:         stability,
			Sources:           len(sources),
			PrimaryDependency: primaryDependency,
			TopSources:        top,
		},
	}
}

// incomeSources groups income by description, largest total first.
func incomeSources(income []models.Transaction) []IncomeSource {
	index := make(map[string]int)
	var sources []IncomeSource
	for _, tx := range income {
		i, ok := index[tx.Description]
		if !ok {
			i = len(sources)
			index[tx.Description] = i
			sources = append(sources, IncomeSource{Description: tx.Description})
		}
		sources[i].Total += tx.Amount
		sources[i].Count++
	}
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Total > sources[j].Total
	})
	return sources
}

// trailingVsPrior compares the mean of the last three months with the mean
// of the months before them. With exactly three months the prior mean equals
// the trailing one.
func trailingVsPrior(values []float64) (recent, older float64, ok bool) {
	if len(values) < 3 {
		return 0, 0, false
	}
	recent = stats.Mean(values[len(values)-3:])
	older = recent
	if len(values) > 3 {
		older = stats.Mean(values[:len(values)-3])
	}
	return recent, older, true
}

func diagnoseExpenses(in *input, f *Findings) ExpenseDiagnostic {
	if len(in.expenses) == 0 {
		return ExpenseDiagnostic{CategoryResult: CategoryResult{Score: 50, Status: StatusUnknown}}
	}

	avgExpenses := in.monthlyExpenses.Mean()
	categories := spendingByCategory(in.expenses)

	total := stats.Sum(amounts(in.expenses))
	essential := 0.0
	for _, c := range categories {
		if models.ContainsAny(c.Category, in.keywords.Essential) {
			essential += c.Amount
		}
	}
	essentialRatio := stats.SafeDiv(essential, total, 0)

	avgIncome := in.avgMonthlyIncome(0)
	expenseRatio := 1.0
	if avgIncome > 0 {
		expenseRatio = avgExpenses / avgIncome
	}

	score := 0
	switch {
	case expenseRatio < 0.5:
		score += 40
	case expenseRatio < 0.7:
		score += 30
	case expenseRatio < 0.9:
		score += 20
	default:
		f.AddRisk("High expense ratio: %.0f%% of income", expenseRatio*100)
	}

	switch {
	case essentialRatio > 0.5 && essentialRatio < 0.8:
		score += 30
	case essentialRatio >= 0.8:
		score += 20
	default:
		score += 10
	}

	if recent, older, ok := trailingVsPrior(in.monthlyExpenses.Values); ok {
		switch {
		case recent < older*1.1:
			score += 30
		case recent < older*1.2:
			score += 15
		}
	}

	top := categories
	if len(top) > 5 {
		top = top[:5]
	}

	return ExpenseDiagnostic{
		CategoryResult: scored(score),
		ExpenseMetrics: &ExpenseMetrics{
			AvgMonthlyExpenses: avgExpenses,
			ExpenseRatio:       expenseRatio,
			EssentialRatio:     essentialRatio,
			TopCategories:      top,
		},
	}
}

// spendingByCategory totals expenses per category, largest first and by name
// on ties.
func spendingByCategory(expenses []models.Transaction) []CategoryAmount {
	totals := make(map[string]float64)
	for _, tx := range expenses {
		totals[tx.Category] += tx.Amount
	}
	out := make([]CategoryAmount, 0, len(totals))
	for c, a := range totals {
		out = append(out, CategoryAmount{Category: c, Amount: a})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func diagnoseBudgeting(in *input, f *Findings) BudgetDiagnostic {
	if len(in.income) == 0 || len(in.expenses) == 0 {
		return BudgetDiagnostic{CategoryResult: CategoryResult{Score: 50, Status: StatusUnknown}}
	}

	net := in.monthlyNet()
	avgNet := net.Mean()
	avgIncome := stats.Mean(in.monthlyIncome.Align(net.Months))

	savingsRate := 0.0
	if avgIncome > 0 {
		savingsRate = avgNet / avgIncome * 100
	}

	consistency := 0.0
	if avgNet != 0 {
		consistency = 1 - stats.SampleStdDev(net.Values)/avgNet
	}
	consistency = stats.Clamp(consistency, 0, 1)

	overspending := 0
	for _, v := range net.Values {
		if v < 0 {
			overspending++
		}
	}
	totalMonths := net.Len()

	score := 0
	switch {
	case savingsRate >= 20:
		score += 40
	case savingsRate >= 15:
		score += 30
	case savingsRate >= 10:
		score += 20
	case savingsRate > 0:
		score += 10
	default:
		f.AddRisk("Negative savings rate: %.1f%%", savingsRate)
	}

	switch {
	case overspending == 0:
		score += 30
	case float64(overspending) <= float64(totalMonths)*0.2:
		score += 20
	case float64(overspending) <= float64(totalMonths)*0.4:
		score += 10
	default:
		f.AddRisk("Frequent overspending: %d/%d months", overspending, totalMonths)
	}

	switch {
	case consistency > 0.7:
		score += 30
	case consistency > 0.5:
		score += 20
	case consistency > 0.3:
		score += 10
	}

	return BudgetDiagnostic{
		CategoryResult: scored(score),
		BudgetMetrics: &BudgetMetrics{
			AvgSavingsRate:     savingsRate,
			OverspendingMonths: overspending,
			TotalMonths:        totalMonths,
			SavingsConsistency: consistency,
		},
	}
}

func diagnoseBehavior(in *input, _ *Findings) BehaviorDiagnostic {
	expenseMean := in.monthlyExpenses.Mean()
	volatility := 0.0
	volatilityKnown := in.monthlyExpenses.Len() != 1
	if in.monthlyExpenses.Len() > 1 && expenseMean > 0 {
		volatility = stats.SampleStdDev(in.monthlyExpenses.Values) / expenseMean
	}

	net := in.monthlyNet()
	positive := 0
	for _, v := range net.Values {
		if v > 0 {
			positive++
		}
	}
	totalMonths := net.Len()
	if totalMonths == 0 {
		totalMonths = 1
	}
	discipline := float64(positive) / float64(totalMonths)
	perMonth := float64(len(in.all)) / float64(totalMonths)

	score := 0
	switch {
	case !volatilityKnown:
	case volatility < 0.2:
		score += 30
	case volatility < 0.4:
		score += 20
	case volatility < 0.6:
		score += 10
	}

	switch {
	case discipline >= 0.9:
		score += 40
	case discipline >= 0.75:
		score += 30
	case discipline >= 0.5:
		score += 20
	case discipline > 0:
		score += 10
	}

	// More transactions per month reads as fragmented spending.
	switch {
	case perMonth < 100:
		score += 30
	case perMonth < 200:
		score += 20
	case perMonth < 300:
		score += 10
	}

	return BehaviorDiagnostic{
		CategoryResult: scored(score),
		BehaviorMetrics: &BehaviorMetrics{
			ExpenseVolatility:       volatility,
			SavingsDiscipline:       discipline,
			AvgTransactionsPerMonth: int(perMonth),
		},
	}
}
