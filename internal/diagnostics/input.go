package diagnostics

import (
	"fjacquet/finhealth/internal/models"
	"fjacquet/finhealth/internal/stats"
)

// input is the precomputed view of a dataset shared by the classifiers.
type input struct {
	all             []models.Transaction
	accounts        []models.Account
	profile         *models.UserProfile
	keywords        models.KeywordTables
	income          []models.Transaction
	expenses        []models.Transaction
	monthlyIncome   stats.MonthlySeries
	monthlyExpenses stats.MonthlySeries
}

func newInput(ds models.Dataset, profile *models.UserProfile, keywords models.KeywordTables) *input {
	income := ds.Income()
	expenses := ds.Expenses()
	return &input{
		all:             ds.Transactions,
		accounts:        ds.Accounts,
		profile:         profile,
		keywords:        keywords,
		income:          income,
		expenses:        expenses,
		monthlyIncome:   stats.SumByMonth(income),
		monthlyExpenses: stats.SumByMonth(expenses),
	}
}

// avgMonthlyIncome returns the mean monthly income, or fallback when there
// are no income rows at all.
func (in *input) avgMonthlyIncome(fallback float64) float64 {
	if len(in.income) == 0 {
		return fallback
	}
	return in.monthlyIncome.Mean()
}

// avgMonthlyExpenses returns the mean monthly expenses, or fallback when
// there are no expense rows at all.
func (in *input) avgMonthlyExpenses(fallback float64) float64 {
	if len(in.expenses) == 0 {
		return fallback
	}
	return in.monthlyExpenses.Mean()
}

// matching returns every transaction whose description contains one of the
// keywords, whatever its type.
func (in *input) matching(keywords []string) []models.Transaction {
	return models.Filter(in.all, func(tx models.Transaction) bool {
		return tx.DescriptionContainsAny(keywords)
	})
}

// monthlyNet is income minus expenses over every month with activity.
func (in *input) monthlyNet() stats.MonthlySeries {
	return stats.NetByMonth(in.monthlyIncome, in.monthlyExpenses)
}

func (in *input) totalBalance() float64 {
	return models.Dataset{Accounts: in.accounts}.TotalBalance()
}

func (in *input) liquidBalance() float64 {
	return models.Dataset{Accounts: in.accounts}.LiquidBalance()
}

func uniqueDescriptions(txs []models.Transaction) int {
	seen := make(map[string]bool)
	for _, tx := range txs {
		seen[tx.Description] = true
	}
	return len(seen)
}

func amounts(txs []models.Transaction) []float64 {
	out := make([]float64, len(txs))
	for i, tx := range txs {
		out[i] = tx.Amount
	}
	return out
}
