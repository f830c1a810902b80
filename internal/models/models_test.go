package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransaction_KeywordMatching(t *testing.T) {
	tx := Transaction{Description: "Monthly LOAN repayment", Category: "Groceries & Home"}

	assert.True(t, tx.DescriptionContainsAny([]string{"mortgage", "loan"}))
	assert.False(t, tx.DescriptionContainsAny([]string{"visa"}))
	assert.True(t, ContainsAny(tx.Category, []string{"groceries"}))
	assert.False(t, tx.DescriptionContainsAny([]string{""}), "empty keyword must not match everything")
}

func TestDataset_Balances(t *testing.T) {
	ds := Dataset{Accounts: []Account{
		{Type: "Savings", Balance: 1000},
		{Type: "cash", Balance: 200},
		{Type: "checking", Balance: -50},
	}}

	assert.Equal(t, 1150.0, ds.TotalBalance())
	assert.Equal(t, 1200.0, ds.LiquidBalance())
}

func TestDataset_IncomeAndExpenses(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ds := Dataset{Transactions: []Transaction{
		{Date: day, Amount: 10, Type: TypeExpense},
		{Date: day, Amount: 100, Type: TypeIncome},
		{Date: day, Amount: 5, Type: TypeExpense},
	}}

	assert.Len(t, ds.Income(), 1)
	expenses := ds.Expenses()
	assert.Len(t, expenses, 2)
	assert.Equal(t, 10.0, expenses[0].Amount)
	assert.Equal(t, "2024-01", MonthKey(day))
}

func TestUserProfile_NilSafe(t *testing.T) {
	var p *UserProfile
	assert.False(t, p.HasGoals())
	assert.Nil(t, p.GoalList())
	assert.Nil(t, p.BudgetMap())

	p = &UserProfile{Goals: []Goal{{Name: "House", Target: 50000}}}
	assert.True(t, p.HasGoals())
}

func TestKeywordTables_Merge(t *testing.T) {
	merged := DefaultKeywordTables().Merge(KeywordTables{Tax: []string{" Steuer ", "ESTV"}})

	assert.Equal(t, []string{"steuer", "estv"}, merged.Tax)
	assert.Equal(t, DefaultKeywordTables().Debt, merged.Debt)
}
