// Package models defines the data structures shared by the importer, the
// diagnostic engine and the analytics layer.
package models

import (
	"strings"
	"time"
)

// Transaction types after normalization
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// CategoryUncategorized is assigned to rows that arrive without a category.
const CategoryUncategorized = "Uncategorized"

// MonthLayout is the layout of the calendar-month bucket of a transaction.
const MonthLayout = "2006-01"

// RawTransaction is one row of a transactions table exactly as delivered by
// the import layer. Every field is still a string.
type RawTransaction struct {
	Date        string `csv:"date" yaml:"date"`
	Amount      string `csv:"amount" yaml:"amount"`
	Type        string `csv:"type" yaml:"type"`
	Category    string `csv:"category" yaml:"category"`
	Description string `csv:"description" yaml:"description"`
}

// Transaction is a normalized transaction. Amount is always a non-negative
// magnitude, the direction is carried by Type.
type Transaction struct {
	Date        time.Time `json:"date" yaml:"date"`
	Amount      float64   `json:"amount" yaml:"amount"`
	Type        string    `json:"type" yaml:"type"`
	Category    string    `json:"category" yaml:"category"`
	Description string    `json:"description" yaml:"description"`
	Month       string    `json:"month" yaml:"month"`
}

// IsIncome reports whether the transaction is an income row.
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// IsExpense reports whether the transaction is an expense row.
func (t Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// DescriptionContainsAny reports whether the lower-cased description contains
// any of the given keywords. Keywords are expected in lower case.
func (t Transaction) DescriptionContainsAny(keywords []string) bool {
	return ContainsAny(t.Description, keywords)
}

// ContainsAny reports whether text contains one of the lower-case keywords,
// ignoring case. Empty keywords never match.
func ContainsAny(text string, keywords []string) bool {
	text = strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// MonthKey returns the calendar-month bucket of a date.
func MonthKey(date time.Time) string {
	return date.Format(MonthLayout)
}

// Dataset is the normalized input of one diagnostic or analytics run.
type Dataset struct {
	Transactions []Transaction
	Accounts     []Account
}

// Income returns the income rows in input order.
func (d Dataset) Income() []Transaction {
	return Filter(d.Transactions, Transaction.IsIncome)
}

// Expenses returns the expense rows in input order.
func (d Dataset) Expenses() []Transaction {
	return Filter(d.Transactions, Transaction.IsExpense)
}

// TotalBalance sums every account balance as-is.
func (d Dataset) TotalBalance() float64 {
	total := 0.0
	for _, a := range d.Accounts {
		total += a.Balance
	}
	return total
}

// LiquidBalance sums the balances of cash and savings accounts.
func (d Dataset) LiquidBalance() float64 {
	total := 0.0
	for _, a := range d.Accounts {
		if a.IsLiquid() {
			total += a.Balance
		}
	}
	return total
}

// Filter returns the transactions for which keep returns true, preserving order.
func Filter(txs []Transaction, keep func(Transaction) bool) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return out
}
