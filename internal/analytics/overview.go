package analytics

import (
	"fmt"
	"math"
	"sort"

	"fjacquet/finhealth/internal/currencyutils"
	"fjacquet/finhealth/internal/dateutils"
	"fjacquet/finhealth/internal/models"
	"fjacquet/finhealth/internal/stats"
)

// Overview alerts
const (
	AlertSpendingExceedsIncome = "Spending meets or exceeds income. Review budget urgently."
	AlertNoEmergencyFund       = "No adequate emergency fund (3 months). Increase savings."
	AlertLowSavingsRate        = "Savings rate below 10%. Aim to raise gradually."
)

const (
	overspendingShare      = 0.20
	emergencyTargetMonths  = 3
	maxRecommendedCut      = 0.15
	ageGroupAvgSavingsRate = 12.0
)

// CategoryShare is a category's part of total spending.
type CategoryShare struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

// Benchmarks compares the savings rate with a reference population.
type Benchmarks struct {
	YourSavingsRate float64 `json:"your_savings_rate"`
	AgeGroupAverage float64 `json:"age_group_average"`
}

// Overview is the headline summary of a dataset.
type Overview struct {
	Income            float64         `json:"income"`
	Expenses          float64         `json:"expenses"`
	SavingsRate       float64         `json:"savings_rate"`
	Alerts            []string        `json:"alerts"`
	Recommendations   []string        `json:"recommendations"`
	Benchmarks        Benchmarks      `json:"benchmarks"`
	Overspending      []CategoryShare `json:"overspending"`
	CategoryBreakdown []CategoryShare `json:"category_breakdown"`
	LiquidSavings     float64         `json:"liquid_savings"`
	TargetEmergency   float64         `json:"target_emergency"`
	HasEmergencyFund  bool            `json:"has_emergency_fund"`
}

// BuildOverview totals income and expenses, flags categories that take at
// least 20% of spending and checks liquid savings against three times the
// spending of the last month of data.
func BuildOverview(ds models.Dataset) Overview {
	income := stats.Sum(amounts(ds.Income()))
	expenseRows := ds.Expenses()
	expenses := stats.Sum(amounts(expenseRows))

	savingsRate := 0.0
	if income > 0 {
		savingsRate = (income - expenses) / income
	}

	breakdown := categoryShares(expenseRows, math.Max(expenses, 1e-9))
	overspending := []CategoryShare{}
	for _, c := range breakdown {
		if c.Percent >= overspendingShare {
			overspending = append(overspending, c)
		}
	}

	liquid := ds.LiquidBalance()
	target := lastMonthSpending(ds.Transactions) * emergencyTargetMonths
	hasFund := liquid >= target

	alerts := []string{}
	if income <= expenses {
		alerts = append(alerts, AlertSpendingExceedsIncome)
	}
	if !hasFund {
		alerts = append(alerts, AlertNoEmergencyFund)
	}
	if savingsRate < 0.10 {
		alerts = append(alerts, AlertLowSavingsRate)
	}

	recs := []string{}
	if expenses > 0 {
		cut := stats.Clamp((expenses-income)/expenses, 0, maxRecommendedCut)
		if cut > 0 {
			recs = append(recs, fmt.Sprintf("Reduce discretionary spend by %d%% to free €%s/month",
				int(math.Round(cut*100)), currencyutils.FormatGrouped(cut*expenses, 0)))
		}
	}

	return Overview{
		Income:          income,
		Expenses:        expenses,
		SavingsRate:     savingsRate,
		Alerts:          alerts,
		Recommendations: recs,
		Benchmarks: Benchmarks{
			YourSavingsRate: math.Round(savingsRate*1000) / 10,
			AgeGroupAverage: ageGroupAvgSavingsRate,
		},
		Overspending:      overspending,
		CategoryBreakdown: breakdown,
		LiquidSavings:     liquid,
		TargetEmergency:   target,
		HasEmergencyFund:  hasFund,
	}
}

// lastMonthSpending sums the expenses dated within one calendar month of the
// most recent transaction.
func lastMonthSpending(txs []models.Transaction) float64 {
	if len(txs) == 0 {
		return 0
	}
	latest := txs[0].Date
	for _, tx := range txs[1:] {
		if tx.Date.After(latest) {
			latest = tx.Date
		}
	}
	since := dateutils.SubtractMonth(latest)

	total := 0.0
	for _, tx := range txs {
		if tx.IsExpense() && !tx.Date.Before(since) {
			total += tx.Amount
		}
	}
	return total
}

func categoryShares(expenses []models.Transaction, total float64) []CategoryShare {
	byCategory, order := groupByCategory(expenses)
	out := make([]CategoryShare, 0, len(order))
	for _, category := range order {
		amount := stats.Sum(amounts(byCategory[category]))
		out = append(out, CategoryShare{Category: category, Amount: amount, Percent: amount / total})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out
}

func amounts(txs []models.Transaction) []float64 {
	out := make([]float64, len(txs))
	for i, tx := range txs {
		out[i] = tx.Amount
	}
	return out
}
