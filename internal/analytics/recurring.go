package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fjacquet/finhealth/internal/dateutils"
	"fjacquet/finhealth/internal/models"
	"fjacquet/finhealth/internal/stats"
)

// Frequencies of a recurring charge
const (
	FrequencyMonthly  = "Monthly"
	FrequencyWeekly   = "Weekly"
	FrequencyBiWeekly = "Bi-weekly"
)

// NextDueOverdue replaces the next due date when it is already past.
const NextDueOverdue = "Overdue"

const (
	descriptionPatternLen = 20
	descriptionMaxLen     = 50
)

// RecurringTransaction is a detected subscription or standing charge.
type RecurringTransaction struct {
	Description     string  `json:"description"`
	Amount          float64 `json:"amount"`
	Frequency       string  `json:"frequency"`
	Occurrences     int     `json:"occurrences"`
	LastDate        string  `json:"last_date"`
	NextDue         string  `json:"next_due"`
	AvgIntervalDays int     `json:"avg_interval_days"`
}

// DetectRecurring finds expenses that repeat with a stable amount and a
// regular interval. Charges are grouped by the first 20 characters of their
// description, matched case-insensitively anywhere in other descriptions.
// A group qualifies with at least minOccurrences charges, an amount variation
// under 10% and an interval spread under toleranceDays. Results are ordered
// by amount, largest first.
func DetectRecurring(txs []models.Transaction, minOccurrences, toleranceDays int, now time.Time) []RecurringTransaction {
	expenses := models.Filter(txs, models.Transaction.IsExpense)
	recurring := []RecurringTransaction{}
	seenPatterns := make(map[string]bool)

	for _, desc := range uniqueDescriptions(expenses) {
		pattern := strings.ToLower(truncateRunes(desc, descriptionPatternLen))
		if strings.TrimSpace(pattern) == "" || seenPatterns[pattern] {
			continue
		}
		seenPatterns[pattern] = true

		matches := models.Filter(expenses, func(tx models.Transaction) bool {
			return strings.Contains(strings.ToLower(tx.Description), pattern)
		})
		if len(matches) < minOccurrences {
			continue
		}

		amounts := make([]float64, len(matches))
		dates := make([]time.Time, len(matches))
		for i, tx := range matches {
			amounts[i] = tx.Amount
			dates[i] = tx.Date
		}
		avgAmount := stats.Mean(amounts)
		if avgAmount <= 0 || stats.PopStdDev(amounts)/avgAmount >= 0.1 {
			continue
		}

		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		intervals := make([]float64, len(dates)-1)
		for i := range intervals {
			intervals[i] = float64(dateutils.DaysBetween(dates[i], dates[i+1]))
		}
		if len(intervals) == 0 || stats.PopStdDev(intervals) >= float64(toleranceDays) {
			continue
		}

		avgInterval := stats.Mean(intervals)
		last := dates[len(dates)-1]
		nextDue := dateutils.AddDays(last, int(avgInterval))
		nextDueText := NextDueOverdue
		if nextDue.After(now) {
			nextDueText = dateutils.ToISODate(nextDue)
		}

		recurring = append(recurring, RecurringTransaction{
			Description:     truncateRunes(desc, descriptionMaxLen),
			Amount:          avgAmount,
			Frequency:       frequencyFor(avgInterval),
			Occurrences:     len(matches),
			LastDate:        dateutils.ToISODate(last),
			NextDue:         nextDueText,
			AvgIntervalDays: int(avgInterval),
		})
	}

	sort.SliceStable(recurring, func(i, j int) bool {
		return recurring[i].Amount > recurring[j].Amount
	})
	return recurring
}

func frequencyFor(avgInterval float64) string {
	switch {
	case avgInterval >= 25 && avgInterval <= 35:
		return FrequencyMonthly
	case avgInterval >= 5 && avgInterval <= 9:
		return FrequencyWeekly
	case avgInterval >= 12 && avgInterval <= 16:
		return FrequencyBiWeekly
	default:
		return fmt.Sprintf("Every %d days", int(avgInterval))
	}
}

func uniqueDescriptions(txs []models.Transaction) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tx := range txs {
		if !seen[tx.Description] {
			seen[tx.Description] = true
			out = append(out, tx.Description)
		}
	}
	return out
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
