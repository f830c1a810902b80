package analytics

import (
	"sort"

	"fjacquet/finhealth/internal/dateutils"
	"fjacquet/finhealth/internal/models"
	"fjacquet/finhealth/internal/stats"
)

const (
	minOutlierSample = 3
	maxOutliers      = 10
)

// Outlier is an expense well above its category's usual amount.
type Outlier struct {
	Date          string  `json:"date"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	TypicalAmount float64 `json:"typical_amount"`
	Deviation     float64 `json:"deviation"`
}

// DetectOutliers flags expenses strictly above mean + threshold*stdev of
// their category, using the population standard deviation. Categories with
// fewer than three expenses or no variance are skipped. At most ten outliers
// are returned, largest deviation first.
func DetectOutliers(txs []models.Transaction, threshold float64) []Outlier {
	expenses := models.Filter(txs, models.Transaction.IsExpense)
	byCategory, order := groupByCategory(expenses)

	out := []Outlier{}
	for _, category := range order {
		rows := byCategory[category]
		if len(rows) < minOutlierSample {
			continue
		}

		values := make([]float64, len(rows))
		for i, tx := range rows {
			values[i] = tx.Amount
		}
		mean := stats.Mean(values)
		std := stats.PopStdDev(values)
		if std == 0 {
			continue
		}

		limit := mean + threshold*std
		for _, tx := range rows {
			if tx.Amount <= limit {
				continue
			}
			out = append(out, Outlier{
				Date:          dateutils.ToISODate(tx.Date),
				Category:      tx.Category,
				Description:   truncateRunes(tx.Description, descriptionMaxLen),
				Amount:        tx.Amount,
				TypicalAmount: mean,
				Deviation:     (tx.Amount - mean) / std,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Deviation > out[j].Deviation
	})
	if len(out) > maxOutliers {
		out = out[:maxOutliers]
	}
	return out
}
