// Package normalizer turns raw table rows into canonical transactions and
// accounts. Rows whose date or amount cannot be parsed are dropped, never
// defaulted to zero.
package normalizer

import (
	"math"
	"strings"

	"fjacquet/finhealth/internal/currencyutils"
	"fjacquet/finhealth/internal/dateutils"
	"fjacquet/finhealth/internal/logging"
	"fjacquet/finhealth/internal/models"
	"fjacquet/finhealth/internal/parsererror"
)

// Required columns of the input tables
var (
	TransactionColumns = []string{"date", "amount", "type"}
	AccountColumns     = []string{"balance", "type"}
)

// Normalizer converts raw rows. It holds no per-run state.
type Normalizer struct {
	logger logging.Logger
}

// New creates a Normalizer. A nil logger disables logging.
func New(logger logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Normalizer{logger: logger}
}

// Transactions parses dates and amounts, lower-cases the type, fills the
// default category and derives the month bucket. Negative amounts are stored
// as magnitudes; an empty type is inferred from the sign of the amount.
func (n *Normalizer) Transactions(rows []models.RawTransaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(rows))
	dropped := 0

	for i, row := range rows {
		date, _, err := dateutils.ParseDate(row.Date)
		if err != nil {
			dropped++
			n.logger.Debug("Dropping transaction with invalid date",
				logging.F("row", i+1), logging.F(logging.FieldReason, err.Error()))
			continue
		}

		amount, err := currencyutils.ParseAmount(row.Amount)
		if err != nil {
			dropped++
			n.logger.Debug("Dropping transaction with invalid amount",
				logging.F("row", i+1), logging.F(logging.FieldReason, err.Error()))
			continue
		}
		value, _ := amount.Abs().Float64()
		if !finite(value) {
			dropped++
			n.logger.Warn("Dropping transaction with out-of-range amount",
				logging.F("row", i+1), logging.F(logging.FieldReason, row.Amount))
			continue
		}

		txType := strings.ToLower(strings.TrimSpace(row.Type))
		if txType == "" {
			if amount.IsNegative() {
				txType = models.TypeExpense
			} else {
				txType = models.TypeIncome
			}
		}

		category := strings.TrimSpace(row.Category)
		if category == "" {
			category = models.CategoryUncategorized
		}

		out = append(out, models.Transaction{
			Date:        date,
			Amount:      value,
			Type:        txType,
			Category:    category,
			Description: strings.TrimSpace(row.Description),
			Month:       models.MonthKey(date),
		})
	}

	if dropped > 0 {
		n.logger.Warn("Dropped unparsable transaction rows",
			logging.F(logging.FieldDropped, dropped),
			logging.F(logging.FieldCount, len(out)))
	}
	return out
}

// Accounts parses balances, keeping their sign. Rows with an unparsable
// balance are dropped.
func (n *Normalizer) Accounts(rows []models.RawAccount) []models.Account {
	out := make([]models.Account, 0, len(rows))
	for i, row := range rows {
		balance, err := currencyutils.ParseAmount(row.Balance)
		if err != nil {
			n.logger.Warn("Dropping account with invalid balance",
				logging.F("row", i+1), logging.F(logging.FieldReason, err.Error()))
			continue
		}
		value, _ := balance.Float64()
		if !finite(value) {
			n.logger.Warn("Dropping account with out-of-range balance",
				logging.F("row", i+1), logging.F(logging.FieldReason, row.Balance))
			continue
		}
		out = append(out, models.Account{
			Name:    strings.TrimSpace(row.Name),
			Type:    strings.ToLower(strings.TrimSpace(row.Type)),
			Balance: value,
		})
	}
	return out
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Dataset normalizes both tables at once.
func (n *Normalizer) Dataset(txs []models.RawTransaction, accounts []models.RawAccount) models.Dataset {
	return models.Dataset{
		Transactions: n.Transactions(txs),
		Accounts:     n.Accounts(accounts),
	}
}

// ValidateColumns checks a table header against the required columns.
// Header names are compared case-insensitively after trimming.
func ValidateColumns(table string, header []string, required []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = true
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &parsererror.MissingColumnsError{Table: table, Missing: missing}
	}
	return nil
}
