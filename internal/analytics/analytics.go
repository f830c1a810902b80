// Package analytics provides the trend and optimization analyses that run
// next to the diagnostic engine on the same normalized dataset: recurring
// charges, monthly trends, a linear expense forecast, category trends,
// budget tracking, unusual spending, savings-goal projection and spend
// optimization.
package analytics

import (
	"time"

	"fjacquet/finhealth/internal/logging"
	"fjacquet/finhealth/internal/models"
)

// Options tunes the analyses. Zero fields take the defaults.
type Options struct {
	// Months is the trailing window of the trend and optimization analyses.
	Months int
	// TopCategories limits the category trend analysis.
	TopCategories int
	// OutlierThreshold is the number of standard deviations above the
	// category mean that makes an expense unusual.
	OutlierThreshold float64
	// RecurringMinOccurrences is the minimum number of matching charges.
	RecurringMinOccurrences int
	// RecurringToleranceDays bounds the spread of the charge intervals.
	RecurringToleranceDays int
	// Now is the clock used for due dates and goal projections.
	Now func() time.Time
}

// DefaultOptions returns the standard analysis settings.
func DefaultOptions() Options {
	return Options{
		Months:                  6,
		TopCategories:           5,
		OutlierThreshold:        2.0,
		RecurringMinOccurrences: 3,
		RecurringToleranceDays:  3,
		Now:                     time.Now,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Months <= 0 {
		o.Months = def.Months
	}
	if o.TopCategories <= 0 {
		o.TopCategories = def.TopCategories
	}
	if o.OutlierThreshold <= 0 {
		o.OutlierThreshold = def.OutlierThreshold
	}
	if o.RecurringMinOccurrences <= 0 {
		o.RecurringMinOccurrences = def.RecurringMinOccurrences
	}
	if o.RecurringToleranceDays <= 0 {
		o.RecurringToleranceDays = def.RecurringToleranceDays
	}
	if o.Now == nil {
		o.Now = def.Now
	}
	return o
}

// Report gathers every analysis of one dataset. The spend optimization is
// embedded so its comparison, category analysis, recommendations and summary
// sit at the top level of the serialized report.
type Report struct {
	Overview       Overview               `json:"overview"`
	MonthlyTrends  MonthlyTrends          `json:"monthly_trends"`
	Prediction     Prediction             `json:"prediction"`
	CategoryTrends []CategoryTrend        `json:"category_trends"`
	Recurring      []RecurringTransaction `json:"recurring_transactions"`
	Unusual        []Outlier              `json:"unusual_spending"`
	BudgetStatus   []BudgetStatus         `json:"budget_status"`
	SavingsGoals   []GoalProgress         `json:"savings_goals"`
	Optimization
}

// Analyzer runs the analyses with a fixed set of options.
type Analyzer struct {
	opts   Options
	logger logging.Logger
}

// NewAnalyzer creates an Analyzer. A nil logger discards output.
func NewAnalyzer(opts Options, logger logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Analyzer{opts: opts.withDefaults(), logger: logger}
}

// Options returns the effective options.
func (a *Analyzer) Options() Options {
	return a.opts
}

// Analyze runs every analysis over the dataset. The profile supplies budgets,
// goals and current savings and may be nil.
func (a *Analyzer) Analyze(ds models.Dataset, profile *models.UserProfile) *Report {
	now := a.opts.Now()
	txs := ds.Transactions

	trends := CalculateMonthlyTrends(txs, a.opts.Months)
	optimization := AnalyzeSpendingOptimization(txs, a.opts.Months)

	currentSavings := ds.LiquidBalance()
	if profile != nil && profile.CurrentSavings != nil {
		currentSavings = *profile.CurrentSavings
	}

	report := &Report{
		Overview:       BuildOverview(ds),
		MonthlyTrends:  trends,
		Prediction:     PredictNextMonth(trends.Expenses),
		CategoryTrends: AnalyzeCategoryTrends(txs, a.opts.TopCategories),
		Recurring:      DetectRecurring(txs, a.opts.RecurringMinOccurrences, a.opts.RecurringToleranceDays, now),
		Unusual:        DetectOutliers(txs, a.opts.OutlierThreshold),
		BudgetStatus:   CalculateBudgetStatus(txs, profile.BudgetMap()),
		SavingsGoals:   ProjectSavingsGoals(currentSavings, optimization.Summary.AvgMonthlySavings, profile.GoalList(), now),
		Optimization:   optimization,
	}

	a.logger.Info("Analytics complete",
		logging.F(logging.FieldCount, len(txs)),
		logging.F("recurring", len(report.Recurring)),
		logging.F("unusual", len(report.Unusual)),
		logging.F("recommendations", len(report.Recommendations)))

	return report
}
