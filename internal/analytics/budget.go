package analytics

import (
	"math"
	"sort"
	"time"

	"fjacquet/finhealth/internal/dateutils"
	"fjacquet/finhealth/internal/models"
)

// Budget states
const (
	BudgetOver    = "over"
	BudgetWarning = "warning"
	BudgetGood    = "good"
)

// Goal states
const (
	GoalAchieved = "achieved"
	GoalOnTrack  = "on_track"
	GoalAtRisk   = "at_risk"
	GoalOffTrack = "off_track"
)

// ProjectedUnknown replaces the projected date of an unreachable goal.
const ProjectedUnknown = "Unknown"

// maxProjectionDays keeps goal projections inside the representable calendar.
const maxProjectionDays = 365 * 1000

// BudgetStatus compares one category budget with the latest month's spend.
type BudgetStatus struct {
	Category    string  `json:"category"`
	Budget      float64 `json:"budget"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	PercentUsed float64 `json:"percent_used"`
	Status      string  `json:"status"`
}

// CalculateBudgetStatus compares each category budget against the spending
// of the most recent month that has expenses. Categories are ordered by the
// share of budget used, highest first.
func CalculateBudgetStatus(txs []models.Transaction, budgets map[string]float64) []BudgetStatus {
	out := []BudgetStatus{}
	expenses := models.Filter(txs, models.Transaction.IsExpense)
	if len(expenses) == 0 || len(budgets) == 0 {
		return out
	}

	latest := expenses[0].Date
	for _, tx := range expenses[1:] {
		if tx.Date.After(latest) {
			latest = tx.Date
		}
	}
	month := models.MonthKey(latest)

	spending := make(map[string]float64)
	for _, tx := range expenses {
		if tx.Month == month {
			spending[tx.Category] += tx.Amount
		}
	}

	categories := make([]string, 0, len(budgets))
	for c := range budgets {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, category := range categories {
		budget := budgets[category]
		spent := spending[category]
		percent := 0.0
		if budget > 0 {
			percent = spent / budget * 100
		}

		status := BudgetGood
		switch {
		case spent > budget:
			status = BudgetOver
		case percent > 80:
			status = BudgetWarning
		}

		out = append(out, BudgetStatus{
			Category:    category,
			Budget:      budget,
			Spent:       spent,
			Remaining:   budget - spent,
			PercentUsed: percent,
			Status:      status,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PercentUsed > out[j].PercentUsed
	})
	return out
}

// GoalProgress is the projection of one savings goal. MonthsNeeded is nil
// when the goal can never be reached at the current savings pace.
type GoalProgress struct {
	Name            string   `json:"name"`
	Target          float64  `json:"target"`
	Current         float64  `json:"current"`
	Remaining       float64  `json:"remaining"`
	ProgressPercent float64  `json:"progress_percent"`
	MonthsNeeded    *float64 `json:"months_needed"`
	ProjectedDate   string   `json:"projected_date"`
	Status          string   `json:"status"`
}

// ProjectSavingsGoals projects when each goal is reached from the current
// savings and the average monthly savings. A month counts as 30 days.
func ProjectSavingsGoals(current, monthlySavings float64, goals []models.Goal, now time.Time) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))
	for _, goal := range goals {
		remaining := goal.Target - current

		var monthsNeeded *float64
		projected := ProjectedUnknown
		if monthlySavings > 0 {
			months := remaining / monthlySavings
			monthsNeeded = &months
			if days := months * 30; math.Abs(days) < maxProjectionDays {
				projected = dateutils.ToISODate(addFractionalDays(now, days))
			}
		}

		progress := 0.0
		if goal.Target > 0 {
			progress = math.Min(100, current/goal.Target*100)
		}

		status := GoalOffTrack
		switch {
		case current >= goal.Target:
			status = GoalAchieved
		case monthsNeeded != nil && *monthsNeeded < 12:
			status = GoalOnTrack
		case monthsNeeded != nil && *monthsNeeded < 24:
			status = GoalAtRisk
		}

		out = append(out, GoalProgress{
			Name:            goal.Name,
			Target:          goal.Target,
			Current:         current,
			Remaining:       math.Max(0, remaining),
			ProgressPercent: progress,
			MonthsNeeded:    monthsNeeded,
			ProjectedDate:   projected,
			Status:          status,
		})
	}
	return out
}

func addFractionalDays(t time.Time, days float64) time.Time {
	whole := math.Trunc(days)
	return t.AddDate(0, 0, int(whole)).Add(time.Duration((days - whole) * float64(24*time.Hour)))
}
