// Package diagnostics implements the financial-health scoring engine: ten
// category classifiers, the weighted aggregate, recommendations and the
// follow-up questionnaire.
package diagnostics

import (
	"fjacquet/finhealth/internal/logging"
	"fjacquet/finhealth/internal/models"
)

// Engine scores normalized datasets. It holds no per-run state and can be
// shared between goroutines.
type Engine struct {
	keywords models.KeywordTables
	logger   logging.Logger
}

// NewEngine creates an engine. The given keyword tables are merged over the
// defaults, so a partial table only overrides the lists it defines.
func NewEngine(keywords models.KeywordTables, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{
		keywords: models.DefaultKeywordTables().Merge(keywords),
		logger:   logger,
	}
}

// Keywords returns the effective keyword tables.
func (e *Engine) Keywords() models.KeywordTables {
	return e.keywords
}

// Run produces the complete diagnostic report for one dataset. The profile
// may be nil.
func (e *Engine) Run(ds models.Dataset, profile *models.UserProfile) *Report {
	in := newInput(ds, profile, e.keywords)
	findings := NewFindings()

	var d Diagnostics
	d.Income = diagnoseIncome(in, findings)
	d.Expenses = diagnoseExpenses(in, findings)
	d.Debt = diagnoseDebt(in, findings)
	d.Assets = diagnoseAssets(in, findings)
	d.Insurance = diagnoseInsurance(in, findings)
	d.Goals = diagnoseGoals(in, findings)
	d.Budgeting = diagnoseBudgeting(in, findings)
	d.Credit = diagnoseCredit(in, findings)
	d.Tax = diagnoseTax(in, findings)
	d.Behavior = diagnoseBehavior(in, findings)

	for _, r := range d.Results() {
		e.logger.Debug("Category scored",
			logging.F(logging.FieldCategory, r.Name),
			logging.F(logging.FieldScore, r.Result.Score),
			logging.F(logging.FieldStatus, string(r.Result.Status)))
	}

	overall := OverallScore(d)
	gaps := findings.Gaps()
	report := &Report{
		Diagnostics:     d,
		OverallScore:    overall,
		Grade:           Grade(overall),
		Gaps:            gaps,
		Risks:           findings.Risks(),
		Recommendations: GenerateRecommendations(d),
		Questionnaire:   GenerateQuestionnaire(gaps, profile),
	}

	e.logger.Info("Diagnostic complete",
		logging.F(logging.FieldScore, report.OverallScore),
		logging.F(logging.FieldGrade, report.Grade),
		logging.F(logging.FieldCount, len(ds.Transactions)))

	return report
}
