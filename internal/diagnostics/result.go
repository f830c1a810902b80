package diagnostics

// Status is the label attached to a category score.
type Status string

// Status values. The first four form the score ladder; the others describe
// a category that could not be scored from the data.
const (
	StatusExcellent     Status = "excellent"
	StatusGood          Status = "good"
	StatusFair          Status = "fair"
	StatusPoor          Status = "poor"
	StatusCritical      Status = "critical"
	StatusUnknown       Status = "unknown"
	StatusAssumedNoDebt Status = "assumed_no_debt"
	StatusUndefined     Status = "undefined"
)

// StatusForScore maps a score onto the four-tier ladder.
func StatusForScore(score int) Status {
	switch {
	case score >= 80:
		return StatusExcellent
	case score >= 60:
		return StatusGood
	case score >= 40:
		return StatusFair
	default:
		return StatusPoor
	}
}

// CategoryResult is the part every category diagnostic shares.
type CategoryResult struct {
	Score              int    `json:"score"`
	Status             Status `json:"status"`
	DataAvailable      bool   `json:"data_available"`
	NeedsQuestionnaire bool   `json:"needs_questionnaire,omitempty"`
}

// Result returns the shared part. Every category diagnostic embeds
// CategoryResult, so they all satisfy Scored.
func (r CategoryResult) Result() CategoryResult {
	return r
}

// Scored is implemented by every category diagnostic.
type Scored interface {
	Result() CategoryResult
}

func scored(score int) CategoryResult {
	return CategoryResult{Score: score, Status: StatusForScore(score), DataAvailable: true}
}

// Category-specific metrics. They are embedded by pointer and left nil when
// the category had no data, so only the shared fields are serialized.

type IncomeSource struct {
	Description string  `json:"description"`
	Total       float64 `json:"total"`
	Count       int     `json:"count"`
}

type IncomeMetrics struct {
	AvgMonthlyIncome  float64        `json:"avg_monthly_income"`
	Stability         float64        `json:"stability"`
	Sources           int            `json:"sources"`
	PrimaryDependency float64        `json:"primary_dependency"`
	TopSources        []IncomeSource `json:"top_sources"`
}

type IncomeDiagnostic struct {
	CategoryResult
	*IncomeMetrics
}

type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type ExpenseMetrics struct {
	AvgMonthlyExpenses float64          `json:"avg_monthly_expenses"`
	ExpenseRatio       float64          `json:"expense_ratio"`
	EssentialRatio     float64          `json:"essential_ratio"`
	TopCategories      []CategoryAmount `json:"top_categories"`
}

type ExpenseDiagnostic struct {
	CategoryResult
	*ExpenseMetrics
}

type DebtMetrics struct {
	AvgMonthlyDebt float64 `json:"avg_monthly_debt"`
	DebtToIncome   float64 `json:"debt_to_income"`
	DebtTypes      int     `json:"debt_types"`
}

type DebtDiagnostic struct {
	CategoryResult
	*DebtMetrics
}

type AssetMetrics struct {
	TotalBalance        float64 `json:"total_balance"`
	LiquidBalance       float64 `json:"liquid_balance"`
	EmergencyFundMonths float64 `json:"emergency_fund_months"`
	HasInvestments      bool    `json:"has_investments"`
	InvestmentActivity  float64 `json:"investment_activity"`
}

type AssetDiagnostic struct {
	CategoryResult
	*AssetMetrics
}

type InsuranceMetrics struct {
	MonthlyPremium         float64 `json:"monthly_premium"`
	InsuranceTypesDetected int     `json:"insurance_types_detected"`
	InsuranceRatio         float64 `json:"insurance_ratio"`
}

type InsuranceDiagnostic struct {
	CategoryResult
	*InsuranceMetrics
}

type GoalMetrics struct {
	GoalsCount        int     `json:"goals_count"`
	AvgMonthlySavings float64 `json:"avg_monthly_savings"`
}

type GoalDiagnostic struct {
	CategoryResult
	*GoalMetrics
}

type BudgetMetrics struct {
	AvgSavingsRate     float64 `json:"avg_savings_rate"`
	OverspendingMonths int     `json:"overspending_months"`
	TotalMonths        int     `json:"total_months"`
	SavingsConsistency float64 `json:"savings_consistency"`
}

type BudgetDiagnostic struct {
	CategoryResult
	*BudgetMetrics
}

type CreditMetrics struct {
	AvgMonthlyCCPayment float64 `json:"avg_monthly_cc_payment"`
	CCToIncomeRatio     float64 `json:"cc_to_income_ratio"`
	ActiveMonths        int     `json:"active_months"`
}

type CreditDiagnostic struct {
	CategoryResult
	*CreditMetrics
}

type TaxMetrics struct {
	TotalTaxPaid     float64 `json:"total_tax_paid"`
	TotalRefunds     float64 `json:"total_refunds"`
	EffectiveTaxRate float64 `json:"effective_tax_rate"`
}

type TaxDiagnostic struct {
	CategoryResult
	*TaxMetrics
}

type BehaviorMetrics struct {
	ExpenseVolatility       float64 `json:"expense_volatility"`
	SavingsDiscipline       float64 `json:"savings_discipline"`
	AvgTransactionsPerMonth int     `json:"avg_transactions_per_month"`
}

type BehaviorDiagnostic struct {
	CategoryResult
	*BehaviorMetrics
}

// Diagnostics holds the ten category results of one run.
type Diagnostics struct {
	Income    IncomeDiagnostic    `json:"income"`
	Expenses  ExpenseDiagnostic   `json:"expenses"`
	Debt      DebtDiagnostic      `json:"debt_liabilities"`
	Assets    AssetDiagnostic     `json:"assets_investments"`
	Insurance InsuranceDiagnostic `json:"insurance"`
	Goals     GoalDiagnostic      `json:"financial_goals"`
	Budgeting BudgetDiagnostic    `json:"budgeting"`
	Credit    CreditDiagnostic    `json:"credit_health"`
	Tax       TaxDiagnostic       `json:"tax_situation"`
	Behavior  BehaviorDiagnostic  `json:"financial_behavior"`
}

// Category names as they appear in the serialized diagnostics
const (
	CategoryIncome    = "income"
	CategoryExpenses  = "expenses"
	CategoryDebt      = "debt_liabilities"
	CategoryAssets    = "assets_investments"
	CategoryInsurance = "insurance"
	CategoryGoals     = "financial_goals"
	CategoryBudgeting = "budgeting"
	CategoryCredit    = "credit_health"
	CategoryTax       = "tax_situation"
	CategoryBehavior  = "financial_behavior"
)

// NamedResult pairs a category name with its shared result.
type NamedResult struct {
	Name   string
	Result CategoryResult
}

// Results lists the ten category results in execution order.
func (d Diagnostics) Results() []NamedResult {
	return []NamedResult{
		{CategoryIncome, d.Income.Result()},
		{CategoryExpenses, d.Expenses.Result()},
		{CategoryDebt, d.Debt.Result()},
		{CategoryAssets, d.Assets.Result()},
		{CategoryInsurance, d.Insurance.Result()},
		{CategoryGoals, d.Goals.Result()},
		{CategoryBudgeting, d.Budgeting.Result()},
		{CategoryCredit, d.Credit.Result()},
		{CategoryTax, d.Tax.Result()},
		{CategoryBehavior, d.Behavior.Result()},
	}
}

// Recommendation is one prioritized action item.
type Recommendation struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
}

// Question is one follow-up questionnaire item.
type Question struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

// Report is the complete output of one diagnostic run.
type Report struct {
	Diagnostics     Diagnostics      `json:"diagnostics"`
	OverallScore    float64          `json:"overall_score"`
	Grade           string           `json:"grade"`
	Gaps            []string         `json:"gaps"`
	Risks           []string         `json:"risks"`
	Recommendations []Recommendation `json:"recommendations"`
	Questionnaire   []Question       `json:"questionnaire"`
}
