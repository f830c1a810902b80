package diagnostics

import (
	"strings"

	"fjacquet/finhealth/internal/models"
)

// Question identifiers
const (
	QuestionInsuranceCoverage = "insurance_coverage"
	QuestionFinancialGoals    = "financial_goals"
	QuestionRiskTolerance     = "risk_tolerance"
	QuestionDebtConfirmation  = "debt_confirmation"
	QuestionCreditScore       = "credit_score"
)

var (
	insuranceQuestion = Question{
		ID:       QuestionInsuranceCoverage,
		Category: "Insurance",
		Question: "What types of insurance coverage do you currently have?",
		Type:     "multiple_choice",
		Options:  []string{"Health", "Life", "Disability", "Home/Renters", "Auto", "None"},
		Required: true,
	}
	goalsQuestion = Question{
		ID:       QuestionFinancialGoals,
		Category: "Goals",
		Question: "What are your top 3 financial goals for the next 5 years?",
		Type:     "text",
		Required: true,
	}
	riskToleranceQuestion = Question{
		ID:       QuestionRiskTolerance,
		Category: "Investments",
		Question: "How comfortable are you with investment risk?",
		Type:     "single_choice",
		Options:  []string{"Very Conservative", "Conservative", "Moderate", "Aggressive", "Very Aggressive"},
		Required: true,
	}
	debtQuestion = Question{
		ID:       QuestionDebtConfirmation,
		Category: "Debt",
		Question: "Do you currently have any outstanding loans or credit card debt?",
		Type:     "yes_no",
		Required: true,
	}
	creditScoreQuestion = Question{
		ID:       QuestionCreditScore,
		Category: "Credit",
		Question: "What is your approximate credit score?",
		Type:     "single_choice",
		Options:  []string{"Excellent (750+)", "Good (700-749)", "Fair (650-699)", "Poor (600-649)", "Very Poor (<600)", "Unknown"},
		Required: false,
	}
	fallbackGoalsQuestion = Question{
		ID:       QuestionFinancialGoals,
		Category: "Goals",
		Question: "What are your top 3 financial goals?",
		Type:     "text",
		Required: true,
	}
)

// GenerateQuestionnaire maps each gap onto follow-up questions by substring
// matching, then asks for goals when the profile has none. Questions are
// unique by id; the first occurrence wins.
func GenerateQuestionnaire(gaps []string, profile *models.UserProfile) []Question {
	var questions []Question
	seen := make(map[string]bool)
	add := func(q Question) {
		if seen[q.ID] {
			return
		}
		seen[q.ID] = true
		q.Options = append([]string(nil), q.Options...)
		questions = append(questions, q)
	}

	for _, gap := range gaps {
		text := strings.ToLower(gap)

		if strings.Contains(text, "insurance") {
			add(insuranceQuestion)
		}
		if strings.Contains(text, "goal") {
			add(goalsQuestion)
			add(riskToleranceQuestion)
		}
		if strings.Contains(text, "debt") && strings.Contains(text, "no debt") {
			add(debtQuestion)
		}
		if strings.Contains(text, "credit") {
			add(creditScoreQuestion)
		}
	}

	if !profile.HasGoals() {
		add(fallbackGoalsQuestion)
	}

	if questions == nil {
		questions = []Question{}
	}
	return questions
}
