package models

// Goal is a savings target supplied by the user.
type Goal struct {
	Name     string  `json:"name" yaml:"name"`
	Target   float64 `json:"target" yaml:"target"`
	Deadline string  `json:"deadline,omitempty" yaml:"deadline,omitempty"`
}

// UserProfile carries the optional, user-provided context of a run.
type UserProfile struct {
	Goals          []Goal             `json:"goals,omitempty" yaml:"goals"`
	Budgets        map[string]float64 `json:"budgets,omitempty" yaml:"budgets"`
	CurrentSavings *float64           `json:"current_savings,omitempty" yaml:"current_savings"`
}

// HasGoals reports whether the profile defines at least one goal. A nil
// profile has no goals.
func (p *UserProfile) HasGoals() bool {
	return p != nil && len(p.Goals) > 0
}

// GoalList returns the goals of the profile, or nil for a nil profile.
func (p *UserProfile) GoalList() []Goal {
	if p == nil {
		return nil
	}
	return p.Goals
}

// BudgetMap returns the per-category budgets, or nil for a nil profile.
func (p *UserProfile) BudgetMap() map[string]float64 {
	if p == nil {
		return nil
	}
	return p.Budgets
}
