package models

import "strings"

// Account types treated as liquid savings
const (
	AccountTypeCash    = "cash"
	AccountTypeSavings = "savings"
)

// RawAccount is one row of an accounts table as delivered by the import layer.
type RawAccount struct {
	Name    string `csv:"account_name" yaml:"name"`
	Type    string `csv:"type" yaml:"type"`
	Balance string `csv:"balance" yaml:"balance"`
}

// Account is a normalized account balance. Balances keep their sign.
type Account struct {
	Name    string  `json:"name,omitempty" yaml:"name,omitempty"`
	Type    string  `json:"type" yaml:"type"`
	Balance float64 `json:"balance" yaml:"balance"`
}

// IsLiquid reports whether the account counts as cash or savings.
func (a Account) IsLiquid() bool {
	t := strings.ToLower(strings.TrimSpace(a.Type))
	return t == AccountTypeCash || t == AccountTypeSavings
}
