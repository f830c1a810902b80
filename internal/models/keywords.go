package models

import "strings"

// KeywordTables holds the substring lists used to detect transaction
// families. Matching is case-insensitive.
type KeywordTables struct {
	Debt       []string `yaml:"debt" json:"debt"`
	Insurance  []string `yaml:"insurance" json:"insurance"`
	Credit     []string `yaml:"credit" json:"credit"`
	Tax        []string `yaml:"tax" json:"tax"`
	Investment []string `yaml:"investment" json:"investment"`
	Essential  []string `yaml:"essential" json:"essential"`
}

// DefaultKeywordTables returns the built-in keyword sets.
func DefaultKeywordTables() KeywordTables {
	return KeywordTables{
		Debt:       []string{"loan", "credit card", "mortgage", "debt", "financing", "installment"},
		Insurance:  []string{"insurance", "premium", "policy", "coverage", "insurer"},
		Credit:     []string{"credit card", "cc payment", "visa", "mastercard", "amex"},
		Tax:        []string{"tax", "irs", "hmrc", "revenue", "withholding", "refund"},
		Investment: []string{"invest", "stock", "bond", "etf", "mutual fund", "dividend", "capital gain"},
		Essential:  []string{"grocery", "groceries", "rent", "mortgage", "utilities", "insurance", "health", "medical"},
	}
}

// Merge overlays the non-empty lists of other onto k and lower-cases every
// keyword. Lists absent from other keep their current value.
func (k KeywordTables) Merge(other KeywordTables) KeywordTables {
	pick := func(base, override []string) []string {
		if len(override) == 0 {
			return lowerAll(base)
		}
		return lowerAll(override)
	}
	return KeywordTables{
		Debt:       pick(k.Debt, other.Debt),
		Insurance:  pick(k.Insurance, other.Insurance),
		Credit:     pick(k.Credit, other.Credit),
		Tax:        pick(k.Tax, other.Tax),
		Investment: pick(k.Investment, other.Investment),
		Essential:  pick(k.Essential, other.Essential),
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
