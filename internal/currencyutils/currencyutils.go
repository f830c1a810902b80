// Package currencyutils parses and formats the monetary amounts found in
// statement exports and in the texts produced by the engine.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyPattern = regexp.MustCompile(`[€$£¥₣₤₹₽₩฿₫₴₸₪\s]|CHF|EUR|USD|GBP`)

// ParseAmount parses a string representation of an amount into a decimal value.
// It handles formats like "1,234.56", "1.234,56", "1'234.56", "€12,50" or "-45".
// An empty string is an error: a missing amount is not the same as zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount %q", amountStr)
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts various currency string formats to a form that
// decimal.NewFromString accepts.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyPattern.ReplaceAllString(amountStr, "")
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	switch {
	case strings.Contains(amountStr, ",") && strings.Contains(amountStr, "."):
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case strings.Contains(amountStr, ","):
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.Replace(amountStr, ",", ".", 1)
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case strings.Count(amountStr, ".") > 1:
		// 1.234.567 as thousands grouping
		amountStr = strings.ReplaceAll(amountStr, ".", "")
	}

	return amountStr
}

// FormatEuro renders an amount with two decimals and a euro sign, e.g. "€123.40".
func FormatEuro(amount float64) string {
	return "€" + decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatGrouped renders an amount rounded to the given number of places with
// comma thousands separators, e.g. FormatGrouped(12345.6, 0) == "12,346".
func FormatGrouped(amount float64, places int32) string {
	fixed := decimal.NewFromFloat(amount).StringFixed(places)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}

	intPart, fracPart := fixed, ""
	if dot := strings.IndexByte(fixed, '.'); dot >= 0 {
		intPart, fracPart = fixed[:dot], fixed[dot:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + b.String() + fracPart
}
