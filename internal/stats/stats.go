// Package stats holds the small numeric helpers shared by the diagnostic
// classifiers and the analytics layer. None of them ever return NaN or an
// infinity: degenerate inputs resolve to zero.
package stats

import (
	"math"
	"sort"

	"fjacquet/finhealth/internal/models"
)

// Sum adds up the values.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// PopStdDev returns the population standard deviation (divisor n), or 0 for
// an empty slice.
func PopStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return math.Sqrt(sumSquaredDeviations(values) / float64(len(values)))
}

// SampleStdDev returns the sample standard deviation (divisor n-1). A single
// observation has no spread and yields 0.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return math.Sqrt(sumSquaredDeviations(values) / float64(len(values)-1))
}

func sumSquaredDeviations(values []float64) float64 {
	m := Mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return ss
}

// Min returns the smallest value, or 0 for an empty slice.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		m = math.Min(m, v)
	}
	return m
}

// Max returns the largest value, or 0 for an empty slice.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		m = math.Max(m, v)
	}
	return m
}

// SafeDiv returns a/b, or fallback when b is zero.
func SafeDiv(a, b, fallback float64) float64 {
	if b == 0 {
		return fallback
	}
	return a / b
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// LinearFit is the ordinary least-squares line through (i, ys[i]).
type LinearFit struct {
	Slope     float64
	Intercept float64
	RSquared  float64
}

// FitLine fits y = slope*x + intercept with x = 0..n-1. RSquared is 0 when
// the series has no variance. Fewer than two points give a flat line through
// the last value.
func FitLine(ys []float64) LinearFit {
	n := len(ys)
	if n == 0 {
		return LinearFit{}
	}
	if n == 1 {
		return LinearFit{Intercept: ys[0]}
	}

	xMean := float64(n-1) / 2
	yMean := Mean(ys)

	var sxy, sxx float64
	for i, y := range ys {
		dx := float64(i) - xMean
		sxy += dx * (y - yMean)
		sxx += dx * dx
	}
	slope := sxy / sxx
	intercept := yMean - slope*xMean

	var ssRes, ssTot float64
	for i, y := range ys {
		pred := slope*float64(i) + intercept
		ssRes += (y - pred) * (y - pred)
		ssTot += (y - yMean) * (y - yMean)
	}

	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	return LinearFit{Slope: slope, Intercept: intercept, RSquared: r2}
}

// Predict evaluates the fitted line at x.
func (f LinearFit) Predict(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// MonthlySeries is a per-month aggregate ordered by month key.
type MonthlySeries struct {
	Months []string
	Values []float64
}

// Len returns the number of months in the series.
func (s MonthlySeries) Len() int {
	return len(s.Months)
}

// Mean returns the mean of the monthly values.
func (s MonthlySeries) Mean() float64 {
	return Mean(s.Values)
}

// Get returns the value for a month, or 0 when the month is absent.
func (s MonthlySeries) Get(month string) float64 {
	i := sort.SearchStrings(s.Months, month)
	if i < len(s.Months) && s.Months[i] == month {
		return s.Values[i]
	}
	return 0
}

// SumByMonth groups transaction amounts by calendar month. Only months that
// contain at least one transaction appear in the result.
func SumByMonth(txs []models.Transaction) MonthlySeries {
	sums := make(map[string]float64)
	for _, tx := range txs {
		sums[tx.Month] += tx.Amount
	}

	months := make([]string, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Strings(months)

	values := make([]float64, len(months))
	for i, m := range months {
		values[i] = sums[m]
	}
	return MonthlySeries{Months: months, Values: values}
}

// NetByMonth returns income minus expenses over the union of months present
// in either series. A month missing from one side counts as zero there.
func NetByMonth(income, expenses MonthlySeries) MonthlySeries {
	seen := make(map[string]bool)
	var months []string
	for _, m := range append(append([]string{}, income.Months...), expenses.Months...) {
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Strings(months)

	values := make([]float64, len(months))
	for i, m := range months {
		values[i] = income.Get(m) - expenses.Get(m)
	}
	return MonthlySeries{Months: months, Values: values}
}

// Align returns the values of s over the given months, zero-filled.
func (s MonthlySeries) Align(months []string) []float64 {
	out := make([]float64, len(months))
	for i, m := range months {
		out[i] = s.Get(m)
	}
	return out
}
