package stats

import (
	"testing"
	"time"

	"fjacquet/finhealth/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMeanAndStdDev(t *testing.T) {
	values := []float64{10, 10, 10, 10, 100}

	assert.Equal(t, 28.0, Mean(values))
	assert.Equal(t, 36.0, PopStdDev(values))
	assert.InDelta(t, 40.249, SampleStdDev(values), 0.001)

	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, PopStdDev(nil))
	assert.Equal(t, 0.0, SampleStdDev([]float64{42}), "one observation has no spread")
}

func TestMinMaxSafeDiv(t *testing.T) {
	assert.Equal(t, 3.0, Min([]float64{5, 3, 9}))
	assert.Equal(t, 9.0, Max([]float64{5, 3, 9}))
	assert.Equal(t, 0.0, Min(nil))
	assert.Equal(t, 2.5, SafeDiv(5, 2, 0))
	assert.Equal(t, 1.0, SafeDiv(5, 0, 1))
	assert.Equal(t, 1.0, Clamp(3, 0, 1))
	assert.Equal(t, 0.0, Clamp(-2, 0, 1))
}

func TestFitLine(t *testing.T) {
	t.Run("perfect line", func(t *testing.T) {
		fit := FitLine([]float64{100, 200, 300})
		assert.InDelta(t, 100, fit.Slope, 1e-9)
		assert.InDelta(t, 100, fit.Intercept, 1e-9)
		assert.InDelta(t, 1, fit.RSquared, 1e-9)
		assert.InDelta(t, 400, fit.Predict(3), 1e-9)
	})

	t.Run("flat series has zero r squared", func(t *testing.T) {
		fit := FitLine([]float64{50, 50, 50, 50})
		assert.Equal(t, 0.0, fit.Slope)
		assert.Equal(t, 50.0, fit.Intercept)
		assert.Equal(t, 0.0, fit.RSquared)
	})

	t.Run("single point", func(t *testing.T) {
		fit := FitLine([]float64{70})
		assert.Equal(t, 70.0, fit.Predict(1))
	})
}

func tx(date string, amount float64, typ string) models.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return models.Transaction{Date: d, Amount: amount, Type: typ, Month: models.MonthKey(d)}
}

func TestSumByMonthAndNet(t *testing.T) {
	income := SumByMonth([]models.Transaction{
		tx("2024-02-01", 1000, models.TypeIncome),
		tx("2024-01-05", 900, models.TypeIncome),
		tx("2024-01-20", 100, models.TypeIncome),
	})
	expenses := SumByMonth([]models.Transaction{
		tx("2024-01-03", 400, models.TypeExpense),
		tx("2024-03-03", 250, models.TypeExpense),
	})

	assert.Equal(t, []string{"2024-01", "2024-02"}, income.Months)
	assert.Equal(t, []float64{1000, 1000}, income.Values)
	assert.Equal(t, 0.0, income.Get("2024-03"))

	net := NetByMonth(income, expenses)
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, net.Months)
	assert.Equal(t, []float64{600, 1000, -250}, net.Values)
	assert.Equal(t, []float64{1000, 1000, 0}, income.Align(net.Months))
}
