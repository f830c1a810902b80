package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		dateStr     string
		expectedOk  bool
		expectedY   int
		expectedM   time.Month
		expectedD   int
		expectedFmt string
	}{
		{"ISO format", "2023-01-15", true, 2023, time.January, 15, DateLayoutISO},
		{"RFC3339", "2023-01-15T22:10:00Z", true, 2023, time.January, 15, time.RFC3339},
		{"European format", "15.01.2023", true, 2023, time.January, 15, DateLayoutEuropean},
		{"Short European format", "5.1.2023", true, 2023, time.January, 5, "2.1.2006"},
		{"US format", "01/15/2023", true, 2023, time.January, 15, DateLayoutUS},
		{"Dash-separated EU", "15-01-2023", true, 2023, time.January, 15, "02-01-2006"},
		{"Full timestamp", "2023-01-15 10:30:45", true, 2023, time.January, 15, DateLayoutFull},
		{"With month name", "15-Jan-2023", true, 2023, time.January, 15, DateLayoutWithMonth},
		{"Padded", "  2023-01-15 ", true, 2023, time.January, 15, DateLayoutISO},
		{"Empty string", "", false, 0, 0, 0, ""},
		{"Invalid format", "not a date", false, 0, 0, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, format, err := ParseDate(tc.dateStr)

			if !tc.expectedOk {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedY, date.Year())
			assert.Equal(t, tc.expectedM, date.Month())
			assert.Equal(t, tc.expectedD, date.Day())
			assert.Equal(t, tc.expectedFmt, format)
			assert.Equal(t, 0, date.Hour())
			assert.Equal(t, time.UTC, date.Location())
		})
	}
}

func TestDaysBetween(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 31, DaysBetween(jan, feb))
	assert.Equal(t, 29, DaysBetween(feb, mar))
	assert.Equal(t, -31, DaysBetween(feb, jan))
}

func TestSubtractMonth(t *testing.T) {
	tests := []struct {
		in       time.Time
		expected time.Time
	}{
		{time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC), time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, SubtractMonth(tc.in))
	}
}

func TestMonthBoundaries(t *testing.T) {
	date := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(date))
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), EndOfMonth(date))
	assert.Equal(t, "2024-02-10", ToISODate(date))
	assert.Equal(t, time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC), AddDays(date, 2))
}
