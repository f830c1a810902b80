// Package dateutils provides the date parsing and calendar helpers used by the
// normalizer and the analytics layer.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date layouts
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "2-Jan-2006"
)

// CommonFormats lists the layouts ParseDate tries, in order. ISO layouts come
// first because they are unambiguous.
var CommonFormats = []string{
	DateLayoutISO,
	time.RFC3339,
	DateLayoutFull,
	"2006-01-02T15:04:05",
	DateLayoutEuropean,
	"2.1.2006",
	DateLayoutUS,
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	DateLayoutWithMonth,
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var spaces = regexp.MustCompile(`\s+`)

// ParseDate attempts to parse a date string using CommonFormats and returns
// the calendar date (UTC midnight) together with the detected layout.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("empty date")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return TruncateToDay(t), format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString trims a date string and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// TruncateToDay drops the time-of-day and returns the date at UTC midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// DaysBetween returns the number of whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(TruncateToDay(b).Sub(TruncateToDay(a)).Hours() / 24)
}

// AddDays moves a date by n calendar days.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// SubtractMonth moves a date one calendar month back, clamping the day to
// the end of the target month (31 March becomes 29 February in a leap year).
func SubtractMonth(date time.Time) time.Time {
	firstOfPrev := time.Date(date.Year(), date.Month()-1, 1, 0, 0, 0, 0, date.Location())
	lastDay := EndOfMonth(firstOfPrev).Day()
	day := date.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfPrev.Year(), firstOfPrev.Month(), day,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// StartOfMonth returns the first day of the month for a given date.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date.
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}
