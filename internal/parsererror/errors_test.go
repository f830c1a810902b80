package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingColumnsError(t *testing.T) {
	err := &MissingColumnsError{Table: "transactions", Missing: []string{"date", "type"}}

	assert.Equal(t, "transactions table is missing required columns: date, type", err.Error())

	wrapped := fmt.Errorf("loading input: %w", err)
	var target *MissingColumnsError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, []string{"date", "type"}, target.Missing)
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "csv parse error",
			err: &ParseError{
				Parser: "CSV",
				Field:  "file",
				Value:  "tx.csv",
				Err:    errors.New("wrong number of fields"),
			},
			expected: "CSV: failed to parse file='tx.csv': wrong number of fields",
		},
		{
			name: "parse error with empty value",
			err: &ParseError{
				Parser: "CAMT",
				Field:  "document",
				Value:  "",
				Err:    errors.New("EOF"),
			},
			expected: "CAMT: failed to parse document='': EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{Parser: "CSV", Field: "file", Value: "x", Err: originalErr}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{
		FilePath:       "/tmp/statement.pdf",
		ExpectedFormat: ".csv, .xml",
		Msg:            "unsupported extension",
	}

	assert.Equal(t, "invalid format in file '/tmp/statement.pdf': unsupported extension. Expected: .csv, .xml", err.Error())
}
