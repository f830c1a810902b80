// Package parsererror defines the typed errors raised while loading input
// tables. The engine itself never fails on data; these errors cover
// structurally unusable input only.
package parsererror

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports required columns absent from a table header.
type MissingColumnsError struct {
	Table   string
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s table is missing required columns: %s",
		e.Table, strings.Join(e.Missing, ", "))
}

// ParseError represents a file that could not be read or decoded.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an input file that does not conform to the
// format expected from its extension.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}
