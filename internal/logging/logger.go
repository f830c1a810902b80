// Package logging provides the structured logging abstraction used across
// finhealth. Components depend on the Logger interface; the CLI wires a
// logrus-backed implementation and tests use MockLogger.
package logging

// Logger defines structured logging for the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a logger with an error attached to every entry
	WithError(err error) Logger

	// WithField returns a logger with a single field attached to every entry
	WithField(key string, value interface{}) Logger

	// WithFields returns a logger with several fields attached to every entry
	WithFields(fields ...Field) Logger

	// Fatal logs at fatal level and exits the program
	Fatal(msg string, fields ...Field)
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
