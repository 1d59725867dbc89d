// Package logging builds the slog loggers used across synco, with a
// compact console handler for interactive use and a JSON handler for
// machine consumption.
package logging
