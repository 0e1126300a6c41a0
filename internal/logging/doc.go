// Package logging assembles structured slog loggers and formatting helpers used
// across creditmarker.
//
// It owns the console and JSON handlers, colourises console output when it is
// attached to a terminal, and fans records out to an optional log file. It
// exposes context-aware helpers so comparison code can tag log lines with the
// comparison ID, and a no-op logger for tests and wiring code that cannot fail.
package logging
