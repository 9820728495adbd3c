// Package logging assembles structured slog loggers and formatting helpers used
// across mediasweep commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so scanner code can tag log
// lines with the run identifier and the service being reconciled. Logs go to
// stderr by default because stdout carries command results. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
