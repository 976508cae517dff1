// Package logging assembles the slog loggers used across img2gif.
//
// It owns the console and JSON handlers, level and output plumbing, and
// context helpers that tag log lines with the conversion session and stage.
// Transcript collects the human-readable command log a conversion produces
// for display after the run. NewNop serves tests and wiring code that cannot
// fail.
package logging
