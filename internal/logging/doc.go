// Package logging assembles the structured slog loggers used across
// modcabinet.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and appends a run log under the configured log directory in
// addition to stdout. The console handler colorizes level labels when
// writing to a terminal. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
package logging
