// Package logging assembles the structured slog loggers used across
// mediasort.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and provides attr helpers plus a no-op logger so packages and
// tests share one logging shape. Prefer these constructors over
// hand-rolled slog setup.
package logging
