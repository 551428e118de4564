// Package logging provides structured logging for Hearth Core.
//
// It wraps log/slog with config-driven handler selection and a small
// set of default fields. Components derive their own loggers via
// With("component", name) so every line carries its origin.
package logging
