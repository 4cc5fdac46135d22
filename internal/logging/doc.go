// Package logging builds the slog loggers used across the CLI. It provides a
// human-oriented console handler, a JSON handler for machine consumption, and
// helpers that lift correlation fields out of context into log attributes.
package logging
