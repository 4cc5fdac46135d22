package logging

import (
	"context"
	"log/slog"

	"github.com/GusBusDraws/aps-directional/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for per-invocation correlation identifiers.
	FieldRunID = "run_id"
	// FieldSequence is the standardized structured logging key for sequence names.
	FieldSequence = "sequence"
	// FieldCommand is the standardized structured logging key for CLI command names.
	FieldCommand = "command"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if name, ok := services.CommandFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCommand, name))
	}
	if name, ok := services.SequenceFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSequence, name))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
