package services

import "context"

type contextKey string

const (
	runIDKey    contextKey = "run_id"
	sequenceKey contextKey = "sequence"
	commandKey  contextKey = "command"
)

// WithRunID annotates context with the per-invocation correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSequence annotates context with the sequence name being rendered.
func WithSequence(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, sequenceKey, name)
}

// SequenceFromContext returns the sequence name if present.
func SequenceFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sequenceKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithCommand annotates context with the CLI command name.
func WithCommand(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, commandKey, name)
}

// CommandFromContext returns the CLI command name if present.
func CommandFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(commandKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
