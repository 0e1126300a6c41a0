package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldComparisonID is the standardized key for comparison identifiers.
	FieldComparisonID = "comparison_id"
	// FieldEpisode is the standardized key for episode titles.
	FieldEpisode = "episode"
	// FieldFrame is the standardized key for base frame indices.
	FieldFrame = "frame"
	// FieldSecond is the standardized key for one-second bucket indices.
	FieldSecond = "second"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests a next step to the operator.
	FieldErrorHint = "error_hint"
)

type comparisonIDKey struct{}

// WithComparisonID stores a comparison identifier on the context.
func WithComparisonID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, comparisonIDKey{}, id)
}

// ComparisonIDFromContext returns the comparison identifier stored on ctx.
func ComparisonIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(comparisonIDKey{}).(string)
	return id, ok && id != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var fields []slog.Attr
	if id, ok := ComparisonIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldComparisonID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
