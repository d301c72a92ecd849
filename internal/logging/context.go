package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Structured field keys shared across packages.
const (
	FieldComponent       = "component"
	FieldRunID           = "run_id"
	FieldStep            = "step"
	FieldProgressPercent = "progress_percent"
	FieldSource          = "source"
	FieldOutput          = "output"
)

type runIDKey struct{}

// WithRunID stores a run identifier on the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunIDFromContext returns the run identifier stored on ctx, if any.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}

// ContextFields extracts structured attributes from the context.
func ContextFields(ctx context.Context) []slog.Attr {
	if id, ok := RunIDFromContext(ctx); ok {
		return []slog.Attr{String(FieldRunID, id)}
	}
	return nil
}
