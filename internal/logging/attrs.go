package logging

import (
	"context"
	"log/slog"
	"time"
)

// String returns a string attribute.
func String(key, value string) slog.Attr { return slog.String(key, value) }

// Int returns an int attribute.
func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

// Int64 returns an int64 attribute.
func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

// Float64 returns a float attribute.
func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

// Bool returns a boolean attribute.
func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

// Duration returns a duration attribute.
func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

// Any returns an attribute holding an arbitrary value.
func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

// Error returns an attribute for error values; nil errors produce an empty attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Args converts attributes into variadic logger arguments.
func Args(attrs ...slog.Attr) []any {
	out := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		if attr.Equal(slog.Attr{}) {
			continue
		}
		out = append(out, attr)
	}
	return out
}

// NewNop returns a logger that discards all output.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger tags a logger with a component name.
func NewComponentLogger(base *slog.Logger, component string) *slog.Logger {
	if base == nil {
		base = NewNop()
	}
	if component == "" {
		return base
	}
	return base.With(String(FieldComponent, component))
}

// Progress logs a pipeline milestone with its completion percentage.
func Progress(ctx context.Context, logger *slog.Logger, percent int, step string) {
	if logger == nil {
		return
	}
	logger.InfoContext(ctx, step,
		Int(FieldProgressPercent, percent),
		String(FieldStep, step),
	)
}

// NoopHandler drops every record.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }
func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler        { return NoopHandler{} }
func (NoopHandler) WithGroup(string) slog.Handler             { return NoopHandler{} }
