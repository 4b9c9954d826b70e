package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Attribute keys for request-scoped identifiers.
const (
	KeyRequestID     = "request_id"
	KeyCorrelationID = "correlation_id"
	KeyTraceID       = "trace_id"
	KeyProverbID     = "proverb_id"
)

type ctxKey struct{}

var fallback atomic.Pointer[slog.Logger]

func init() {
	fallback.Store(slog.Default())
}

// FromContext returns the logger stored in ctx, or the process default.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return logger
		}
	}

	return fallback.Load()
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// With returns a context whose logger carries the extra attributes.
//
//	ctx = logging.With(ctx, logging.KeyProverbID, id)
func With(ctx context.Context, args ...any) context.Context {
	if len(args) == 0 {
		return ctx
	}

	return WithContext(ctx, FromContext(ctx).With(args...))
}

// Enricher returns a func that tags the context logger with key=value.
// The HTTP id middlewares use it.
func Enricher(key string) func(context.Context, string) context.Context {
	return func(ctx context.Context, value string) context.Context {
		return With(ctx, slog.String(key, value))
	}
}

// SetDefault makes logger the fallback for contexts without one and the slog default.
func SetDefault(logger *slog.Logger) {
	fallback.Store(logger)
	slog.SetDefault(logger)
}
