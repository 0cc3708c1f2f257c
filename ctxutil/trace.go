package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

// TraceIDKey is the field name used for trace ids in logs and headers.
const TraceIDKey = "trace_id"

// TraceHeader is the HTTP header carrying the trace id.
const TraceHeader = "X-Trace-Id"

type traceIDKey struct{}

// GetTraceID gets trace id from context.
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if traceID, ok := ctx.Value(traceIDKey{}).(string); ok {
		return traceID
	}
	return ""
}

// SetTraceID sets trace id to context.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return SetTraceID(ctx, traceID), traceID
}
