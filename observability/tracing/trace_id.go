package tracing

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// manualPrefix marks trace ids generated without an active span.
const manualPrefix = "man-"

// GetStartingTraceID returns the trace id of the span in ctx, or a generated
// "man-<uuid>" id when tracing is disabled so logs can still be correlated.
func GetStartingTraceID(ctx context.Context) string {
	if traceID := trace.SpanFromContext(ctx).SpanContext().TraceID(); traceID.IsValid() {
		return traceID.String()
	}
	return manualPrefix + uuid.NewString()
}
