package structlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// AddTimestamp stamps the event with the current UTC time in RFC3339Nano.
func AddTimestamp(_ context.Context, _ string, ev Event) (Event, error) {
	ev[TimestampKey] = time.Now().UTC().Format(time.RFC3339Nano)
	return ev, nil
}

// AddLogLevel records the invoked level method under the "level" key.
func AddLogLevel(_ context.Context, level string, ev Event) (Event, error) {
	ev[LevelKey] = level
	return ev, nil
}

// TraceContext injects the trace and span IDs of the span found in the call
// context. Events logged outside a recording span pass through untouched.
func TraceContext(ctx context.Context, _ string, ev Event) (Event, error) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ev, nil
	}

	ev[TraceIDKey] = sc.TraceID().String()
	ev[SpanIDKey] = sc.SpanID().String()

	return ev, nil
}
