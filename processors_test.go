package structlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestAddTimestamp(t *testing.T) {
	ev, err := AddTimestamp(context.Background(), LevelInfo, Event{})
	require.NoError(t, err)

	ts := ev.String(TimestampKey, "")
	require.NotEmpty(t, ts)

	parsed, err := time.Parse(time.RFC3339Nano, ts)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)
}

func TestAddLogLevel(t *testing.T) {
	ev, err := AddLogLevel(context.Background(), LevelWarning, Event{EventKey: "careful"})
	require.NoError(t, err)
	require.Equal(t, LevelWarning, ev.String(LevelKey, ""))
	require.Equal(t, "careful", ev.String(EventKey, ""))
}

func TestTraceContextInjectsIDs(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	ev, err := TraceContext(ctx, LevelInfo, Event{})
	require.NoError(t, err)

	sc := trace.SpanContextFromContext(ctx)
	require.Equal(t, sc.TraceID().String(), ev.String(TraceIDKey, ""))
	require.Equal(t, sc.SpanID().String(), ev.String(SpanIDKey, ""))
}

func TestTraceContextNoSpan(t *testing.T) {
	ev, err := TraceContext(context.Background(), LevelInfo, Event{})
	require.NoError(t, err)
	require.False(t, ev.Has(TraceIDKey))
	require.False(t, ev.Has(SpanIDKey))
}
