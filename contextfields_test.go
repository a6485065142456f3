package structlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBindContext(t *testing.T) {
	ctx := BindContext(context.Background(), "request_id", "r-1", "peer", "10.0.0.1")
	ctx = BindContext(ctx, "peer", "10.0.0.2")

	fields := ContextFields(ctx)
	require.Equal(t, "r-1", fields.String("request_id", ""))
	// a later bind of the same key wins
	require.Equal(t, "10.0.0.2", fields.String("peer", ""))
}

func TestUnbindContext(t *testing.T) {
	ctx := BindContext(context.Background(), "a", 1, "b", 2)
	ctx = UnbindContext(ctx, "a", "missing")

	fields := ContextFields(ctx)
	require.False(t, fields.Has("a"))
	require.Equal(t, 2, fields.Int("b", 0))
}

func TestClearContext(t *testing.T) {
	ctx := BindContext(context.Background(), "a", 1)
	ctx = ClearContext(ctx)

	require.Empty(t, ContextFields(ctx))
}

func TestMergeContextFields(t *testing.T) {
	ctx := BindContext(context.Background(), "request_id", "r-1", EventKey, "bound")

	ev, err := MergeContextFields(ctx, LevelInfo, Event{EventKey: "called"})
	require.NoError(t, err)

	require.Equal(t, "r-1", ev.String("request_id", ""))
	// keys of the event itself win over the bound ones
	require.Equal(t, "called", ev.String(EventKey, ""))
}

func TestMergeContextFieldsEmpty(t *testing.T) {
	in := Event{EventKey: "called"}
	ev, err := MergeContextFields(context.Background(), LevelInfo, in)
	require.NoError(t, err)
	require.Equal(t, in, ev)
}

func TestContextFieldsCopied(t *testing.T) {
	ctx := BindContext(context.Background(), "a", 1)

	fields := ContextFields(ctx)
	fields.With("b", 2)

	// mutating the returned copy must not leak into the context
	require.False(t, ContextFields(ctx).Has("b"))
}
