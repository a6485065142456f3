package structlog

import (
	"context"
)

type contextFieldsKey struct{}

// BindContext returns a context carrying the given key-value pairs. Fields
// accumulate across calls; a later bind of the same key wins. Use
// MergeContextFields as the first processor to fold them into every event.
func BindContext(ctx context.Context, kv ...any) context.Context {
	fields := ContextFields(ctx)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			fields[k] = kv[i+1]
		}
	}

	return context.WithValue(ctx, contextFieldsKey{}, fields)
}

// UnbindContext returns a context with the given keys removed.
func UnbindContext(ctx context.Context, keys ...string) context.Context {
	fields := ContextFields(ctx)
	for i := 0; i < len(keys); i++ {
		delete(fields, keys[i])
	}

	return context.WithValue(ctx, contextFieldsKey{}, fields)
}

// ClearContext returns a context with no bound fields.
func ClearContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextFieldsKey{}, Event{})
}

// ContextFields returns a copy of the fields bound to the context.
func ContextFields(ctx context.Context) Event {
	if fields, ok := ctx.Value(contextFieldsKey{}).(Event); ok {
		return fields.Copy()
	}

	return Event{}
}

// MergeContextFields merges context-bound fields into the event. Keys present
// in the event itself win over the bound ones.
func MergeContextFields(ctx context.Context, _ string, ev Event) (Event, error) {
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return ev, nil
	}

	for k, v := range ev {
		fields[k] = v
	}

	return fields, nil
}
