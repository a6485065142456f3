package structlog

import (
	"math"
	"strconv"
)

// Event is the key-value payload of a single log call. Processors receive it,
// may mutate it in place or return a replacement, and the configured back-end
// renders whatever comes out of the chain.
type Event map[string]any

// Well-known event keys.
const (
	EventKey     string = "event"
	LoggerKey    string = "logger"
	LevelKey     string = "level"
	TimestampKey string = "timestamp"
	TraceIDKey   string = "trace_id"
	SpanIDKey    string = "span_id"
)

// With sets the value associated with the key.
func (e Event) With(key string, value any) {
	e[key] = value
}

// Has checks if the key is present in the event.
func (e Event) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// Get used to get the data associated with the key.
func (e Event) Get(key string) any {
	return e[key]
}

// String must return the value as string or return the default value.
func (e Event) String(key string, d string) string {
	if value, ok := e[key]; ok {
		if str, ok := value.(string); ok {
			return str
		}
	}

	return d
}

// Int must return the value as int or return the default value.
func (e Event) Int(key string, d int) int {
	if value, ok := e[key]; ok {
		switch v := value.(type) {
		// the most probable case
		case int:
			return v
		case int64:
			return int(v)
		case int32:
			return int(v)
		case int16:
			return int(v)
		case int8:
			return int(v)
		case float64:
			return int(v)
		case string:
			res, err := strconv.ParseInt(v, 10, 32)
			if err != nil {
				// return default on failure
				return d
			}

			if res > math.MaxInt32 || res < math.MinInt32 {
				// return default if out of bounds
				return d
			}

			return int(res)
		default:
			return d
		}
	}

	return d
}

// Bool must return the value as bool or return the default value.
func (e Event) Bool(key string, d bool) bool {
	if value, ok := e[key]; ok {
		switch v := value.(type) {
		case bool:
			return v
		case string:
			switch v {
			case "true":
				return true
			case "false":
				return false
			default:
				return d
			}
		default:
			return d
		}
	}

	return d
}

// Copy returns a shallow copy of the event.
func (e Event) Copy() Event {
	out := make(Event, len(e))
	for k, v := range e {
		out[k] = v
	}

	return out
}
