package logtest

import (
	"context"

	"github.com/structlog-go/structlog"
)

// Fields plays the keyword-argument role in echo calls: a trailing Fields
// value passed to Msg is split off from the positional arguments.
type Fields map[string]any

// Echo is the result of an echo call which cannot be collapsed to a single
// value: the positional arguments paired with the keyword fields.
type Echo struct {
	Args   []any
	Fields Fields
}

// ReturnLogger returns the arguments that it is called with.
//
//	logtest.ReturnLogger{}.Msg("hello")                               // "hello"
//	logtest.ReturnLogger{}.Msg("hello", logtest.Fields{"when": "again"}) // Echo
//
// Useful for assertions. All level-named methods alias Msg.
type ReturnLogger struct{}

var _ structlog.Backend = (*ReturnLogger)(nil)

// Msg returns the single argument as-is when called with exactly one
// positional argument and no fields, and an Echo of (args, fields) otherwise.
func (ReturnLogger) Msg(args ...any) any {
	var kw Fields
	if n := len(args); n > 0 {
		if m, ok := args[n-1].(Fields); ok {
			kw = m
			args = args[:n-1]
		}
	}

	if len(args) == 1 && len(kw) == 0 {
		return args[0]
	}

	return Echo{Args: args, Fields: kw}
}

func (l ReturnLogger) Log(args ...any) any       { return l.Msg(args...) }
func (l ReturnLogger) Debug(args ...any) any     { return l.Msg(args...) }
func (l ReturnLogger) Info(args ...any) any      { return l.Msg(args...) }
func (l ReturnLogger) Warn(args ...any) any      { return l.Msg(args...) }
func (l ReturnLogger) Warning(args ...any) any   { return l.Msg(args...) }
func (l ReturnLogger) Err(args ...any) any       { return l.Msg(args...) }
func (l ReturnLogger) Error(args ...any) any     { return l.Msg(args...) }
func (l ReturnLogger) Critical(args ...any) any  { return l.Msg(args...) }
func (l ReturnLogger) Exception(args ...any) any { return l.Msg(args...) }
func (l ReturnLogger) Fatal(args ...any) any     { return l.Msg(args...) }
func (l ReturnLogger) Failure(args ...any) any   { return l.Msg(args...) }

// Emit satisfies structlog.Backend so the logger can terminate a real
// pipeline in tests. The event is echoed through Msg and discarded.
func (l ReturnLogger) Emit(_ context.Context, level string, ev structlog.Event) error {
	l.Msg(level, Fields(ev))
	return nil
}

// ReturnLoggerFactory produces and caches a single ReturnLogger. Positional
// arguments are silently ignored. It satisfies structlog.LoggerFactory, so it
// can be installed via Config.SetFactory.
type ReturnLoggerFactory struct {
	logger *ReturnLogger
}

var _ structlog.LoggerFactory = (*ReturnLoggerFactory)(nil)

func NewReturnLoggerFactory() *ReturnLoggerFactory {
	return &ReturnLoggerFactory{}
}

// Logger returns the cached instance, constructing it on first use.
func (f *ReturnLoggerFactory) Logger(_ ...any) *ReturnLogger {
	if f.logger == nil {
		f.logger = &ReturnLogger{}
	}

	return f.logger
}

func (f *ReturnLoggerFactory) Backend(_ string) structlog.Backend {
	return f.Logger()
}
