package structlog

import (
	"context"
	stderr "errors"

	"github.com/roadrunner-server/errors"
)

// Level method names as they travel through the processor chain.
const (
	LevelDebug   string = "debug"
	LevelInfo    string = "info"
	LevelWarning string = "warning"
	LevelError   string = "error"
	LevelFatal   string = "fatal"
)

// Logger is the front-end of the pipeline. Every level method funnels into
// Log: the bound fields and the call arguments are merged into a fresh event,
// the configured chain runs over it and the surviving event is delivered to
// the back-end produced by the configured factory.
type Logger struct {
	name   string
	cfg    *Config
	ctx    context.Context
	fields Event
}

func newLogger(cfg *Config, name string) *Logger {
	return &Logger{
		name:   name,
		cfg:    cfg,
		ctx:    context.Background(),
		fields: Event{},
	}
}

// Name returns the logger name.
func (l *Logger) Name() string {
	return l.name
}

// Bind returns a child logger carrying the given key-value pairs in every
// event. Keys must be strings, non-string keys are skipped.
func (l *Logger) Bind(kv ...any) *Logger {
	fields := l.fields.Copy()
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			fields[k] = kv[i+1]
		}
	}

	return &Logger{
		name:   l.name,
		cfg:    l.cfg,
		ctx:    l.ctx,
		fields: fields,
	}
}

// WithContext returns a logger whose emits run under ctx. Context-aware
// processors (MergeContextFields, TraceContext) read from it.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		ctx = context.Background()
	}

	return &Logger{
		name:   l.name,
		cfg:    l.cfg,
		ctx:    ctx,
		fields: l.fields,
	}
}

// Log emits an event at an arbitrary level. A processor returning
// ErrDropEvent stops delivery and is not an error; every other processor or
// back-end failure is returned to the caller.
func (l *Logger) Log(level string, msg string, kv ...any) error {
	const op = errors.Op("structlog_emit")

	ev := make(Event, len(l.fields)+len(kv)/2+2)
	for k, v := range l.fields {
		ev[k] = v
	}

	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			ev[k] = kv[i+1]
		}
	}

	ev[EventKey] = msg
	if l.name != "" {
		ev[LoggerKey] = l.name
	}

	m := l.cfg.Metrics()
	if m != nil {
		m.CountEmit(l.name, level)
	}

	out, err := runChain(l.ctx, l.cfg.Processors(), level, ev)
	if err != nil {
		if stderr.Is(err, ErrDropEvent) {
			if m != nil {
				m.CountDrop()
			}

			return nil
		}

		return errors.E(op, err)
	}

	if err := l.cfg.Factory().Backend(l.name).Emit(l.ctx, level, out); err != nil {
		if m != nil {
			m.CountDeliverErr()
		}

		return errors.E(op, err)
	}

	return nil
}

func (l *Logger) Debug(msg string, kv ...any) {
	_ = l.Log(LevelDebug, msg, kv...)
}

func (l *Logger) Info(msg string, kv ...any) {
	_ = l.Log(LevelInfo, msg, kv...)
}

func (l *Logger) Warn(msg string, kv ...any) {
	_ = l.Log(LevelWarning, msg, kv...)
}

// Warning is an alias of Warn.
func (l *Logger) Warning(msg string, kv ...any) {
	_ = l.Log(LevelWarning, msg, kv...)
}

func (l *Logger) Error(msg string, kv ...any) {
	_ = l.Log(LevelError, msg, kv...)
}

// Fatal emits at the fatal level. The pipeline itself never terminates the
// process, that decision belongs to the back-end.
func (l *Logger) Fatal(msg string, kv ...any) {
	_ = l.Log(LevelFatal, msg, kv...)
}
