package structlog

import (
	"context"

	"go.uber.org/zap"
)

// ZapFactory produces back-ends writing into a shared *zap.Logger. Logger
// names become zap named scopes.
type ZapFactory struct {
	base *zap.Logger
}

var _ LoggerFactory = (*ZapFactory)(nil)

func NewZapFactory(base *zap.Logger) *ZapFactory {
	return &ZapFactory{base: base}
}

func (f *ZapFactory) Backend(name string) Backend {
	return &zapBackend{log: f.base.Named(name)}
}

type zapBackend struct {
	log *zap.Logger
}

var _ Backend = (*zapBackend)(nil)

func (b *zapBackend) Emit(_ context.Context, level string, ev Event) error {
	msg := ev.String(EventKey, "")
	fields := make([]zap.Field, 0, len(ev))

	for k, v := range ev {
		if k == EventKey || k == LoggerKey {
			continue
		}

		fields = append(fields, zap.Any(k, v))
	}

	switch level {
	case LevelDebug:
		b.log.Debug(msg, fields...)
	case LevelInfo:
		b.log.Info(msg, fields...)
	case LevelWarning, "warn":
		b.log.Warn(msg, fields...)
	// fatal and critical are mapped to the error level, a library back-end
	// must not terminate the process
	case LevelError, LevelFatal, "critical":
		b.log.Error(msg, fields...)
	default:
		b.log.Info(msg, fields...)
	}

	return nil
}
