package logtest

import (
	"context"
	"sync"

	"github.com/roadrunner-server/errors"
	"github.com/structlog-go/structlog"
)

// LogLevelKey is injected into every captured event and records which level
// method produced it.
const LogLevelKey string = "log_level"

// LogCapture records log events in its entries list. Generally CaptureLogs
// is what a test wants, but the recorder can be installed manually:
//
//	cap := logtest.NewLogCapture()
//	cfg := structlog.NewConfig(cap.Process)
//
// Process always returns structlog.ErrDropEvent, so a captured event never
// travels further down the chain and never reaches a back-end.
type LogCapture struct {
	entries []structlog.Event
}

func NewLogCapture() *LogCapture {
	return &LogCapture{}
}

// Process implements the structlog.Processor signature. The event is
// augmented with the invoking level under LogLevelKey, recorded by reference
// in call order and dropped.
func (c *LogCapture) Process(_ context.Context, level string, ev structlog.Event) (structlog.Event, error) {
	ev[LogLevelKey] = level
	c.entries = append(c.entries, ev)

	return nil, structlog.ErrDropEvent
}

// Entries returns the recorded events in call order. The slice is live:
// events captured after the call are visible through the recorder, not
// through a previously returned slice header.
func (c *LogCapture) Entries() []structlog.Event {
	return c.entries
}

// one scope per configuration at a time
var activeCaptures sync.Map //nolint:gochecknoglobals

// CaptureLogs runs fn with the configuration's processor chain replaced by a
// fresh capture recorder and returns the recorded events. The recorder is
// passed to fn so assertions can be made while the scope is still active.
// The previous chain is restored before CaptureLogs returns, whether fn
// succeeds, returns an error or panics; fn's error comes back unmodified.
//
// A nil cfg selects the default configuration. Two overlapping captures on
// the same configuration would silently steal each other's restore target,
// so a second scope on a busy configuration fails fast instead.
func CaptureLogs(cfg *structlog.Config, fn func(c *LogCapture) error) ([]structlog.Event, error) {
	const op = errors.Op("capture_logs")

	if cfg == nil {
		cfg = structlog.Default()
	}

	if _, loaded := activeCaptures.LoadOrStore(cfg, struct{}{}); loaded {
		return nil, errors.E(op, errors.Str("log capture already active for this configuration"))
	}

	c := NewLogCapture()
	prev := cfg.Processors()
	cfg.SetProcessors(c.Process)

	defer func() {
		cfg.SetProcessors(prev...)
		activeCaptures.Delete(cfg)
	}()

	err := fn(c)

	return c.entries, err
}
