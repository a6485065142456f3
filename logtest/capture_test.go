package logtest

import (
	"context"
	stderr "errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/structlog-go/structlog"
)

type recordingBackend struct {
	events []structlog.Event
}

func (b *recordingBackend) Emit(_ context.Context, _ string, ev structlog.Event) error {
	b.events = append(b.events, ev)
	return nil
}

func (b *recordingBackend) Backend(_ string) structlog.Backend {
	return b
}

func newCaptureConfig(procs ...structlog.Processor) (*structlog.Config, *recordingBackend) {
	backend := &recordingBackend{}
	cfg := structlog.NewConfig(procs...)
	cfg.SetFactory(backend)

	return cfg, backend
}

func TestCaptureLogs(t *testing.T) {
	cfg, backend := newCaptureConfig(structlog.AddTimestamp)
	log := cfg.Logger("svc")

	entries, err := CaptureLogs(cfg, func(c *LogCapture) error {
		log.Info("one", "k", "v")

		// the recorder is live inside the scope
		require.Len(t, c.Entries(), 1)

		log.Error("two")
		log.Warning("three")
		return nil
	})
	require.NoError(t, err)

	require.Len(t, entries, 3)

	require.Equal(t, "one", entries[0].String(structlog.EventKey, ""))
	require.Equal(t, "v", entries[0].String("k", ""))
	require.Equal(t, "info", entries[0].String(LogLevelKey, ""))

	require.Equal(t, "two", entries[1].String(structlog.EventKey, ""))
	require.Equal(t, "error", entries[1].String(LogLevelKey, ""))

	require.Equal(t, "three", entries[2].String(structlog.EventKey, ""))
	require.Equal(t, "warning", entries[2].String(LogLevelKey, ""))

	// the capture chain is a singleton: the configured processors did not run
	require.False(t, entries[0].Has(structlog.TimestampKey))

	// nothing reached the back-end
	require.Empty(t, backend.events)
}

func TestCaptureLogsCallOrder(t *testing.T) {
	cfg, _ := newCaptureConfig()
	log := cfg.Logger("svc")

	entries, err := CaptureLogs(cfg, func(_ *LogCapture) error {
		for i := 0; i < 10; i++ {
			log.Info(strconv.Itoa(i), "seq", i)
		}
		return nil
	})
	require.NoError(t, err)

	require.Len(t, entries, 10)
	for i := 0; i < 10; i++ {
		require.Equal(t, i, entries[i].Int("seq", -1))
		require.Equal(t, strconv.Itoa(i), entries[i].String(structlog.EventKey, ""))
	}
}

func TestCaptureLogsRestoresChain(t *testing.T) {
	marker := func(_ context.Context, _ string, ev structlog.Event) (structlog.Event, error) {
		ev.With("marker", true)
		return ev, nil
	}

	cfg, backend := newCaptureConfig(marker)
	log := cfg.Logger("svc")

	_, err := CaptureLogs(cfg, func(_ *LogCapture) error {
		log.Info("captured")
		return nil
	})
	require.NoError(t, err)

	require.Len(t, cfg.Processors(), 1)

	// the original chain is functional again
	log.Info("after")
	require.Len(t, backend.events, 1)
	require.True(t, backend.events[0].Bool("marker", false))
}

func TestCaptureLogsRestoresOnError(t *testing.T) {
	cfg, _ := newCaptureConfig(structlog.AddLogLevel)
	log := cfg.Logger("svc")

	errBoom := stderr.New("boom")

	entries, err := CaptureLogs(cfg, func(_ *LogCapture) error {
		log.Info("before the failure")
		return errBoom
	})

	// the caller's error comes back unmodified
	require.Same(t, errBoom, err)
	require.Len(t, entries, 1)
	require.Len(t, cfg.Processors(), 1)
}

func TestCaptureLogsRestoresOnPanic(t *testing.T) {
	cfg, _ := newCaptureConfig(structlog.AddLogLevel)

	require.PanicsWithValue(t, "boom", func() {
		_, _ = CaptureLogs(cfg, func(_ *LogCapture) error {
			panic("boom")
		})
	})

	require.Len(t, cfg.Processors(), 1)

	// a new scope works after the panic, the configuration is not left busy
	_, err := CaptureLogs(cfg, func(_ *LogCapture) error { return nil })
	require.NoError(t, err)
}

func TestCaptureLogsOverlappingScopes(t *testing.T) {
	cfg, _ := newCaptureConfig()

	_, err := CaptureLogs(cfg, func(_ *LogCapture) error {
		_, errInner := CaptureLogs(cfg, func(_ *LogCapture) error { return nil })
		require.Error(t, errInner)
		return nil
	})
	require.NoError(t, err)
}

func TestCaptureLogsDefaultConfig(t *testing.T) {
	prev := structlog.Default().Processors()

	entries, err := CaptureLogs(nil, func(_ *LogCapture) error {
		structlog.NewLogger("svc").Info("hello")
		return nil
	})
	require.NoError(t, err)

	require.Len(t, entries, 1)
	require.Equal(t, "info", entries[0].String(LogLevelKey, ""))
	require.Len(t, structlog.Default().Processors(), len(prev))
}

func TestLogCaptureAsProcessor(t *testing.T) {
	// fixture-style use: install the recorder manually
	c := NewLogCapture()
	cfg := structlog.NewConfig(c.Process)
	log := cfg.Logger("svc")

	log.Debug("d")
	log.Error("e")

	require.Len(t, c.Entries(), 2)
	require.Equal(t, "debug", c.Entries()[0].String(LogLevelKey, ""))
	require.Equal(t, "error", c.Entries()[1].String(LogLevelKey, ""))
}
