package structlog

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func gatherValues(t *testing.T, se *StatsExporter) map[string]float64 {
	t.Helper()

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(se))

	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, l := range m.GetLabel() {
				name += "_" + l.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				out[name] = m.GetCounter().GetValue()
			default:
				out[name] = m.GetGauge().GetValue()
			}
		}
	}

	return out
}

func TestStatsExporter(t *testing.T) {
	se := NewStatsExporter()

	se.CountEmit("svc", LevelInfo)
	se.CountEmit("svc", LevelInfo)
	se.CountEmit("svc", LevelError)
	se.CountDrop()
	se.CountDeliverErr()

	values := gatherValues(t, se)

	require.Equal(t, float64(2), values["structlog_events_total_svc_info"])
	require.Equal(t, float64(1), values["structlog_events_total_svc_error"])
	require.Equal(t, float64(1), values["structlog_events_dropped"])
	require.Equal(t, float64(1), values["structlog_delivery_errors"])
}

func TestConfigMetricsWiring(t *testing.T) {
	cfg, _ := newRecordingConfig()
	require.Nil(t, cfg.MetricsCollector())

	se := NewStatsExporter()
	cfg.SetMetrics(se)
	require.Len(t, cfg.MetricsCollector(), 1)

	log := cfg.Logger("svc")
	log.Info("one")
	log.Info("two")

	values := gatherValues(t, se)
	require.Equal(t, float64(2), values["structlog_events_total_svc_info"])
}

func TestConfigMetricsCountDrop(t *testing.T) {
	drop := func(_ context.Context, _ string, _ Event) (Event, error) {
		return nil, ErrDropEvent
	}

	cfg, backend := newRecordingConfig(drop)
	se := NewStatsExporter()
	cfg.SetMetrics(se)

	cfg.Logger("svc").Info("x")

	require.Empty(t, backend.events)

	values := gatherValues(t, se)
	require.Equal(t, float64(1), values["structlog_events_total_svc_info"])
	require.Equal(t, float64(1), values["structlog_events_dropped"])
}
