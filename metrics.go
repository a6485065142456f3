package structlog

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "structlog"
)

// StatsExporter counts events flowing through a configuration: emitted per
// logger and level, dropped by the chain and failed at delivery. Attach it
// via Config.SetMetrics and register it through Config.MetricsCollector.
type StatsExporter struct {
	dropped    *uint64
	deliverErr *uint64

	droppedDesc    *prometheus.Desc
	deliverErrDesc *prometheus.Desc
	eventCounter   *prometheus.CounterVec
}

var _ prometheus.Collector = (*StatsExporter)(nil)

func NewStatsExporter() *StatsExporter {
	return &StatsExporter{
		dropped:    toPtr(uint64(0)),
		deliverErr: toPtr(uint64(0)),

		droppedDesc:    prometheus.NewDesc(prometheus.BuildFQName(namespace, "", "events_dropped"), "Number of events dropped by the processor chain", nil, nil),
		deliverErrDesc: prometheus.NewDesc(prometheus.BuildFQName(namespace, "", "delivery_errors"), "Number of events which failed to reach the back-end", nil, nil),

		eventCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "The total number of events emitted into the pipeline",
		}, []string{"logger", "level"}),
	}
}

func (se *StatsExporter) CountEmit(logger, level string) {
	se.eventCounter.WithLabelValues(logger, level).Inc()
}

func (se *StatsExporter) CountDrop() {
	atomic.AddUint64(se.dropped, 1)
}

func (se *StatsExporter) CountDeliverErr() {
	atomic.AddUint64(se.deliverErr, 1)
}

func (se *StatsExporter) Describe(d chan<- *prometheus.Desc) {
	// send description
	d <- se.droppedDesc
	d <- se.deliverErrDesc

	se.eventCounter.Describe(d)
}

func (se *StatsExporter) Collect(ch chan<- prometheus.Metric) {
	// send the values to the prometheus
	ch <- prometheus.MustNewConstMetric(se.droppedDesc, prometheus.GaugeValue, float64(atomic.LoadUint64(se.dropped)))
	ch <- prometheus.MustNewConstMetric(se.deliverErrDesc, prometheus.GaugeValue, float64(atomic.LoadUint64(se.deliverErr)))

	se.eventCounter.Collect(ch)
}

func toPtr[T any](v T) *T {
	return &v
}
