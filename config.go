package structlog

import (
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the processor chain and the logger factory used by every
// logger constructed from it. There is no hidden global state: the chain is
// swapped and restored through explicit accessors, which is what the logtest
// capture scope relies on.
type Config struct {
	mu      sync.RWMutex
	procs   []Processor
	factory LoggerFactory
	metrics *StatsExporter
}

// NewConfig returns a configuration with the provided processor chain and a
// JSON writer back-end on stdout. An empty chain is valid: events go straight
// to the back-end.
func NewConfig(procs ...Processor) *Config {
	return &Config{
		procs:   procs,
		factory: NewWriterFactory(os.Stdout),
	}
}

// Processors returns the currently configured chain. The returned slice is
// the live value: retain it to restore the chain later via SetProcessors.
func (c *Config) Processors() []Processor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.procs
}

// SetProcessors replaces the processor chain.
func (c *Config) SetProcessors(procs ...Processor) {
	c.mu.Lock()
	c.procs = procs
	c.mu.Unlock()
}

// Factory returns the configured logger factory.
func (c *Config) Factory() LoggerFactory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.factory
}

// SetFactory replaces the logger factory producing back-ends.
func (c *Config) SetFactory(f LoggerFactory) {
	c.mu.Lock()
	c.factory = f
	c.mu.Unlock()
}

// Metrics returns the stats exporter, nil when metrics are not enabled.
func (c *Config) Metrics() *StatsExporter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metrics
}

// SetMetrics attaches a stats exporter counting emitted and dropped events.
func (c *Config) SetMetrics(se *StatsExporter) {
	c.mu.Lock()
	c.metrics = se
	c.mu.Unlock()
}

// MetricsCollector exposes the attached exporter for registry registration.
func (c *Config) MetricsCollector() []prometheus.Collector {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.metrics == nil {
		return nil
	}

	return []prometheus.Collector{c.metrics}
}

// Logger constructs a bound logger emitting through this configuration.
func (c *Config) Logger(name string) *Logger {
	return newLogger(c, name)
}

//nolint:gochecknoglobals
var defaultConfig = NewConfig(MergeContextFields, AddTimestamp, AddLogLevel)

// Default returns the process-wide default configuration.
func Default() *Config {
	return defaultConfig
}

// Configure replaces the processor chain of the default configuration.
func Configure(procs ...Processor) {
	defaultConfig.SetProcessors(procs...)
}

// NewLogger constructs a bound logger on the default configuration.
func NewLogger(name string) *Logger {
	return defaultConfig.Logger(name)
}
