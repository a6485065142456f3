// Package structlog is a small processor-pipeline structured logging library.
//
// A log call builds an [Event] (a key-value mapping), runs it through the
// processor chain held by a [Config] and hands the survivor to a [Backend]
// produced by the configured [LoggerFactory]. A processor may transform the
// event, replace it, or return [ErrDropEvent] to stop the pipeline for that
// event.
//
// Configuration is explicit: loggers are created from a *Config and the chain
// is swapped through SetProcessors, which is also how the logtest package
// installs its capture recorder and restores the previous chain afterwards.
// A process-wide default configuration is available through [Default] for
// applications which do not need several independent pipelines.
//
// Built-in processors cover timestamps, level injection, OpenTelemetry trace
// correlation and context-bound fields. Back-ends are provided for JSON line
// writers, zap and (in the sqssink subpackage) AWS SQS queues.
package structlog
