// Package sqssink implements a structlog back-end shipping log events to an
// AWS SQS queue.
//
// The central type is [Sink], which satisfies structlog.Backend: every event
// surviving the processor chain is rendered as a JSON message and sent to the
// configured queue. Message attributes carry the level, the logger name, a
// unique event id and the propagated trace context (W3C TraceContext,
// Baggage and Jaeger). FIFO queues are supported through message-group and
// deduplication ids.
//
// Queue creation is handled automatically unless SkipQueueDeclaration is
// set, and a vanished queue is re-created on the fly. Delivery is synchronous
// by default; Run starts a buffered flush loop and Stop drains it.
//
// Configuration is captured in [Config] and covers AWS credentials, queue
// attributes, tags, message delay and the flush buffer size.
package sqssink
