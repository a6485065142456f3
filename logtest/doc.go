// Package logtest provides test-support fixtures for structlog pipelines.
//
// [LogCapture] is a processor recording every event routed to it instead of
// letting it reach a back-end. [CaptureLogs] wraps it into a scope: it swaps
// the processor chain of a configuration for a singleton capture chain, runs
// the caller's body and restores the previous chain afterwards, also when the
// body fails or panics.
//
// [ReturnLogger] is a stand-in back-end echoing whatever it is called with,
// and [ReturnLoggerFactory] produces and caches a single instance of it.
package logtest
