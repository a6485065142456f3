package structlog

import (
	"context"
	stderr "errors"
)

// ErrDropEvent halts processing of the current event. A processor returns it
// to signal that the event was handled and must not travel further down the
// chain or reach the back-end. It is not a failure.
var ErrDropEvent = stderr.New("structlog: event dropped")

// Processor transforms a single log event. It receives the context of the log
// call, the name of the level method that was invoked and the event payload.
// The returned event is fed to the next processor in the chain.
type Processor func(ctx context.Context, level string, ev Event) (Event, error)

func runChain(ctx context.Context, procs []Processor, level string, ev Event) (Event, error) {
	for i := 0; i < len(procs); i++ {
		next, err := procs[i](ctx, level, ev)
		if err != nil {
			return nil, err
		}

		ev = next
	}

	return ev, nil
}
