package structlog

import (
	"context"
	"io"
	"sync"

	"github.com/goccy/go-json"
)

// Backend receives fully processed events. Anything that did not get dropped
// by the chain ends up here.
type Backend interface {
	Emit(ctx context.Context, level string, ev Event) error
}

// LoggerFactory produces back-ends for named loggers.
type LoggerFactory interface {
	Backend(name string) Backend
}

// WriterBackend renders events as JSON lines.
type WriterBackend struct {
	mu sync.Mutex
	w  io.Writer
}

var _ Backend = (*WriterBackend)(nil)

func NewWriterBackend(w io.Writer) *WriterBackend {
	return &WriterBackend{w: w}
}

func (b *WriterBackend) Emit(_ context.Context, _ string, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.w.Write(append(data, '\n')); err != nil {
		return err
	}

	return nil
}

// WriterFactory hands the same writer back-end to every logger name.
type WriterFactory struct {
	backend *WriterBackend
}

var _ LoggerFactory = (*WriterFactory)(nil)

func NewWriterFactory(w io.Writer) *WriterFactory {
	return &WriterFactory{backend: NewWriterBackend(w)}
}

func (f *WriterFactory) Backend(_ string) Backend {
	return f.backend
}
