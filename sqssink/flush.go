package sqssink

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/roadrunner-server/errors"
	"go.uber.org/zap"
)

// Run switches the sink into asynchronous mode: events queue up in the
// buffered channel and a background loop ships them. Emit blocks only when
// the buffer is full.
func (s *Sink) Run() error {
	const op = errors.Op("sqs_sink_run")

	if atomic.LoadUint64(&s.stopped) == 1 {
		return errors.E(op, errors.Str("sink was stopped"))
	}

	if !atomic.CompareAndSwapUint32(&s.listeners, 0, 1) {
		return errors.E(op, errors.Str("flush loop is already running"))
	}

	s.flush()
	s.log.Debug("flush loop was started", zap.Stringp("queue", s.queue))

	return nil
}

func (s *Sink) flush() {
	go func() {
		for {
			select {
			case <-s.pauseCh:
				s.log.Debug("sqs flush loop was stopped")
				return
			case msg := <-s.eventsCh:
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				if err := s.send(ctx, msg); err != nil {
					s.log.Error("send message", zap.Error(err))
				}
				cancel()
			}
		}
	}()
}

// Stop shuts the sink down. The flush loop is stopped and whatever it did
// not get to is drained synchronously; subsequent Emit calls fail.
func (s *Sink) Stop(ctx context.Context) error {
	start := time.Now().UTC()

	atomic.StoreUint64(&s.stopped, 1)

	if atomic.CompareAndSwapUint32(&s.listeners, 1, 0) {
		s.pauseCh <- struct{}{}
	}

	for {
		select {
		case msg := <-s.eventsCh:
			if err := s.send(ctx, msg); err != nil {
				s.log.Error("send message", zap.Error(err))
			}
		default:
			s.log.Debug("sink was stopped", zap.Stringp("queue", s.queue), zap.Time("start", start), zap.Duration("elapsed", time.Since(start)))
			return nil
		}
	}
}
