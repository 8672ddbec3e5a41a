package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// DefaultLaneCapacity is used when a lane is constructed with a
// non-positive capacity.
const DefaultLaneCapacity = 1000

// ErrLaneCancelled is returned by Enqueue and Dequeue when the provided
// context fires before the operation completes. It is an expected
// shutdown condition, not a failure.
var ErrLaneCancelled = errors.New("lane operation cancelled")

// Lane is one bounded FIFO queue with exactly one dedicated consumer.
// Lanes are fully independent: saturating one lane has no effect on
// another. The buffered channel is the only state shared between the
// producer side and the consumer side, so callers never need external
// locking.
type Lane[P Payload] struct {
	name   string
	items  chan P
	logger *slog.Logger
}

// NewLane creates a lane with the given name and buffer capacity.
func NewLane[P Payload](name string, capacity int, logger *slog.Logger) *Lane[P] {
	if capacity <= 0 {
		logger.Warn("invalid lane capacity specified, using default",
			"lane", name,
			"specified_capacity", capacity,
			"default_capacity", DefaultLaneCapacity)
		capacity = DefaultLaneCapacity
	}

	return &Lane[P]{
		name:   name,
		items:  make(chan P, capacity),
		logger: logger.With("lane", name),
	}
}

// Name returns the lane's name.
func (l *Lane[P]) Name() string {
	return l.name
}

// Enqueue appends the payload to the tail of the lane's buffer. When the
// buffer is full the call blocks until a dequeue frees a slot
// (backpressure, never drop-on-full). Only ctx firing aborts a pending
// enqueue, in which case ErrLaneCancelled is returned.
func (l *Lane[P]) Enqueue(ctx context.Context, payload P) error {
	select {
	case l.items <- payload:
		l.logger.Debug("job enqueued",
			"job_id", payload.JobID(),
			"job_kind", payload.JobKind(),
			"queue_len", len(l.items),
			"queue_cap", cap(l.items))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: enqueue on lane %s: %v", ErrLaneCancelled, l.name, ctx.Err())
	}
}

// Dequeue returns the oldest queued payload (strict FIFO within the
// lane), blocking while the buffer is empty. A fired ctx yields
// ErrLaneCancelled; the ctx is checked before the buffer so that after
// cancellation no further job is ever handed out, even if items remain
// buffered.
func (l *Lane[P]) Dequeue(ctx context.Context) (P, error) {
	var zero P

	if err := ctx.Err(); err != nil {
		return zero, fmt.Errorf("%w: dequeue on lane %s: %v", ErrLaneCancelled, l.name, err)
	}

	select {
	case payload := <-l.items:
		return payload, nil
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: dequeue on lane %s: %v", ErrLaneCancelled, l.name, ctx.Err())
	}
}

// Len returns the number of currently buffered payloads.
func (l *Lane[P]) Len() int {
	return len(l.items)
}
