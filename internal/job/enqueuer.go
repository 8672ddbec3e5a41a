package job

import (
	"context"
	"log/slog"
)

// Enqueuer hands a payload off for execution. The normal implementation
// buffers onto a lane; the synchronous implementation exists for call
// sites that predate the queue (and for test harnesses) and executes
// the job inline with the same failure handling. Both share the
// contract that a handler failure never reaches the caller.
// Version: 1.0
type Enqueuer[P Payload] interface {
	Enqueue(ctx context.Context, payload P) error
}

// LaneEnqueuer is the normal, fully-wired path: payloads are buffered
// onto the lane, blocking under backpressure.
type LaneEnqueuer[P Payload] struct {
	lane *Lane[P]
}

// NewLaneEnqueuer creates an enqueuer backed by the given lane.
func NewLaneEnqueuer[P Payload](lane *Lane[P]) *LaneEnqueuer[P] {
	return &LaneEnqueuer[P]{lane: lane}
}

// Enqueue buffers the payload, returning once it is queued. Only ctx
// firing while the lane is saturated produces an error.
func (e *LaneEnqueuer[P]) Enqueue(ctx context.Context, payload P) error {
	return e.lane.Enqueue(ctx, payload)
}

// SyncEnqueuer executes jobs inline instead of queueing them. It is the
// degraded fallback for callers not yet wired to a lane: behavior is
// equivalent to the queued path (fresh scope, same handler resolution,
// same catch-log-and-discard on failure) except that the work happens
// on the caller's goroutine before Enqueue returns.
//
// Deprecated: migrate call sites to a LaneEnqueuer; the inline path
// remains only for incremental rollout.
type SyncEnqueuer[P Payload] struct {
	scopes   ScopeFactory
	handlers *Registry
	logger   *slog.Logger
}

// NewSyncEnqueuer creates an inline-executing enqueuer.
func NewSyncEnqueuer[P Payload](
	scopes ScopeFactory,
	handlers *Registry,
	logger *slog.Logger,
) *SyncEnqueuer[P] {
	return &SyncEnqueuer[P]{
		scopes:   scopes,
		handlers: handlers,
		logger:   logger.With("component", "sync_enqueuer"),
	}
}

// Enqueue runs the payload to completion inline. Handler failures are
// logged and swallowed exactly as the processor loop does, so the
// caller observes no difference from the queued path.
func (e *SyncEnqueuer[P]) Enqueue(ctx context.Context, payload P) error {
	Execute(ctx, e.scopes, e.handlers, e.logger, payload)
	return nil
}
