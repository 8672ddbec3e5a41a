package job

import (
	"context"
	"fmt"
	"log/slog"
)

// Dispatcher is the thin producer helper business services call to
// defer work. It validates and constructs payloads, then hands them to
// the enqueuer wired for the appropriate lane. Whether a given enqueuer
// is queue-backed or the synchronous fallback is invisible to callers.
type Dispatcher struct {
	notifications Enqueuer[NotificationPayload]
	messages      Enqueuer[MessagePayload]
	logger        *slog.Logger
}

// NewDispatcher creates a dispatcher fronting the two lanes.
func NewDispatcher(
	notifications Enqueuer[NotificationPayload],
	messages Enqueuer[MessagePayload],
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		messages:      messages,
		logger:        logger.With("component", "job_dispatcher"),
	}
}

// EnqueueNotification defers a fan-out notification job for target. The
// call returns once the payload is buffered (it may block briefly under
// backpressure); the returned error covers payload validation and
// cancellation only, never the job's eventual outcome.
func (d *Dispatcher) EnqueueNotification(
	ctx context.Context,
	target string,
	kind NotificationKind,
	params Params,
) error {
	payload, err := NewNotificationPayload(target, kind, params)
	if err != nil {
		return fmt.Errorf("invalid notification job: %w", err)
	}

	if err := d.notifications.Enqueue(ctx, payload); err != nil {
		return fmt.Errorf("failed to enqueue notification job: %w", err)
	}

	d.logger.Debug("notification job dispatched",
		"job_id", payload.ID,
		"job_kind", payload.Kind,
		"target", payload.Target)
	return nil
}

// EnqueueMessage defers a single outbound message job for target.
func (d *Dispatcher) EnqueueMessage(
	ctx context.Context,
	target string,
	kind MessageKind,
	params Params,
) error {
	payload, err := NewMessagePayload(target, kind, params)
	if err != nil {
		return fmt.Errorf("invalid message job: %w", err)
	}

	if err := d.messages.Enqueue(ctx, payload); err != nil {
		return fmt.Errorf("failed to enqueue message job: %w", err)
	}

	d.logger.Debug("message job dispatched",
		"job_id", payload.ID,
		"job_kind", payload.Kind,
		"target", payload.Target)
	return nil
}
