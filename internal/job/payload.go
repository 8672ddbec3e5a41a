package job

import (
	"errors"

	"github.com/google/uuid"
)

// NotificationKind selects the fan-out behavior for a notification job.
type NotificationKind string

// Possible notification kinds
const (
	KindMemoryShared  NotificationKind = "memory_shared"
	KindCommentAdded  NotificationKind = "comment_added"
	KindFriendRequest NotificationKind = "friend_request"
)

// MessageKind selects the template for a single outbound message job.
type MessageKind string

// Possible message kinds
const (
	KindWelcomeEmail      MessageKind = "welcome_email"
	KindMemorySharedEmail MessageKind = "memory_shared_email"
	KindWeeklyDigestEmail MessageKind = "weekly_digest_email"
)

// Common validation errors for payloads
var (
	ErrEmptyTarget = errors.New("job target cannot be empty")
	ErrInvalidKind = errors.New("invalid job kind")
)

// Payload is the read-only view of one unit of deferred work that the
// lane and processor machinery operates on. Concrete payloads are plain
// immutable values: they must never carry handles borrowed from the
// request that enqueued them.
// Version: 1.0
type Payload interface {
	// JobID returns the payload's unique identifier, used for log correlation.
	JobID() uuid.UUID

	// JobTarget returns the identity of the recipient or subject.
	JobTarget() string

	// JobKind returns the kind discriminator as a string.
	JobKind() string

	// JobParams returns the ordered parameter mapping.
	JobParams() Params
}

// NotificationPayload describes one fan-out notification job.
type NotificationPayload struct {
	ID     uuid.UUID
	Target string
	Kind   NotificationKind
	Params Params
}

// NewNotificationPayload creates a validated notification payload.
// The params slice is copied so later mutation by the caller cannot
// reach a queued payload.
func NewNotificationPayload(
	target string,
	kind NotificationKind,
	params Params,
) (NotificationPayload, error) {
	if target == "" {
		return NotificationPayload{}, ErrEmptyTarget
	}
	if !isValidNotificationKind(kind) {
		return NotificationPayload{}, ErrInvalidKind
	}

	return NotificationPayload{
		ID:     uuid.New(),
		Target: target,
		Kind:   kind,
		Params: params.clone(),
	}, nil
}

func (p NotificationPayload) JobID() uuid.UUID  { return p.ID }
func (p NotificationPayload) JobTarget() string { return p.Target }
func (p NotificationPayload) JobKind() string   { return string(p.Kind) }
func (p NotificationPayload) JobParams() Params { return p.Params }

// MessagePayload describes one single-recipient outbound message job.
type MessagePayload struct {
	ID     uuid.UUID
	Target string
	Kind   MessageKind
	Params Params
}

// NewMessagePayload creates a validated message payload.
func NewMessagePayload(target string, kind MessageKind, params Params) (MessagePayload, error) {
	if target == "" {
		return MessagePayload{}, ErrEmptyTarget
	}
	if !isValidMessageKind(kind) {
		return MessagePayload{}, ErrInvalidKind
	}

	return MessagePayload{
		ID:     uuid.New(),
		Target: target,
		Kind:   kind,
		Params: params.clone(),
	}, nil
}

func (p MessagePayload) JobID() uuid.UUID  { return p.ID }
func (p MessagePayload) JobTarget() string { return p.Target }
func (p MessagePayload) JobKind() string   { return string(p.Kind) }
func (p MessagePayload) JobParams() Params { return p.Params }

// isValidNotificationKind checks if the given kind is a known NotificationKind.
func isValidNotificationKind(kind NotificationKind) bool {
	switch kind {
	case KindMemoryShared, KindCommentAdded, KindFriendRequest:
		return true
	default:
		return false
	}
}

// isValidMessageKind checks if the given kind is a known MessageKind.
func isValidMessageKind(kind MessageKind) bool {
	switch kind {
	case KindWelcomeEmail, KindMemorySharedEmail, KindWeeklyDigestEmail:
		return true
	default:
		return false
	}
}
