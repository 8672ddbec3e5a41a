package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Notification
var (
	ErrEmptyNotificationID          = errors.New("notification ID cannot be empty")
	ErrEmptyNotificationRecipientID = errors.New("notification recipient ID cannot be empty")
	ErrEmptyNotificationKind        = errors.New("notification kind cannot be empty")
	ErrEmptyNotificationBody        = errors.New("notification body cannot be empty")
)

// Notification represents one in-app notification delivered to a single
// recipient, produced by the fan-out of a background notification job.
// The row is the durable, user-visible outcome of the job; the job
// itself is never persisted.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Kind        string    `json:"kind"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewNotification creates a new Notification for the given recipient.
// It generates a new UUID for the notification ID and sets the creation
// timestamp. Returns an error if validation fails.
func NewNotification(recipientID uuid.UUID, kind, body string) (*Notification, error) {
	notification := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Kind:        kind,
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	}

	if err := notification.Validate(); err != nil {
		return nil, err
	}

	return notification, nil
}

// Validate checks if the Notification has valid data.
// Returns an error if any field fails validation.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrEmptyNotificationID
	}

	if n.RecipientID == uuid.Nil {
		return ErrEmptyNotificationRecipientID
	}

	if n.Kind == "" {
		return ErrEmptyNotificationKind
	}

	if n.Body == "" {
		return ErrEmptyNotificationBody
	}

	return nil
}
