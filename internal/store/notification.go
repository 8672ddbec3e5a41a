package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/keepsake-app/keepsake-api/internal/domain"
)

// NotificationStore defines the interface for notification persistence
// used by job resource scopes during fan-out.
// Version: 1.0
type NotificationStore interface {
	// CreateNotification saves a single notification row.
	// The notification must be valid according to domain validation rules.
	CreateNotification(ctx context.Context, notification *domain.Notification) error

	// ListFollowerIDs returns the IDs of every user following subjectID,
	// in follow order. Used to resolve fan-out recipients.
	ListFollowerIDs(ctx context.Context, subjectID uuid.UUID) ([]uuid.UUID, error)
}
