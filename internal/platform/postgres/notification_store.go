package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/keepsake-app/keepsake-api/internal/domain"
	"github.com/keepsake-app/keepsake-api/internal/store"
)

// NotificationStore implements store.NotificationStore using PostgreSQL.
type NotificationStore struct {
	db store.DBTX
}

// NewNotificationStore creates a new NotificationStore backed by the
// given database handle.
func NewNotificationStore(db store.DBTX) *NotificationStore {
	return &NotificationStore{
		db: db,
	}
}

// CreateNotification saves a single notification row.
func (s *NotificationStore) CreateNotification(
	ctx context.Context,
	notification *domain.Notification,
) error {
	if err := notification.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO notifications (id, recipient_id, kind, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		notification.ID,
		notification.RecipientID,
		notification.Kind,
		notification.Body,
		notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", MapError(err))
	}

	return nil
}

// ListFollowerIDs returns the IDs of every user following subjectID in
// follow order.
func (s *NotificationStore) ListFollowerIDs(
	ctx context.Context,
	subjectID uuid.UUID,
) ([]uuid.UUID, error) {
	query := `
		SELECT follower_id
		FROM followers
		WHERE followee_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var followerIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan follower ID: %w", MapError(err))
		}
		followerIDs = append(followerIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate followers: %w", MapError(err))
	}

	return followerIDs, nil
}

// Ensure NotificationStore implements store.NotificationStore
var _ store.NotificationStore = (*NotificationStore)(nil)
