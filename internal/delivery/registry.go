package delivery

import (
	"fmt"

	"github.com/keepsake-app/keepsake-api/internal/job"
)

// NewNotificationRegistry builds the registry for the fan-out
// notification lane with a handler for every notification kind.
func NewNotificationRegistry() (*job.Registry, error) {
	registry := job.NewRegistry()

	for _, kind := range []job.NotificationKind{
		job.KindMemoryShared,
		job.KindCommentAdded,
		job.KindFriendRequest,
	} {
		handler, err := NewNotificationHandler(kind)
		if err != nil {
			return nil, fmt.Errorf("failed to build notification handler: %w", err)
		}
		registry.Register(string(kind), handler)
	}

	return registry, nil
}

// NewMessageRegistry builds the registry for the single-message lane
// with a handler for every message kind.
func NewMessageRegistry() (*job.Registry, error) {
	registry := job.NewRegistry()

	for _, kind := range []job.MessageKind{
		job.KindWelcomeEmail,
		job.KindMemorySharedEmail,
		job.KindWeeklyDigestEmail,
	} {
		handler, err := NewEmailHandler(kind)
		if err != nil {
			return nil, fmt.Errorf("failed to build email handler: %w", err)
		}
		registry.Register(string(kind), handler)
	}

	return registry, nil
}
