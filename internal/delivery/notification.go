package delivery

import (
	"context"
	"fmt"
	"text/template"

	"github.com/google/uuid"
	"github.com/keepsake-app/keepsake-api/internal/domain"
	"github.com/keepsake-app/keepsake-api/internal/job"
)

var notificationTemplates = map[job.NotificationKind]*template.Template{
	job.KindMemoryShared: template.Must(
		template.New(string(job.KindMemoryShared)).Option("missingkey=error").
			Parse(`{{.owner_name}} shared the memory "{{.memory_title}}" with you`),
	),
	job.KindCommentAdded: template.Must(
		template.New(string(job.KindCommentAdded)).Option("missingkey=error").
			Parse(`{{.commenter_name}} commented on "{{.memory_title}}"`),
	),
	job.KindFriendRequest: template.Must(
		template.New(string(job.KindFriendRequest)).Option("missingkey=error").
			Parse(`{{.requester_name}} wants to connect with you`),
	),
}

// NotificationHandler fans one notification job out to every follower
// of the job's target. The target is the subject user's ID; each
// follower receives one notification row rendered from the kind's
// template.
type NotificationHandler struct {
	kind job.NotificationKind
	body *template.Template
}

// NewNotificationHandler creates the handler for the given notification
// kind. Returns an error if no template is defined for the kind.
func NewNotificationHandler(kind job.NotificationKind) (*NotificationHandler, error) {
	body, ok := notificationTemplates[kind]
	if !ok {
		return nil, fmt.Errorf("no notification template defined for kind %q", kind)
	}

	return &NotificationHandler{
		kind: kind,
		body: body,
	}, nil
}

// Execute resolves the fan-out recipients through the scope's store and
// writes one notification per recipient. A failure on one recipient is
// logged and does not block the remaining recipients; the first error
// is returned so the processor records the job as failed.
func (h *NotificationHandler) Execute(
	ctx context.Context,
	target string,
	data job.TemplateData,
	scope job.Scope,
) error {
	s, err := scopeFrom(scope)
	if err != nil {
		return err
	}

	subjectID, err := uuid.Parse(target)
	if err != nil {
		return fmt.Errorf("notification target is not a user ID: %w", err)
	}

	body, err := renderTemplate(h.body, data)
	if err != nil {
		return fmt.Errorf("failed to render %s notification: %w", h.kind, err)
	}

	recipientIDs, err := s.Notifications().ListFollowerIDs(ctx, subjectID)
	if err != nil {
		return fmt.Errorf("failed to resolve recipients: %w", err)
	}

	var firstErr error
	for _, recipientID := range recipientIDs {
		notification, err := domain.NewNotification(recipientID, string(h.kind), body)
		if err == nil {
			err = s.Notifications().CreateNotification(ctx, notification)
		}
		if err != nil {
			s.Logger().Error("failed to deliver notification",
				"kind", h.kind,
				"recipient_id", recipientID,
				"error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// Ensure NotificationHandler implements job.Handler
var _ job.Handler = (*NotificationHandler)(nil)
