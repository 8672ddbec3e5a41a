package delivery

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/keepsake-app/keepsake-api/internal/domain"
	"github.com/keepsake-app/keepsake-api/internal/platform/mail"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// fakeMailer implements mail.Sender and captures sent messages.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []mail.Message
	sendErr error
}

func (m *fakeMailer) Send(ctx context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mail.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

// fakeNotificationStore implements store.NotificationStore in memory.
type fakeNotificationStore struct {
	mu        sync.Mutex
	followers map[uuid.UUID][]uuid.UUID
	created   []*domain.Notification
	createErr func(n *domain.Notification) error
	listErr   error
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{
		followers: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *fakeNotificationStore) CreateNotification(
	ctx context.Context,
	notification *domain.Notification,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		if err := s.createErr(notification); err != nil {
			return err
		}
	}
	s.created = append(s.created, notification)
	return nil
}

func (s *fakeNotificationStore) ListFollowerIDs(
	ctx context.Context,
	subjectID uuid.UUID,
) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.followers[subjectID], nil
}

func (s *fakeNotificationStore) createdNotifications() []*domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Notification, len(s.created))
	copy(out, s.created)
	return out
}

// newTestScope builds a delivery scope around fakes. There is no
// database connection; Close is a no-op in that case.
func newTestScope(notifications *fakeNotificationStore, mailer *fakeMailer) *Scope {
	return &Scope{
		notifications: notifications,
		mailer:        mailer,
		logger:        testLogger(),
	}
}
