package delivery

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/keepsake-app/keepsake-api/internal/job"
	"github.com/keepsake-app/keepsake-api/internal/platform/mail"
	"github.com/keepsake-app/keepsake-api/internal/platform/postgres"
	"github.com/keepsake-app/keepsake-api/internal/store"
)

// Scope is the production resource scope: a fresh bundle of dependency
// handles created for exactly one job's execution. The database handle
// is a dedicated connection checked out of the pool at creation time,
// never a handle inherited from the request that enqueued the job: that
// request has already completed and its resources are gone.
type Scope struct {
	conn          *sql.Conn
	notifications store.NotificationStore
	mailer        mail.Sender
	logger        *slog.Logger
}

// Notifications returns the scope's notification store, bound to the
// scope's dedicated connection.
func (s *Scope) Notifications() store.NotificationStore {
	return s.notifications
}

// Mailer returns the scope's mail sender.
func (s *Scope) Mailer() mail.Sender {
	return s.mailer
}

// Logger returns the scope's logger.
func (s *Scope) Logger() *slog.Logger {
	return s.logger
}

// Close releases the scope's dedicated database connection back to the
// pool.
func (s *Scope) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// ScopeFactory creates one isolated Scope per job from the shared,
// process-lifetime resources: the connection pool and the mail
// configuration. Only the factory is shared; everything it hands out is
// owned by a single job.
type ScopeFactory struct {
	db        *sql.DB
	newSender func() (mail.Sender, error)
	logger    *slog.Logger
}

// NewScopeFactory creates a scope factory over the given pool. The
// newSender function is invoked once per scope so each job gets its own
// transport handle.
func NewScopeFactory(
	db *sql.DB,
	newSender func() (mail.Sender, error),
	logger *slog.Logger,
) *ScopeFactory {
	return &ScopeFactory{
		db:        db,
		newSender: newSender,
		logger:    logger.With("component", "scope_factory"),
	}
}

// NewScope checks a dedicated connection out of the pool and builds a
// fresh set of stores and transports around it.
func (f *ScopeFactory) NewScope(ctx context.Context) (job.Scope, error) {
	conn, err := f.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire job connection: %w", err)
	}

	sender, err := f.newSender()
	if err != nil {
		if cerr := conn.Close(); cerr != nil {
			f.logger.Error("failed to release job connection", "error", cerr)
		}
		return nil, fmt.Errorf("failed to create mail sender: %w", err)
	}

	return &Scope{
		conn:          conn,
		notifications: postgres.NewNotificationStore(conn),
		mailer:        sender,
		logger:        f.logger,
	}, nil
}

// Ensure ScopeFactory implements job.ScopeFactory
var _ job.ScopeFactory = (*ScopeFactory)(nil)

// scopeFrom asserts the generic job scope back to the concrete delivery
// scope. A mismatch is a wiring bug, reported as a handler failure so
// the processor logs and discards the job.
func scopeFrom(s job.Scope) (*Scope, error) {
	scope, ok := s.(*Scope)
	if !ok {
		return nil, fmt.Errorf("unexpected scope type %T", s)
	}
	return scope, nil
}
