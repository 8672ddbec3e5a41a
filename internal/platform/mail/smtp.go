package mail

import (
	"context"
	"fmt"

	"github.com/keepsake-app/keepsake-api/internal/config"
	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender over SMTP using the configured relay.
type SMTPSender struct {
	client *gomail.Client
	from   string
}

// NewSMTPSender creates a sender from the mail configuration. The
// underlying client dials lazily, so construction succeeds even when
// the relay is temporarily unreachable; the first Send reports the
// connection error instead.
func NewSMTPSender(cfg config.MailConfig) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPSender{
		client: client,
		from:   cfg.From,
	}, nil
}

// Send delivers a single plain-text message through the relay.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", s.from, err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

// Ensure SMTPSender implements Sender
var _ Sender = (*SMTPSender)(nil)
