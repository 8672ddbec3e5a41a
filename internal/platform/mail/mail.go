package mail

import "context"

// Message is one outbound plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message. Implementations must be safe for
// use by one job at a time; each job's resource scope receives its own
// Sender handle.
// Version: 1.0
type Sender interface {
	// Send delivers the message, honoring ctx for connection and
	// delivery deadlines.
	Send(ctx context.Context, msg Message) error
}
