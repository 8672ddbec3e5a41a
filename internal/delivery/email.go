package delivery

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/keepsake-app/keepsake-api/internal/job"
	"github.com/keepsake-app/keepsake-api/internal/platform/mail"
)

// emailTemplate pairs the subject and body templates for one message kind.
type emailTemplate struct {
	subject *template.Template
	body    *template.Template
}

// mustEmailTemplate parses a subject/body pair. Missing parameter keys
// fail rendering rather than producing "<no value>" in delivered mail.
func mustEmailTemplate(kind, subject, body string) emailTemplate {
	return emailTemplate{
		subject: template.Must(
			template.New(kind + "_subject").Option("missingkey=error").Parse(subject),
		),
		body: template.Must(
			template.New(kind + "_body").Option("missingkey=error").Parse(body),
		),
	}
}

var emailTemplates = map[job.MessageKind]emailTemplate{
	job.KindWelcomeEmail: mustEmailTemplate(
		string(job.KindWelcomeEmail),
		"Welcome to Keepsake, {{.display_name}}!",
		"Hi {{.display_name}},\n\n"+
			"Your Keepsake account is ready. Start by adding your first memory\n"+
			"or inviting the people you want to share with.\n\n"+
			"— The Keepsake team\n",
	),
	job.KindMemorySharedEmail: mustEmailTemplate(
		string(job.KindMemorySharedEmail),
		"{{.owner_name}} shared a memory with you",
		"Hi,\n\n"+
			"{{.owner_name}} shared the memory \"{{.memory_title}}\" with you on Keepsake.\n"+
			"Sign in to see it.\n\n"+
			"— The Keepsake team\n",
	),
	job.KindWeeklyDigestEmail: mustEmailTemplate(
		string(job.KindWeeklyDigestEmail),
		"Your week on Keepsake",
		"Hi {{.display_name}},\n\n"+
			"You added {{.memory_count}} memories this week and received\n"+
			"{{.reaction_count}} reactions.\n\n"+
			"— The Keepsake team\n",
	),
}

// EmailHandler delivers one outbound email for a single message kind.
// The job's target is the recipient address; the template data fills in
// the kind's subject and body templates.
type EmailHandler struct {
	kind      job.MessageKind
	templates emailTemplate
}

// NewEmailHandler creates the handler for the given message kind.
// Returns an error if no templates are defined for the kind.
func NewEmailHandler(kind job.MessageKind) (*EmailHandler, error) {
	templates, ok := emailTemplates[kind]
	if !ok {
		return nil, fmt.Errorf("no email templates defined for kind %q", kind)
	}

	return &EmailHandler{
		kind:      kind,
		templates: templates,
	}, nil
}

// Execute renders the kind's templates with the job's parameters and
// sends the result to target through the scope's mail transport.
func (h *EmailHandler) Execute(
	ctx context.Context,
	target string,
	data job.TemplateData,
	scope job.Scope,
) error {
	s, err := scopeFrom(scope)
	if err != nil {
		return err
	}

	subject, err := renderTemplate(h.templates.subject, data)
	if err != nil {
		return fmt.Errorf("failed to render subject for %s: %w", h.kind, err)
	}

	body, err := renderTemplate(h.templates.body, data)
	if err != nil {
		return fmt.Errorf("failed to render body for %s: %w", h.kind, err)
	}

	if err := s.Mailer().Send(ctx, mail.Message{
		To:      target,
		Subject: subject,
		Body:    body,
	}); err != nil {
		return fmt.Errorf("failed to deliver %s mail: %w", h.kind, err)
	}

	return nil
}

// renderTemplate executes tpl against the job's template data.
func renderTemplate(tpl *template.Template, data job.TemplateData) (string, error) {
	var sb strings.Builder
	if err := tpl.Execute(&sb, map[string]any(data)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Ensure EmailHandler implements job.Handler
var _ job.Handler = (*EmailHandler)(nil)
