package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the registration welcome email.
type WelcomeEmailData struct {
	Email string
	Name  string
}

// EventJoinedEmailData holds data for the join-confirmation email.
type EventJoinedEmailData struct {
	Email      string
	Name       string
	EventTitle string
	EventDate  string
	Location   string
}

// EmailService defines the contract for sending domain-level emails.
// Sending is best-effort: callers log failures but do not fail the request.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
	SendEventJoined(ctx context.Context, data *EventJoinedEmailData) error
}
