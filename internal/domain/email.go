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

// ResponseNoticeEmailData holds data for the email a host receives when a guest answers.
type ResponseNoticeEmailData struct {
	Email           string
	HostName        string
	InvitationTitle string
	GuestName       string
	ResponseLabel   string
	Adults          *int
	Kids            *int
	Total           *int
	Message         string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendResponseNotice(ctx context.Context, data *ResponseNoticeEmailData) error
}
