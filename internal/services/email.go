package services

import (
	"context"
	"fmt"
	"log/slog"

	"openinvite/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendResponseNotice tells a host that a guest answered, using the "response_notice" template.
func (s *emailService) SendResponseNotice(ctx context.Context, data *domain.ResponseNoticeEmailData) error {
	if data == nil {
		return fmt.Errorf("response notice data is nil")
	}
	if data.Email == "" {
		return fmt.Errorf("response notice has no recipient")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("response_notice", data)
	if err != nil {
		return fmt.Errorf("failed to render response_notice template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send response notice email: %w", err)
	}
	s.logger.InfoContext(ctx, "response notice sent", "invitation", data.InvitationTitle)
	return nil
}
