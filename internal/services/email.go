package services

import (
	"context"
	"fmt"
	"log/slog"

	"mergingtonactivities/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendSignupConfirmation sends the "signup_confirmation" template to the new participant.
func (s *emailService) SendSignupConfirmation(ctx context.Context, data *domain.RosterEmailData) error {
	return s.send(ctx, "signup_confirmation", data)
}

// SendUnregisterNotice sends the "unregister_notice" template to the removed participant.
func (s *emailService) SendUnregisterNotice(ctx context.Context, data *domain.RosterEmailData) error {
	return s.send(ctx, "unregister_notice", data)
}

func (s *emailService) send(ctx context.Context, template string, data *domain.RosterEmailData) error {
	if data == nil {
		return fmt.Errorf("%s email data is nil", template)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	s.logger.DebugContext(ctx, "email sent", "template", template, "to", data.Email)
	return nil
}
