package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pdv-backend-go/internal/mailer"
	"pdv-backend-go/internal/models"
)

// mailService renders the transactional email templates and hands the result
// to the configured sender (direct SendGrid delivery or the message queue).
type mailService struct {
	sender      mailer.Sender
	companyName string
	logger      *zap.Logger
}

// NewMailService creates a new MailService instance.
func NewMailService(sender mailer.Sender, companyName string, logger *zap.Logger) MailService {
	return &mailService{
		sender:      sender,
		companyName: companyName,
		logger:      logger,
	}
}

// SendWelcomeEmail delivers the onboarding message carrying the temporary
// credentials.
func (s *mailService) SendWelcomeEmail(ctx context.Context, email, displayName, temporaryPassword string) error {
	fields := map[string]string{}
	if strings.TrimSpace(email) == "" {
		fields["email"] = "Email é obrigatório"
	}
	if strings.TrimSpace(displayName) == "" {
		fields["displayName"] = "Nome é obrigatório"
	}
	if temporaryPassword == "" {
		fields["temporaryPassword"] = "Senha temporária é obrigatória"
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}

	msg, err := mailer.RenderWelcome(mailer.WelcomeEmailData{
		Email:             email,
		DisplayName:       displayName,
		TemporaryPassword: temporaryPassword,
		CompanyName:       s.companyName,
	})
	if err != nil {
		return err
	}
	return s.deliver(ctx, "welcome", msg)
}

// SendPasswordResetEmail delivers the reset message carrying the reset link.
func (s *mailService) SendPasswordResetEmail(ctx context.Context, email, displayName, resetLink string) error {
	fields := map[string]string{}
	if strings.TrimSpace(email) == "" {
		fields["email"] = "Email é obrigatório"
	}
	if strings.TrimSpace(resetLink) == "" {
		fields["resetLink"] = "Link de reset é obrigatório"
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	if strings.TrimSpace(displayName) == "" {
		displayName = email
	}

	msg, err := mailer.RenderPasswordReset(mailer.PasswordResetEmailData{
		Email:       email,
		DisplayName: displayName,
		ResetLink:   resetLink,
		CompanyName: s.companyName,
	})
	if err != nil {
		return err
	}
	return s.deliver(ctx, "password_reset", msg)
}

// SendStatusChangeEmail notifies the colaborador about the new status.
func (s *mailService) SendStatusChangeEmail(ctx context.Context, email, displayName string, newStatus models.StatusColaborador) error {
	fields := map[string]string{}
	if strings.TrimSpace(email) == "" {
		fields["email"] = "Email é obrigatório"
	}
	if !newStatus.Valid() {
		fields["newStatus"] = "Status desconhecido: " + string(newStatus)
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	if strings.TrimSpace(displayName) == "" {
		displayName = email
	}

	msg, err := mailer.RenderStatusChange(mailer.StatusChangeEmailData{
		Email:       email,
		DisplayName: displayName,
		NewStatus:   newStatus,
		CompanyName: s.companyName,
	})
	if err != nil {
		return err
	}
	return s.deliver(ctx, "status_change", msg)
}

func (s *mailService) deliver(ctx context.Context, kind string, msg mailer.Message) error {
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s email to '%s': %w", kind, msg.To, err)
	}
	s.logger.Info("email dispatched",
		zap.String("kind", kind),
		zap.String("to", msg.To),
	)
	return nil
}
