package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/burnboard/dto"
	"github.com/burnboard/lib/metrics"
)

// Routing keys for mail events on the topic exchange.
const (
	RouteVerificationMail  = "mail.verification"
	RoutePasswordResetMail = "mail.password_reset"
)

// Mailer delivers a single message. Satisfied by lib/mailer.
type Mailer interface {
	Send(to, subject, body string) error
}

// MailService consumes mail events and delivers them over SMTP. Keeping
// delivery off the request path means a slow mail relay never blocks an
// API response.
type MailService struct {
	mailer  Mailer
	baseURL string
	logger  *zap.Logger
}

// NewMailService creates a new mail service instance. baseURL is the
// public address of the dashboard, used to build links in mail bodies.
func NewMailService(mailer Mailer, baseURL string, logger *zap.Logger) *MailService {
	return &MailService{
		mailer:  mailer,
		baseURL: baseURL,
		logger:  logger,
	}
}

// HandleVerification delivers an email verification mail.
func (s *MailService) HandleVerification(ctx context.Context, data json.RawMessage) error {
	var payload dto.VerificationMailPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid verification mail payload: %w", err)
	}

	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nPlease confirm your email address by opening the link below:\r\n\r\n%s/auth/verify?token=%s\r\n\r\nThe link expires in 24 hours.\r\n",
		payload.Name, s.baseURL, payload.Token,
	)

	err := s.mailer.Send(payload.Email, "Confirm your email address", body)
	if err != nil {
		metrics.IncrementMailSent("verification", "failed")
		return err
	}

	metrics.IncrementMailSent("verification", "success")
	s.logger.Info("Verification mail sent", zap.String("email", payload.Email))
	return nil
}

// HandlePasswordReset delivers a password reset mail.
func (s *MailService) HandlePasswordReset(ctx context.Context, data json.RawMessage) error {
	var payload dto.PasswordResetMailPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid password reset mail payload: %w", err)
	}

	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nA password reset was requested for your account. Open the link below to choose a new password:\r\n\r\n%s/auth/reset?token=%s\r\n\r\nThe link expires in 1 hour. If you did not request this, ignore this mail.\r\n",
		payload.Name, s.baseURL, payload.Token,
	)

	err := s.mailer.Send(payload.Email, "Reset your password", body)
	if err != nil {
		metrics.IncrementMailSent("password_reset", "failed")
		return err
	}

	metrics.IncrementMailSent("password_reset", "success")
	s.logger.Info("Password reset mail sent", zap.String("email", payload.Email))
	return nil
}
