package mailer

import (
	"fmt"

	"github.com/restaurantapp/backend/internal/config"
	"go.uber.org/zap"
	mail "gopkg.in/mail.v2"
)

// Mailer sends transactional email over SMTP
type Mailer struct {
	dialer *mail.Dialer
	from   string
	logger *zap.Logger
}

// NewMailer creates a mailer from SMTP configuration
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer: mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// Send delivers a single HTML email
func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	m.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// SendConfirmation sends the account confirmation email
func (m *Mailer) SendConfirmation(to, username, confirmURL string) error {
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Thanks for signing up. Please confirm your email address by clicking the link below:</p>
		<p><a href="%s">Confirm my email</a></p>
		<p>If you did not create an account, you can ignore this message.</p>
	`, username, confirmURL)

	return m.Send(to, "Confirm your email", body)
}

// SendPasswordReset sends the password reset email
func (m *Mailer) SendPasswordReset(to, resetURL string) error {
	body := fmt.Sprintf(`
		<h2>Password reset</h2>
		<p>We received a request to reset your password. Click the link below to choose a new one:</p>
		<p><a href="%s">Reset my password</a></p>
		<p>The link expires in one hour. If you did not request a reset, you can ignore this message.</p>
	`, resetURL)

	return m.Send(to, "Reset your password", body)
}
