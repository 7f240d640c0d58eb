// Package mail provides email delivery over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"pinboard/config"
	"pinboard/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// smtpMailer implements service.Mailer using plain SMTP.
type smtpMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *slog.Logger
}

// SMTPMailerParams holds dependencies for smtpMailer, injected by Fx.
type SMTPMailerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewSMTPMailer creates the SMTP-backed mailer from configuration.
func NewSMTPMailer(params SMTPMailerParams) (service.Mailer, error) {
	cfg := params.Config.SMTP
	if cfg == nil {
		return nil, errors.New("smtp config is required")
	}
	if cfg.Host == "" || cfg.From == "" {
		return nil, errors.New("smtp host and from address are required")
	}

	return &smtpMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		logger:   params.Logger,
	}, nil
}

// SendPasswordReset delivers the reset link as a small HTML email.
func (m *smtpMailer) SendPasswordReset(_ context.Context, to string, link string) error {
	body := fmt.Sprintf(`<a href=%q>reset password</a>`, link)
	msg := []byte(fmt.Sprintf(
		"To: %s\r\nFrom: %s\r\nSubject: Change password\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		to, m.from, body,
	))

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return errors.Wrap(err, "failed to send password reset email")
	}

	m.logger.Debug("Password reset email delivered", slog.String("to", to))

	return nil
}
