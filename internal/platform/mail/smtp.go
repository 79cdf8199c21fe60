// Package mail delivers verification codes over SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"os"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// LoadConfig loads SMTP configuration from environment variables.
func LoadConfig() Config {
	return Config{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// Enabled reports whether enough configuration is present to send mail.
func (c Config) Enabled() bool {
	return c.Host != "" && c.Port != "" && c.From != ""
}

// SMTPSender sends verification codes through a plain SMTP relay.
type SMTPSender struct {
	cfg Config
}

// NewSMTPSender creates a new SMTPSender instance.
func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// SendVerificationCode mails the one-time code to the given address.
func (s *SMTPSender) SendVerificationCode(_ context.Context, email, code string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Your verification code\r\n\r\n"+
		"Your verification code is %s. It expires in 10 minutes.\r\n",
		s.cfg.From, email, code)

	addr := s.cfg.Host + ":" + s.cfg.Port
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
