package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
)

// Config carries SMTP transport settings and the address links are built
// against.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the envelope and header sender, e.g. "No Reply <no-reply@example.com>".
	From string
	// VerifyBaseURL is the public URL prefix verification links point at;
	// the confirmation token is appended as the last path segment.
	VerifyBaseURL string
}

// SMTPMailer sends account mail over authenticated SMTP.
type SMTPMailer struct {
	config Config
}

// NewSMTPMailer validates config and returns a mailer.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, errors.New("mail: host and port required")
	}
	if cfg.From == "" {
		return nil, errors.New("mail: from address required")
	}
	return &SMTPMailer{config: cfg}, nil
}

// SendVerification mails the email-confirmation link.
func (m *SMTPMailer) SendVerification(ctx context.Context, email, confirmationToken string) error {
	body, err := renderBody(bodyData{
		Title:       subjectVerification,
		Description: descriptionVerification,
		Link:        verifyLink(m.config.VerifyBaseURL, confirmationToken),
	})
	if err != nil {
		return err
	}
	return m.send(ctx, email, subjectVerification, body)
}

// SendPasswordRecovery mails the password-recovery link.
func (m *SMTPMailer) SendPasswordRecovery(ctx context.Context, email, link string) error {
	body, err := renderBody(bodyData{
		Title:       subjectPasswordRecovery,
		Description: descriptionPasswordRecovery,
		Link:        link,
	})
	if err != nil {
		return err
	}
	return m.send(ctx, email, subjectPasswordRecovery, body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	msg := buildMessage(m.config.From, to, subject, body)
	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, msg); err != nil {
		return fmt.Errorf("mail: send to %s: %w", to, err)
	}
	return nil
}
