package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes mail to a structured logger instead of sending it.
// Useful in development and tests: the confirmation token shows up in the
// log line and can be redeemed by hand.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer returns a mailer that logs through l.
func NewLogMailer(l *slog.Logger) *LogMailer {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &LogMailer{logger: l}
}

func (m *LogMailer) SendVerification(ctx context.Context, email, confirmationToken string) error {
	m.logger.InfoContext(ctx, "verification mail",
		slog.String("to", email),
		slog.String("token", confirmationToken),
	)
	return nil
}

func (m *LogMailer) SendPasswordRecovery(ctx context.Context, email, link string) error {
	m.logger.InfoContext(ctx, "password recovery mail",
		slog.String("to", email),
		slog.String("link", link),
	)
	return nil
}
