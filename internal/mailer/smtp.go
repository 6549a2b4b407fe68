package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"github.com/avdeevsm/go-vault-core/internal/config"
	"github.com/avdeevsm/go-vault-core/internal/logger"
)

// SMTPMailer delivers reset tokens through a plain SMTP relay using net/smtp.
// PLAIN authentication is used when a username is configured; otherwise the
// relay is contacted unauthenticated (local relays, test inboxes).
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *logger.Logger
}

// NewSMTPMailer builds a mailer from the reset-delivery SMTP settings.
//
// If the relay host or sender address is missing the returned [Mailer] is a
// no-op that logs instead of sending: vault reset still works, but tokens are
// only visible in server logs. That mode is meant for local development.
func NewSMTPMailer(cfg config.SMTP, log *logger.Logger) Mailer {
	childLogger := log.GetChildLogger()

	if cfg.Host == "" || cfg.From == "" {
		childLogger.Warn().Msg("smtp relay not configured, reset tokens will only be logged")
		return &logMailer{logger: childLogger}
	}

	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		logger:   childLogger,
	}
}

// SendResetToken sends the token in a plain-text message. The message names
// the expiry so the recipient knows how long the token stays usable.
func (m *SMTPMailer) SendResetToken(ctx context.Context, recipient string, token string, expiresAt string) error {
	if recipient == "" {
		return fmt.Errorf("recipient address cannot be empty")
	}

	body := fmt.Sprintf(
		"A destructive vault reset was requested for your account.\r\n\r\n"+
			"Reset token: %s\r\n"+
			"Valid until: %s\r\n\r\n"+
			"Confirming this reset permanently deletes every entry in your vault.\r\n"+
			"If you did not request a reset, ignore this message.\r\n",
		token, expiresAt)

	message := []byte(fmt.Sprintf(
		"To: %s\r\nFrom: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		recipient, m.from, "Vault reset token", body))

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	if err := smtp.SendMail(addr, auth, m.from, []string{recipient}, message); err != nil {
		return fmt.Errorf("failed to send reset token mail: %w", err)
	}

	m.logger.Info().Str("recipient", recipient).Msg("reset token delivered")
	return nil
}

// logMailer stands in for a real relay when SMTP is not configured.
type logMailer struct {
	logger *logger.Logger
}

func (m *logMailer) SendResetToken(_ context.Context, recipient string, token string, expiresAt string) error {
	m.logger.Info().
		Str("recipient", recipient).
		Str("token", token).
		Str("expires_at", expiresAt).
		Msg("smtp relay disabled, reset token logged instead of sent")
	return nil
}
