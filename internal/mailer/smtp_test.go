package mailer

import (
	"context"
	"testing"

	"github.com/avdeevsm/go-vault-core/internal/config"
	"github.com/avdeevsm/go-vault-core/internal/logger"
)

func TestNewSMTPMailer_FallsBackToLogMailerWithoutRelay(t *testing.T) {
	m := NewSMTPMailer(config.SMTP{}, logger.Nop())

	if _, ok := m.(*logMailer); !ok {
		t.Fatalf("expected *logMailer for empty relay config, got %T", m)
	}

	// the log fallback must never fail a reset request
	err := m.SendResetToken(context.Background(), "user@example.com", "token", "2026-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("expected no error from log mailer, got: %v", err)
	}
}

func TestNewSMTPMailer_UsesRelayWhenConfigured(t *testing.T) {
	cfg := config.SMTP{
		Host: "smtp.example.com",
		Port: 587,
		From: "vault@example.com",
	}

	m := NewSMTPMailer(cfg, logger.Nop())

	smtpMailer, ok := m.(*SMTPMailer)
	if !ok {
		t.Fatalf("expected *SMTPMailer, got %T", m)
	}
	if smtpMailer.host != cfg.Host || smtpMailer.port != cfg.Port || smtpMailer.from != cfg.From {
		t.Error("relay settings were not carried into the mailer")
	}
}

func TestSMTPMailer_SendResetToken_EmptyRecipient(t *testing.T) {
	m := &SMTPMailer{host: "smtp.example.com", port: 587, from: "vault@example.com", logger: logger.Nop()}

	err := m.SendResetToken(context.Background(), "", "token", "2026-01-01T00:00:00Z")
	if err == nil {
		t.Fatal("expected error for empty recipient, got nil")
	}
}
