// Package mailer delivers vault-reset tokens to users out-of-band over SMTP.
// The server never returns a reset token in an API response; mail is the only
// channel a token travels through.
package mailer

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_mailer.go -package=mock

// Mailer sends transactional mail to vault owners.
type Mailer interface {
	// SendResetToken delivers a single-use vault reset token to the given
	// address together with its expiry time, formatted as RFC 3339 UTC.
	SendResetToken(ctx context.Context, recipient string, token string, expiresAt string) error
}
