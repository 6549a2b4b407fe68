package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/avdeevsm/go-vault-core/models"
)

const (
	createUser = `INSERT INTO users (login, auth_hash, name)
	VALUES ($1, $2, $3)
	RETURNING user_id, login, auth_hash, name, created_at;`

	findUserByLogin = `SELECT user_id, login, auth_hash, name, created_at
	FROM users
	WHERE login = $1;`

	findUserByID = `SELECT user_id, login, auth_hash, name, created_at
	FROM users
	WHERE user_id = $1;`

	getAllUserEntries = `SELECT id, user_id, category, ciphertext, iv, auth_tag, created_at, updated_at
	FROM vault_entries
	WHERE user_id = $1;`

	getEntryByID = `SELECT id, user_id, category, ciphertext, iv, auth_tag, created_at, updated_at
	FROM vault_entries
	WHERE user_id = $1 AND id = $2;`

	// One arbitrary entry is enough to verify a submitted key: all entries of
	// a vault are sealed under the same master key.
	getAnyUserEntry = `SELECT id, user_id, category, ciphertext, iv, auth_tag, created_at, updated_at
	FROM vault_entries
	WHERE user_id = $1
	LIMIT 1;`

	saveEntry = `INSERT INTO vault_entries (id, user_id, category, ciphertext, iv, auth_tag)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, user_id, category, ciphertext, iv, auth_tag, created_at, updated_at;`

	// Ciphertext, iv and auth_tag always travel together: an entry is never
	// partially updated.
	updateEntry = `UPDATE vault_entries
	SET category = $3, ciphertext = $4, iv = $5, auth_tag = $6, updated_at = NOW()
	WHERE user_id = $1 AND id = $2;`

	updateEntryCiphertext = `UPDATE vault_entries
	SET ciphertext = $3, iv = $4, auth_tag = $5, updated_at = NOW()
	WHERE user_id = $1 AND id = $2;`

	deleteEntry = `DELETE FROM vault_entries
	WHERE user_id = $1 AND id = $2;`

	deleteAllUserEntries = `DELETE FROM vault_entries
	WHERE user_id = $1;`

	createResetToken = `INSERT INTO reset_tokens (token, user_id, expires_at)
	VALUES ($1, $2, $3);`

	findResetToken = `SELECT token, user_id, expires_at, used_at, created_at
	FROM reset_tokens
	WHERE token = $1;`

	// The used_at IS NULL guard makes consumption atomic: of two concurrent
	// confirmations only one can affect a row.
	markResetTokenUsed = `UPDATE reset_tokens
	SET used_at = NOW()
	WHERE token = $1 AND used_at IS NULL;`

	hasActiveResetToken = `SELECT EXISTS (
		SELECT 1 FROM reset_tokens
		WHERE user_id = $1 AND used_at IS NULL AND expires_at > NOW()
	);`

	purgeExpiredResetTokens = `DELETE FROM reset_tokens
	WHERE expires_at <= NOW();`
)

// buildListEntriesQuery builds the owner-scoped entry listing, optionally
// narrowed to one category when category is non-empty.
func buildListEntriesQuery(userID int64, category models.Category) (string, []any, error) {
	builder := sq.
		Select("id", "user_id", "category", "ciphertext", "iv", "auth_tag", "created_at", "updated_at").
		From(models.VaultEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at").
		PlaceholderFormat(sq.Dollar)

	if category != "" {
		builder = builder.Where(sq.Eq{"category": category})
	}

	return builder.ToSql()
}
