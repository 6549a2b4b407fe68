package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{name: "string form", input: `"15m"`, want: 15 * time.Minute},
		{name: "numeric nanoseconds", input: `1000000000`, want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			require.NoError(t, d.UnmarshalJSON([]byte(tt.input)))
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_UnmarshalJSON_Invalid(t *testing.T) {
	var d Duration
	assert.Error(t, d.UnmarshalJSON([]byte(`"not-a-duration"`)))
}

func TestParseJSON_FullConfig(t *testing.T) {
	content := `{
		"app": {"token_sign_key": "sign", "password_hash_key": "hash", "token_duration": "1h", "cipher_suite": "chacha20-poly1305"},
		"storage": {"db": {"dsn": "postgres://localhost/vault"}},
		"server": {"http_address": "localhost:8080", "request_timeout": "30s"},
		"unlock": {"session_ttl": "15m", "max_attempts": 5, "attempt_window": "10m", "per_address": true},
		"reset": {"token_ttl": "1h", "smtp": {"host": "smtp.example.com", "port": 587, "from": "noreply@example.com"}},
		"workers": {"token_purge_interval": "1h"}
	}`

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "sign", cfg.App.TokenSignKey)
	assert.Equal(t, "chacha20-poly1305", cfg.App.CipherSuite)
	assert.Equal(t, "postgres://localhost/vault", cfg.Storage.DB.DSN)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 15*time.Minute, cfg.Unlock.SessionTTL)
	assert.Equal(t, 5, cfg.Unlock.MaxAttempts)
	assert.True(t, cfg.Unlock.PerAddress)
	assert.Equal(t, "smtp.example.com", cfg.Reset.SMTP.Host)
	assert.Equal(t, 587, cfg.Reset.SMTP.Port)
	assert.Equal(t, time.Hour, cfg.Workers.TokenPurgeInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	assert.Error(t, err)
}
