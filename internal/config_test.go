package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/docuquest_test")
	t.Setenv("WEBHOOK_URL", "https://hooks.example.com/docuquest")
}

func TestNewConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://hooks.example.com/docuquest", cfg.WebhookURL)
	assert.NotZero(t, cfg.WebhookTimeout)
}

func TestNewConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("WEBHOOK_URL", "https://hooks.example.com/docuquest")

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewConfig_RequiresWebhookURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/docuquest_test")
	t.Setenv("WEBHOOK_URL", "")

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEBHOOK_URL")
}

func TestNewConfig_RejectsMalformedWebhookURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/docuquest_test")

	for _, bad := range []string{"not a url", "/relative/path", "ftp://hooks.example.com"} {
		t.Setenv("WEBHOOK_URL", bad)
		_, err := NewConfig()
		assert.Error(t, err, "webhook url %q should be rejected", bad)
	}
}
