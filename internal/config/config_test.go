package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("PORT", "9876")
	t.Setenv("ENV", "DEV")
	t.Setenv("SESSION_KEY", "c2VjcmV0LXNlc3Npb24ta2V5")
	t.Setenv("CANDIDATES_URL", "http://feed.local/candidatos")
	t.Setenv("LOG_ENDPOINT_URL", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("SITE_NAME", "")
	t.Setenv("FETCH_TIMEOUT", "")
	t.Setenv("CACHE_TTL", "")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9876", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, []byte("secret-session-key"), cfg.SessionKey)
	assert.Equal(t, "http://feed.local/candidatos", cfg.CandidatesURL)
	assert.Equal(t, "Portal de Candidatos", cfg.SiteName)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.LogEndpointURL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("LOG_ENDPOINT_URL", "http://logs.local")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, "http://logs.local", cfg.LogEndpointURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", ""},
		{"ENV", ""},
		{"SESSION_KEY", ""},
		{"SESSION_KEY", "%%%not-base64"},
		{"CANDIDATES_URL", ""},
		{"FETCH_TIMEOUT", "soon"},
		{"CACHE_TTL", "-1m"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
