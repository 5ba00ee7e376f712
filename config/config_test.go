package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_URL", "http://localhost:8080")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("X_CLIENT_ID", "client-id")
	t.Setenv("X_CLIENT_SECRET", "client-secret")
	t.Setenv("X_OAUTH_CALLBACK_URL", "http://localhost:8080/api/auth/x/callback")
}

func loadConfig(t *testing.T) AppConfig {
	t.Helper()
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()
	return cfg
}

func TestAppConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)
	cfg := loadConfig(t)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "https://twitter.com/i/oauth2/authorize", cfg.X.AuthorizeURL)
	assert.Equal(t, "https://api.x.com/2/oauth2/token", cfg.X.TokenURL)
	assert.Equal(t, "https://api.x.com/2", cfg.X.APIBaseURL)
	assert.Equal(t, 50, cfg.X.PostsMaxResults)
	assert.Equal(t, time.Duration(0), cfg.X.HTTPTimeout)
	assert.Contains(t, cfg.X.Scope, "offline.access")
	assert.False(t, cfg.IsDev)
}

func TestAppConfig_MissingRequired(t *testing.T) {
	t.Setenv("APP_URL", "http://localhost:8080")
	t.Setenv("SESSION_SECRET", "test-secret")
	// X_CLIENT_ID and friends deliberately unset.

	var cfg AppConfig
	err := env.Parse(&cfg)
	require.Error(t, err)
}

func TestAppConfig_CallbackMustBeUnderBaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("X_OAUTH_CALLBACK_URL", "https://evil.example.com/callback")

	cfg := loadConfig(t)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be under APP_URL")
}

func TestAppConfig_InvalidBaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_URL", "not a url")

	cfg := loadConfig(t)
	require.Error(t, cfg.Validate())
}

func TestAppConfig_TrailingSlashTrimmed(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_URL", "http://localhost:8080/")

	cfg := loadConfig(t)
	assert.Equal(t, "http://localhost:8080", cfg.HTTP.BaseURL)
	require.NoError(t, cfg.Validate())
}

func TestAppConfig_NonPositiveMaxResults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("X_POSTS_MAX_RESULTS", "0")

	cfg := loadConfig(t)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "X_POSTS_MAX_RESULTS")
}

func TestAppConfig_DevModeFromNodeEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NODE_ENV", "development")

	cfg := loadConfig(t)
	assert.True(t, cfg.IsDev)
}
