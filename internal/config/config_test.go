package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "LOG_LEVEL", "PUBLIC_BASE_URL",
		"STREAM_PAY_API_URL", "STREAM_PAY_API_KEY", "STREAM_PAY_SECRET_KEY",
		"STREAM_PAY_TIMEOUT", "STREAM_PAY_MOCK_DELAY",
		"SESSION_STORE", "SESSION_TTL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "https://stream-app-service.streampay.sa/api/v2", cfg.StreamPay.APIURL)
	assert.Equal(t, 30*time.Second, cfg.StreamPay.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.StreamPay.MockDelay)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.StreamPay.MockMode())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("STREAM_PAY_API_URL", "https://sandbox.example.com/api/v2/")
	t.Setenv("STREAM_PAY_API_KEY", "key")
	t.Setenv("STREAM_PAY_SECRET_KEY", "secret")
	t.Setenv("STREAM_PAY_TIMEOUT", "5s")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("PUBLIC_BASE_URL", "https://shop.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://sandbox.example.com/api/v2", cfg.StreamPay.APIURL)
	assert.Equal(t, 5*time.Second, cfg.StreamPay.Timeout)
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, 2, cfg.Session.RedisDB)
	assert.Equal(t, "https://shop.example.com", cfg.PublicBaseURL)
	assert.False(t, cfg.StreamPay.MockMode())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad timeout", "STREAM_PAY_TIMEOUT", "soon"},
		{"bad session store", "SESSION_STORE", "memcached"},
		{"bad redis db", "REDIS_DB", "two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestMockMode(t *testing.T) {
	tests := []struct {
		name   string
		cfg    StreamPayConfig
		expect bool
	}{
		{"no credentials", StreamPayConfig{}, true},
		{"key only", StreamPayConfig{APIKey: "k"}, true},
		{"secret only", StreamPayConfig{SecretKey: "s"}, true},
		{"placeholder key", StreamPayConfig{APIKey: PlaceholderAPIKey, SecretKey: "s"}, true},
		{"both set", StreamPayConfig{APIKey: "k", SecretKey: "s"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.cfg.MockMode())
		})
	}
}
