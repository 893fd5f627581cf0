package config

import (
	"testing"

	"storefront-checkout/internal/common/enum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvFallsBackToDefaults(t *testing.T) {
	cfg, err := GetEnv()
	require.NoError(t, err)

	assert.Equal(t, enum.DEVELOPMENT, cfg.AppEnv)
	assert.Equal(t, 8080, cfg.AppPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "https://pay.example.test", cfg.GatewayBaseURL)
}

func TestGetEnvPrefersEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("PAYMENT_GATEWAY_SECRET", "s3cret")

	cfg, err := GetEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.AppPort)
	assert.Equal(t, "s3cret", cfg.GatewaySecret)
}

func TestGetEnvRejectsMalformedInt(t *testing.T) {
	t.Setenv("REDIS_PORT", "not-a-port")

	_, err := GetEnv()
	assert.Error(t, err)
}
