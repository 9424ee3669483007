package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvConfigDefaults(t *testing.T) {
	require.NoError(t, LoadEnvConfig())

	assert.Equal(t, "8080", DefaultEnvConfig.APP_PORT)
	assert.Equal(t, "localhost", DefaultEnvConfig.DB_HOST)
	assert.Equal(t, 5432, DefaultEnvConfig.DB_PORT)
	assert.Equal(t, "procurement", DefaultEnvConfig.DB_NAME)
	assert.Equal(t, 10, DefaultEnvConfig.EXPORT_MAX_BATCH)
	assert.Equal(t, "ProcureHub Procurement", DefaultEnvConfig.ISSUER_NAME)
	assert.Equal(t, "1 Commerce Park, Springfield", DefaultEnvConfig.ISSUER_ADDRESS)
	assert.Equal(t, "", DefaultEnvConfig.GCP_PROJECT_ID)
	assert.Equal(t, "", DefaultEnvConfig.ELASTIC_URL)
}

func TestLoadEnvConfigOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("EXPORT_MAX_BATCH", "25")
	t.Setenv("DB_CONN_MAX_LIFETIME", "5m")
	t.Setenv("ISSUER_NAME", "Acme Buying Desk")

	require.NoError(t, LoadEnvConfig())

	assert.Equal(t, "9090", DefaultEnvConfig.APP_PORT)
	assert.Equal(t, 25, DefaultEnvConfig.EXPORT_MAX_BATCH)
	assert.Equal(t, 5*time.Minute, DefaultEnvConfig.DB_CONN_MAX_LIFETIME)
	assert.Equal(t, "Acme Buying Desk", DefaultEnvConfig.ISSUER_NAME)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "not a number")
	assert.Equal(t, 7, getEnvInt("TEST_INT", 7))

	t.Setenv("TEST_DURATION", "30")
	assert.Equal(t, 30*time.Second, getEnvDuration("TEST_DURATION", time.Minute))

	assert.Equal(t, "fallback", getEnvString("TEST_UNSET_KEY", "fallback"))
}
