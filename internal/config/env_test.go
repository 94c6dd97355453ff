package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"ADAPTER_ADDRESS":              "localhost:9090",
		"ADAPTER_API_KEY":              "secret-key",
		"ADAPTER_REQUEST_TIMEOUT":      "15s",
		"STORAGE_DRIVER":               "sqlite",
		"STORAGE_PATH":                 "/var/lib/baseline/base.db",
		"SYNC_DEBOUNCE":                "800ms",
		"SYNC_RETRY_INTERVAL":          "45s",
		"SYNC_LOCK_TTL":                "7s",
		"SESSION_LOOKUP_TIMEOUT":       "4s",
		"SESSION_VERIFICATION_WINDOW":  "15m",
		"SESSION_RECHECK_DELAY":        "250ms",
		"NETCHECK_PROBE_URL":           "http://localhost:9090/ping",
		"NETCHECK_PROBE_INTERVAL":      "20s",
		"NETCHECK_PROBE_TIMEOUT":       "2s",
		"CONFIG":                       "/etc/baseline/config.json",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &Config{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "localhost:9090", cfg.Adapter.Address)
	assert.Equal(t, "secret-key", cfg.Adapter.APIKey)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/var/lib/baseline/base.db", cfg.Storage.Path)

	assert.Equal(t, 800*time.Millisecond, cfg.Sync.Debounce)
	assert.Equal(t, 45*time.Second, cfg.Sync.RetryInterval)
	assert.Equal(t, 7*time.Second, cfg.Sync.LockTTL)

	assert.Equal(t, 4*time.Second, cfg.Session.LookupTimeout)
	assert.Equal(t, 15*time.Minute, cfg.Session.VerificationWindow)
	assert.Equal(t, 250*time.Millisecond, cfg.Session.RecheckDelay)

	assert.Equal(t, "http://localhost:9090/ping", cfg.Netcheck.ProbeURL)
	assert.Equal(t, 20*time.Second, cfg.Netcheck.ProbeInterval)
	assert.Equal(t, 2*time.Second, cfg.Netcheck.ProbeTimeout)

	assert.Equal(t, "/etc/baseline/config.json", cfg.JSONFilePath)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"ADAPTER_ADDRESS": "localhost:8080",
		"SYNC_DEBOUNCE":   "2s",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &Config{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// Adapter partially filled
	assert.Equal(t, "localhost:8080", cfg.Adapter.Address)
	assert.Empty(t, cfg.Adapter.APIKey)
	assert.Zero(t, cfg.Adapter.RequestTimeout)

	// Sync partially filled
	assert.Equal(t, 2*time.Second, cfg.Sync.Debounce)
	assert.Zero(t, cfg.Sync.RetryInterval)
	assert.Zero(t, cfg.Sync.LockTTL)

	// Others untouched
	assert.Equal(t, Storage{}, cfg.Storage)
	assert.Equal(t, Session{}, cfg.Session)
	assert.Equal(t, Netcheck{}, cfg.Netcheck)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &Config{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// All nested fields are non-pointer values, so "empty" state is
	// represented by zero values.
	assert.Equal(t, "", cfg.JSONFilePath)

	assert.Equal(t, Adapter{}, cfg.Adapter)
	assert.Equal(t, Storage{}, cfg.Storage)
	assert.Equal(t, Sync{}, cfg.Sync)
	assert.Equal(t, Session{}, cfg.Session)
	assert.Equal(t, Netcheck{}, cfg.Netcheck)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"SYNC_DEBOUNCE": "not-a-duration",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &Config{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"ADAPTER_ADDRESS",
		"ADAPTER_API_KEY",
		"ADAPTER_REQUEST_TIMEOUT",

		"STORAGE_DRIVER",
		"STORAGE_PATH",

		"SYNC_DEBOUNCE",
		"SYNC_RETRY_INTERVAL",
		"SYNC_LOCK_TTL",

		"SESSION_LOOKUP_TIMEOUT",
		"SESSION_VERIFICATION_WINDOW",
		"SESSION_RECHECK_DELAY",

		"NETCHECK_PROBE_URL",
		"NETCHECK_PROBE_INTERVAL",
		"NETCHECK_PROBE_TIMEOUT",
	}
	for _, k := range keys {
		require.NoError(t, os.Unsetenv(k))
	}
}
