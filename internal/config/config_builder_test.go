package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func resetFlags(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	oldArgs := os.Args
	os.Args = []string{"cmd"}
	t.Cleanup(func() { os.Args = oldArgs })
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs fails
// validation: a zero-value Config has no storage driver.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
	assert.NotNil(t, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result, earlier configs winning on conflicts.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&Config{Adapter: Adapter{Address: "localhost:1111"}},
		&Config{Adapter: Adapter{Address: "localhost:2222", APIKey: "from-second"}},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	// First source wins, later sources only fill gaps.
	assert.Equal(t, "localhost:1111", cfg.Adapter.Address)
	assert.Equal(t, "from-second", cfg.Adapter.APIKey)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_OverridesDefaults verifies that environment variables take
// priority over built-in defaults.
func TestWithEnv_OverridesDefaults(t *testing.T) {
	setEnvVars(t, map[string]string{
		"SYNC_DEBOUNCE":  "2s",
		"STORAGE_DRIVER": "memory",
	})

	cfg, err := newConfigBuilder().withEnv().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Sync.Debounce)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	// Untouched fields come from defaults.
	assert.Equal(t, 30*time.Second, cfg.Sync.RetryInterval)
	assert.Equal(t, 5*time.Second, cfg.Sync.LockTTL)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_LoadsFileFromEnvPath verifies that a CONFIG env variable makes
// the builder read and merge the JSON file it points at.
func TestWithJSON_LoadsFileFromEnvPath(t *testing.T) {
	dir := t.TempDir()
	p := dir + "/config.json"
	body := `{"storage": {"driver": "sqlite", "path": "/tmp/base.db"}, "sync": {"lock_ttl": "9s"}}`
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	setEnvVars(t, map[string]string{"CONFIG": p})

	cfg, err := newConfigBuilder().withEnv().withJSON().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/base.db", cfg.Storage.Path)
	assert.Equal(t, 9*time.Second, cfg.Sync.LockTTL)
	// Fields absent from the file come from defaults.
	assert.Equal(t, 1200*time.Millisecond, cfg.Sync.Debounce)
}

// TestWithJSON_EnvWinsOverFile verifies that env values survive a JSON merge.
func TestWithJSON_EnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	p := dir + "/config.json"
	body := `{"sync": {"lock_ttl": "9s"}}`
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	setEnvVars(t, map[string]string{
		"CONFIG":        p,
		"SYNC_LOCK_TTL": "3s",
	})

	cfg, err := newConfigBuilder().withEnv().withJSON().withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Sync.LockTTL)
}

// TestWithJSON_MissingFile verifies that a dangling CONFIG path surfaces as a
// build error.
func TestWithJSON_MissingFile(t *testing.T) {
	setEnvVars(t, map[string]string{"CONFIG": "/definitely/not/there.json"})

	cfg, err := newConfigBuilder().withEnv().withJSON().withDefaults().build()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error building config")
}

// TestWithJSON_NoPathSpecified verifies that the JSON stage is skipped
// entirely when no source supplied a path.
func TestWithJSON_NoPathSpecified(t *testing.T) {
	clearEnvVars(t)

	cfg, err := newConfigBuilder().withEnv().withJSON().withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig().Sync, cfg.Sync)
}

// ── GetConfig ─────────────────────────────────────────────────────────────────

// TestGetConfig_DefaultsOnly verifies the full pipeline with no explicit
// sources: the result is the built-in default configuration.
func TestGetConfig_DefaultsOnly(t *testing.T) {
	clearEnvVars(t)
	resetFlags(t)

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Adapter.Address)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "bolt", cfg.Storage.Driver)
	assert.Equal(t, "baseline.db", cfg.Storage.Path)
	assert.Equal(t, 1200*time.Millisecond, cfg.Sync.Debounce)
	assert.Equal(t, 30*time.Second, cfg.Sync.RetryInterval)
	assert.Equal(t, 5*time.Second, cfg.Sync.LockTTL)
	assert.Equal(t, 5*time.Second, cfg.Session.LookupTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Session.VerificationWindow)
	assert.Equal(t, 500*time.Millisecond, cfg.Session.RecheckDelay)
	assert.Equal(t, 10*time.Second, cfg.Netcheck.ProbeInterval)
	assert.Equal(t, 3*time.Second, cfg.Netcheck.ProbeTimeout)
}

// TestGetConfig_InvalidDriver verifies that an unsupported storage driver is
// rejected by validation.
func TestGetConfig_InvalidDriver(t *testing.T) {
	setEnvVars(t, map[string]string{"STORAGE_DRIVER": "postgres"})
	resetFlags(t)

	cfg, err := GetConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
	assert.NotNil(t, cfg)
}
