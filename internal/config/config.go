package config

import (
	"time"
)

// Config is the top-level configuration container for the baseline client.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, an optional JSON file,
// and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Config struct {
	// Adapter holds network settings for the outbound sync transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds settings for the local durable store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds timing knobs for the reconciliation engine: write
	// debounce, retry cadence and the cross-process push lock lease.
	Sync Sync `envPrefix:"SYNC_"`

	// Session holds timing knobs for session resolution and the
	// account-verification grace period.
	Session Session `envPrefix:"SESSION_"`

	// Netcheck holds settings for the connectivity probe.
	Netcheck Netcheck `envPrefix:"NETCHECK_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged after environment
	// variables and flags, filling fields those sources left empty.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds network address and timeout settings for the HTTP transport
// used to talk to the sync backend.
type Adapter struct {
	// Address is the backend address in host:port form.
	Address string `env:"ADDRESS"`

	// APIKey is an optional static key attached to every outbound request.
	APIKey string `env:"API_KEY"`

	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage holds the configuration of the local durable store that keeps the
// application snapshot, the pending buffer and session artifacts.
type Storage struct {
	// Driver selects the store backend: "memory", "bolt" or "sqlite".
	Driver string `env:"DRIVER"`

	// Path is the on-disk location of the store file. Ignored by the
	// memory driver.
	Path string `env:"PATH"`
}

// Sync groups the timing parameters of the reconciliation engine.
type Sync struct {
	// Debounce is how long a local edit is held before it is pushed.
	// Later edits within the window restart it.
	Debounce time.Duration `env:"DEBOUNCE"`

	// RetryInterval is the cadence of the background retry job that
	// re-runs reconciliation after a failed or offline sync.
	RetryInterval time.Duration `env:"RETRY_INTERVAL"`

	// LockTTL is the lease duration of the cross-process push lock.
	// A crashed holder frees the lock after at most this long.
	LockTTL time.Duration `env:"LOCK_TTL"`
}

// Session groups the timing parameters of session resolution.
type Session struct {
	// LookupTimeout caps how long a fresh session lookup may take before
	// the resolver falls back to locally cached session artifacts.
	LookupTimeout time.Duration `env:"LOOKUP_TIMEOUT"`

	// VerificationWindow is the grace period after a sign-up during which
	// a missing backend session is treated as "verification pending"
	// rather than a broken account.
	VerificationWindow time.Duration `env:"VERIFICATION_WINDOW"`

	// RecheckDelay is the pause before the one retry the resolver makes
	// when a sign-in races the initial lookup.
	RecheckDelay time.Duration `env:"RECHECK_DELAY"`
}

// Netcheck groups the settings of the connectivity probe.
type Netcheck struct {
	// ProbeURL is the endpoint polled to decide whether the backend is
	// reachable. When empty, the client derives it from Adapter.Address.
	ProbeURL string `env:"PROBE_URL"`

	// ProbeInterval is how often the probe runs.
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// ProbeTimeout is the per-probe request timeout.
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`
}

// GetConfig builds the client configuration by merging environment
// variables, command-line flags, an optional JSON file and built-in
// defaults, then validates the result.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
