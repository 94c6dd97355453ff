package config

import "time"

// defaultConfig returns the built-in defaults. They are merged last, so they
// only apply to fields no other source has set.
func defaultConfig() *Config {
	return &Config{
		Adapter: Adapter{
			Address:        "localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Storage: Storage{
			Driver: "bolt",
			Path:   "baseline.db",
		},
		Sync: Sync{
			Debounce:      1200 * time.Millisecond,
			RetryInterval: 30 * time.Second,
			LockTTL:       5 * time.Second,
		},
		Session: Session{
			LookupTimeout:      5 * time.Second,
			VerificationWindow: 10 * time.Minute,
			RecheckDelay:       500 * time.Millisecond,
		},
		Netcheck: Netcheck{
			ProbeInterval: 10 * time.Second,
			ProbeTimeout:  3 * time.Second,
		},
	}
}
