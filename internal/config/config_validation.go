package config

// validate checks that the final merged [Config] satisfies all invariants
// the client relies on at startup.
//
// Returns nil if the configuration is valid, or one of the sentinel
// validation errors otherwise.
func (cfg *Config) validate() error {
	switch cfg.Storage.Driver {
	case "memory":
	case "bolt", "sqlite":
		if cfg.Storage.Path == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.Address == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.Debounce <= 0 || cfg.Sync.RetryInterval <= 0 || cfg.Sync.LockTTL <= 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Session.LookupTimeout <= 0 || cfg.Session.VerificationWindow <= 0 || cfg.Session.RecheckDelay <= 0 {
		return ErrInvalidSessionConfigs
	}

	if cfg.Netcheck.ProbeInterval <= 0 || cfg.Netcheck.ProbeTimeout <= 0 {
		return ErrInvalidNetcheckConfigs
	}

	return nil
}
