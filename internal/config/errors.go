package config

import "errors"

// Validation errors returned by [Config.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid transport settings
	// (for example, missing backend address or zero request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid local store settings
	// (for example, an unknown driver or a missing file path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSyncConfigs indicates invalid reconciliation timing
	// settings (for example, a zero debounce or lock lease).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidSessionConfigs indicates invalid session resolution
	// settings (for example, a zero lookup timeout).
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidNetcheckConfigs indicates invalid connectivity probe
	// settings (for example, a zero probe interval).
	ErrInvalidNetcheckConfigs = errors.New("invalid netcheck configuration")
)
