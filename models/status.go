package models

// SyncStatus is the externally observable outcome of the most recent
// reconciliation attempt. It is process-wide state mutated only by the sync
// engine and read by the UI and the retry job.
type SyncStatus string

const (
	// StatusIdle means no sync activity: guest mode, or not yet initialized.
	StatusIdle SyncStatus = "idle"
	// StatusSyncing means an attempt is in flight.
	StatusSyncing SyncStatus = "syncing"
	// StatusOK means the last attempt succeeded and nothing is pending.
	StatusOK SyncStatus = "ok"
	// StatusOffline means the last attempt was deferred for lack of
	// connectivity; the change is buffered.
	StatusOffline SyncStatus = "offline"
	// StatusError means the last attempt failed for a non-connectivity
	// reason; the change is buffered and the retry job will drain it.
	StatusError SyncStatus = "error"
)

// Valid reports whether s is one of the defined statuses.
func (s SyncStatus) Valid() bool {
	switch s {
	case StatusIdle, StatusSyncing, StatusOK, StatusOffline, StatusError:
		return true
	}
	return false
}

// CloudMode determines whether sync logic runs at all.
type CloudMode string

const (
	// ModeGuest means purely local persistence; no remote interaction.
	ModeGuest CloudMode = "guest"
	// ModeCloud means an identity is resolved and remote sync is attempted.
	ModeCloud CloudMode = "cloud"
)
