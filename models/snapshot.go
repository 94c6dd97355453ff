package models

import "time"

// SchemaVersion is the only snapshot format this build reads and writes.
// Persisted records carrying any other value are treated as absent by the
// storage layer, never partially trusted.
const SchemaVersion = 1

// Snapshot is the full application state document exchanged between the
// in-memory store, the durable local store, and the remote authority.
//
// Optional fields are pointers: nil means "unset", which is distinct from a
// false/zero value. Defaults are applied only by the Value accessors, never
// at the storage layer, so an absent field round-trips as absent.
//
// Snapshots are immutable once produced; use [Snapshot.Clone] before handing
// one to another owner.
type Snapshot struct {
	// SchemaVersion identifies the document format. Always [SchemaVersion]
	// for snapshots produced by this build.
	SchemaVersion int `json:"schema_version"`

	// OnboardingSeen records whether the user has completed the first-run
	// onboarding flow. Nil when the user has never been asked.
	OnboardingSeen *bool `json:"onboarding_seen,omitempty"`

	// Security holds the user's security settings. Nil when untouched.
	Security *SecuritySettings `json:"security,omitempty"`

	// Entries is the user's persisted history. Purged on confirmed logout.
	Entries []HistoryEntry `json:"entries,omitempty"`

	// UpdatedAt is the wall-clock time of the mutation that produced this
	// snapshot. Informational; reconciliation is last-writer-wins at the
	// document level, decided by push/pull ordering rather than this stamp.
	UpdatedAt time.Time `json:"updated_at"`
}

// SecuritySettings groups the security-related user preferences observed by
// the sync trigger. All fields are optional at the storage layer.
type SecuritySettings struct {
	PasscodeEnabled   *bool `json:"passcode_enabled,omitempty"`
	BiometricsEnabled *bool `json:"biometrics_enabled,omitempty"`
	AutoLockMinutes   *int  `json:"auto_lock_minutes,omitempty"`
}

// HistoryEntry is a single persisted history record.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"`
	Score     int       `json:"score"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultSnapshot returns the empty schema-version-1 document used for fresh
// installs and for the post-logout reset.
func DefaultSnapshot() Snapshot {
	return Snapshot{SchemaVersion: SchemaVersion}
}

// Clone returns a deep copy of the snapshot. Stored snapshots must never
// share mutable state with the caller's copy.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.OnboardingSeen != nil {
		v := *s.OnboardingSeen
		out.OnboardingSeen = &v
	}
	if s.Security != nil {
		sec := s.Security.clone()
		out.Security = &sec
	}
	if s.Entries != nil {
		out.Entries = make([]HistoryEntry, len(s.Entries))
		copy(out.Entries, s.Entries)
	}
	return out
}

// OnboardingSeenValue applies the access-layer default: unset reads as false.
func (s Snapshot) OnboardingSeenValue() bool {
	return s.OnboardingSeen != nil && *s.OnboardingSeen
}

// SecurityValue applies the access-layer defaults for unset security fields.
func (s Snapshot) SecurityValue() SecuritySettings {
	if s.Security == nil {
		return SecuritySettings{}
	}
	return s.Security.clone()
}

func (ss SecuritySettings) clone() SecuritySettings {
	out := ss
	if ss.PasscodeEnabled != nil {
		v := *ss.PasscodeEnabled
		out.PasscodeEnabled = &v
	}
	if ss.BiometricsEnabled != nil {
		v := *ss.BiometricsEnabled
		out.BiometricsEnabled = &v
	}
	if ss.AutoLockMinutes != nil {
		v := *ss.AutoLockMinutes
		out.AutoLockMinutes = &v
	}
	return out
}

// PasscodeEnabledValue applies the access-layer default: unset reads as false.
func (ss SecuritySettings) PasscodeEnabledValue() bool {
	return ss.PasscodeEnabled != nil && *ss.PasscodeEnabled
}

// BiometricsEnabledValue applies the access-layer default: unset reads as false.
func (ss SecuritySettings) BiometricsEnabledValue() bool {
	return ss.BiometricsEnabled != nil && *ss.BiometricsEnabled
}

// Bool returns a pointer to b, for populating optional snapshot fields.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i, for populating optional snapshot fields.
func Int(i int) *int { return &i }
