package models

import "time"

// SubscriptionState is the entitlement snapshot fetched from the billing
// collaborator after a successful cloud pull. It is informational state for
// the UI; the engine never gates sync on it.
type SubscriptionState struct {
	Active    bool       `json:"active"`
	Plan      string     `json:"plan,omitempty"`
	RenewsAt  *time.Time `json:"renews_at,omitempty"`
	CheckedAt time.Time  `json:"checked_at"`
}
