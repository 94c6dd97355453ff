package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the resolved authenticated-or-anonymous principal. The zero
// value means "no session".
type Identity struct {
	// UserID is the remote authority's row key for this principal.
	UserID string `json:"user_id"`

	// Email is empty for anonymous sessions.
	Email string `json:"email,omitempty"`

	// Name is the display name, when the provider supplied one.
	Name string `json:"name,omitempty"`

	// AvatarURL points at the provider-hosted avatar, when present.
	AvatarURL string `json:"avatar_url,omitempty"`

	// Provider names the auth provider that issued the session
	// (e.g. "email", "google", "apple", "anonymous").
	Provider string `json:"provider,omitempty"`
}

// None reports whether no session backs this identity.
func (i Identity) None() bool { return i.UserID == "" }

// Anonymous reports whether the identity is a valid session without an email.
// Anonymous sessions select cloud mode but carry no effective identity for
// history-preservation decisions.
func (i Identity) Anonymous() bool { return i.UserID != "" && i.Email == "" }

// Session is the credential bundle issued by the authentication provider and
// cached locally (sealed) for degraded offline resolution.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         Identity  `json:"user"`
}

// Expired reports whether the access token's lifetime has elapsed at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SessionClaims is the claim set carried by provider-issued access tokens.
// The subject claim holds the user id; Email and IsAnonymous mirror the
// provider's custom claims. Cached tokens are inspected unverified — the
// device trusts its own cache, and the remote authority re-validates on
// every call.
type SessionClaims struct {
	jwt.RegisteredClaims

	Email       string `json:"email,omitempty"`
	IsAnonymous bool   `json:"is_anonymous,omitempty"`
}

// Identity converts the claim set to an [Identity]. Returns the zero
// identity if the subject claim is absent.
func (c SessionClaims) Identity() Identity {
	if c.Subject == "" {
		return Identity{}
	}
	id := Identity{UserID: c.Subject, Email: c.Email}
	if c.IsAnonymous || c.Email == "" {
		id.Provider = "anonymous"
	}
	return id
}
