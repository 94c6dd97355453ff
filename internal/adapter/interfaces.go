// Package adapter provides transport-layer access to the four backend
// collaborators of the sync engine: the authentication provider, the remote
// state authority, the subscription service, and the push-notification
// gateway.
//
// Each collaborator is an interface backed by an HTTP/REST implementation
// built on resty. Error values defined in errors.go are mapped from HTTP
// status codes by mapHTTPError so that callers can use [errors.Is] for
// transport-agnostic error handling, while [StatusError] keeps the numeric
// code available for transient/permanent failure classification.
package adapter

import (
	"context"

	"github.com/kevindrums92/baselineapp/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// TokenSource supplies the bearer token attached to authenticated requests.
// The auth provider implements it; the other adapters consume it, so a
// token refresh propagates to every collaborator immediately.
type TokenSource interface {
	// Token returns the current bearer token, or an empty string when no
	// session is established.
	Token() string
}

// AuthProvider is the authentication collaborator. Besides request/response
// calls it owns the bearer token shared by the other adapters and publishes
// [models.AuthEvent] values on its own confirmed session transitions.
type AuthProvider interface {
	TokenSource

	// SetToken installs a bearer token directly, bypassing a provider
	// round-trip. Used at startup to adopt a locally cached session.
	SetToken(token string)

	// GetSession fetches the session currently held by the provider.
	// Returns ErrNoSession when the provider holds none.
	GetSession(ctx context.Context) (models.Session, error)

	// SignInAnonymously establishes a fresh anonymous session. On success
	// the adapter adopts the returned token and publishes a signed-in
	// event.
	SignInAnonymously(ctx context.Context) (models.Session, error)

	// RefreshSession exchanges refreshToken for a fresh session. On
	// success the adapter adopts the returned token.
	RefreshSession(ctx context.Context, refreshToken string) (models.Session, error)

	// SignOut terminates the current session and publishes a signed-out
	// event. A provider that already considers the session dead still
	// counts as success.
	SignOut(ctx context.Context) error

	// LinkAnonymous attaches the current anonymous session to the account
	// identified by userID.
	LinkAnonymous(ctx context.Context, userID string) error

	// RequestOrphanCleanup asks the provider to garbage-collect the
	// abandoned anonymous account identified by anonymousUserID.
	// Best-effort server-side; callers ignore failures.
	RequestOrphanCleanup(ctx context.Context, anonymousUserID string) error

	// Subscribe registers fn for auth events and returns its unsubscribe
	// function.
	Subscribe(fn func(event models.AuthEvent)) func()
}

// StateAuthority is the remote store holding one snapshot row per identity.
type StateAuthority interface {
	// FetchState returns the remote snapshot for userID. Returns
	// ErrStateNotFound when the identity has no row yet (first login).
	FetchState(ctx context.Context, userID string) (models.Snapshot, error)

	// UpsertState replaces the remote snapshot for userID wholesale.
	// Full-document replace, never a field patch.
	UpsertState(ctx context.Context, userID string, snapshot models.Snapshot) error
}

// SubscriptionService is the billing collaborator.
type SubscriptionService interface {
	// FetchEntitlement returns the subscription state for userID.
	FetchEntitlement(ctx context.Context, userID string) (models.SubscriptionState, error)
}

// PushGateway manages the device's push-notification registration.
type PushGateway interface {
	// RegisterDevice registers this device for push delivery under the
	// current identity.
	RegisterDevice(ctx context.Context) error

	// DeregisterDevice removes this device's push registration.
	DeregisterDevice(ctx context.Context) error

	// MigrateRegistration moves the push registration from one identity
	// to another, used when an anonymous account is promoted.
	MigrateRegistration(ctx context.Context, fromUserID, toUserID string) error
}
