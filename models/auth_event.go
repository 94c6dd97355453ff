package models

// AuthEventKind names an identity transition published by the auth provider.
type AuthEventKind string

const (
	// AuthSignedIn is delivered after any successful session establishment:
	// anonymous sign-in, credential sign-in, or token refresh that changed
	// the principal.
	AuthSignedIn AuthEventKind = "SIGNED_IN"
	// AuthSignedOut is delivered after the session was terminated, locally
	// or by the provider.
	AuthSignedOut AuthEventKind = "SIGNED_OUT"
)

// AuthEvent is the payload delivered to auth event subscribers. Session is
// nil for AuthSignedOut.
type AuthEvent struct {
	Kind    AuthEventKind
	Session *Session
}
