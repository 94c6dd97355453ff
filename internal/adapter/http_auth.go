package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/kevindrums92/baselineapp/internal/config"
	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/utils"
	"github.com/kevindrums92/baselineapp/models"
)

type httpAuthProvider struct {
	client *utils.HTTPClient
	logger *logger.Logger

	mu       sync.RWMutex
	token    string
	lastUser string

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(models.AuthEvent)
}

// NewHTTPAuthProvider constructs the HTTP/REST implementation of
// [AuthProvider]. It normalises and validates the base URL from cfg.Address
// and configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if cfg.Address is empty or cannot be parsed as a valid
// URL.
func NewHTTPAuthProvider(cfg config.Adapter, log *logger.Logger) (AuthProvider, error) {
	client, err := newBaseClient(cfg)
	if err != nil {
		return nil, err
	}

	return &httpAuthProvider{
		client: client,
		logger: log,
		subs:   make(map[int]func(models.AuthEvent)),
	}, nil
}

// SetToken implements [AuthProvider]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpAuthProvider) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [TokenSource]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpAuthProvider) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// GetSession implements [AuthProvider]. It GETs /api/auth/session with the
// current bearer token. A 401 or 404 answer means the provider holds no
// session and maps to [ErrNoSession]. On success the adapter adopts the
// returned session; a changed principal publishes a signed-in event.
func (h *httpAuthProvider) GetSession(ctx context.Context) (models.Session, error) {
	var session models.Session

	resp, err := h.authedRequest(ctx).
		SetResult(&session).
		Get("/api/auth/session")
	if err != nil {
		return models.Session{}, fmt.Errorf("get session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
			return models.Session{}, ErrNoSession
		}
		return models.Session{}, err
	}

	h.adopt(session)
	return session, nil
}

// SignInAnonymously implements [AuthProvider]. It POSTs to
// /api/auth/anonymous and adopts the fresh anonymous session, publishing a
// signed-in event.
func (h *httpAuthProvider) SignInAnonymously(ctx context.Context) (models.Session, error) {
	var session models.Session

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetResult(&session).
		Post("/api/auth/anonymous")
	if err != nil {
		return models.Session{}, fmt.Errorf("anonymous sign-in request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	h.adopt(session)
	return session, nil
}

// RefreshSession implements [AuthProvider]. It exchanges refreshToken at
// /api/auth/refresh for a fresh session and adopts it.
func (h *httpAuthProvider) RefreshSession(ctx context.Context, refreshToken string) (models.Session, error) {
	var session models.Session

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"refresh_token": refreshToken}).
		SetResult(&session).
		Post("/api/auth/refresh")
	if err != nil {
		return models.Session{}, fmt.Errorf("refresh session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	h.adopt(session)
	return session, nil
}

// SignOut implements [AuthProvider]. It POSTs to /api/auth/signout, drops
// the local token, and publishes a signed-out event. A 401 answer counts as
// success: the provider already considers the session dead. Only the call
// that actually drops a principal publishes, so a repeated sign-out stays
// silent.
func (h *httpAuthProvider) SignOut(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/auth/signout")
	if err != nil {
		return fmt.Errorf("sign out request: %w", err)
	}
	if mapErr := mapHTTPError(resp); mapErr != nil && !errors.Is(mapErr, ErrUnauthorized) {
		return mapErr
	}

	h.mu.Lock()
	hadPrincipal := h.token != "" || h.lastUser != ""
	h.token = ""
	h.lastUser = ""
	h.mu.Unlock()

	if hadPrincipal {
		h.publish(models.AuthEvent{Kind: models.AuthSignedOut})
	}
	return nil
}

// LinkAnonymous implements [AuthProvider]. It POSTs the target account id to
// /api/auth/link, attaching the current anonymous session to that account.
func (h *httpAuthProvider) LinkAnonymous(ctx context.Context, userID string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"user_id": userID}).
		Post("/api/auth/link")
	if err != nil {
		return fmt.Errorf("link anonymous request: %w", err)
	}

	return mapHTTPError(resp)
}

// RequestOrphanCleanup implements [AuthProvider]. It POSTs the abandoned
// anonymous account id to /api/auth/orphans. The deletion itself is
// asynchronous server-side.
func (h *httpAuthProvider) RequestOrphanCleanup(ctx context.Context, anonymousUserID string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"user_id": anonymousUserID}).
		Post("/api/auth/orphans")
	if err != nil {
		return fmt.Errorf("orphan cleanup request: %w", err)
	}

	return mapHTTPError(resp)
}

// Subscribe implements [AuthProvider].
func (h *httpAuthProvider) Subscribe(fn func(event models.AuthEvent)) func() {
	h.subMu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.subMu.Unlock()

	return func() {
		h.subMu.Lock()
		delete(h.subs, id)
		h.subMu.Unlock()
	}
}

// adopt installs the session's token and tracks the observed principal.
// A changed, non-empty principal publishes a signed-in event; repeated
// observations of the same user stay silent so pollers do not storm the
// lifecycle handler.
func (h *httpAuthProvider) adopt(session models.Session) {
	h.mu.Lock()
	h.token = strings.TrimSpace(session.AccessToken)
	changed := session.User.UserID != "" && session.User.UserID != h.lastUser
	h.lastUser = session.User.UserID
	h.mu.Unlock()

	if changed {
		h.publish(models.AuthEvent{Kind: models.AuthSignedIn, Session: &session})
	}
}

func (h *httpAuthProvider) publish(event models.AuthEvent) {
	h.subMu.Lock()
	callbacks := make([]func(models.AuthEvent), 0, len(h.subs))
	for _, fn := range h.subs {
		callbacks = append(callbacks, fn)
	}
	h.subMu.Unlock()

	h.logger.Info().
		Str("func", "httpAuthProvider.publish").
		Str("event", string(event.Kind)).
		Msg("auth event")

	for _, fn := range callbacks {
		fn(event)
	}
}

func (h *httpAuthProvider) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
