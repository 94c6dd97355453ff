package adapter

import (
	"fmt"

	"github.com/kevindrums92/baselineapp/internal/config"
	"github.com/kevindrums92/baselineapp/internal/logger"
)

// Adapters bundles the backend facets behind one handle. Auth owns the
// bearer token; the other facets read it through [TokenSource].
type Adapters struct {
	Auth         AuthProvider
	State        StateAuthority
	Subscription SubscriptionService
	Push         PushGateway
}

// NewHTTPAdapters builds the full HTTP adapter set against cfg.Address.
func NewHTTPAdapters(cfg config.Adapter, log *logger.Logger) (*Adapters, error) {
	auth, err := NewHTTPAuthProvider(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("auth provider: %w", err)
	}
	state, err := NewHTTPStateAuthority(cfg, auth, log)
	if err != nil {
		return nil, fmt.Errorf("state authority: %w", err)
	}
	subscription, err := NewHTTPSubscriptionService(cfg, auth, log)
	if err != nil {
		return nil, fmt.Errorf("subscription service: %w", err)
	}
	push, err := NewHTTPPushGateway(cfg, auth, log)
	if err != nil {
		return nil, fmt.Errorf("push gateway: %w", err)
	}

	return &Adapters{
		Auth:         auth,
		State:        state,
		Subscription: subscription,
		Push:         push,
	}, nil
}
