package adapter

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/kevindrums92/baselineapp/internal/config"
	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/utils"
	"github.com/kevindrums92/baselineapp/models"
)

type httpSubscriptionService struct {
	client *utils.HTTPClient
	tokens TokenSource
	logger *logger.Logger
}

// NewHTTPSubscriptionService constructs the HTTP/REST implementation of
// [SubscriptionService].
func NewHTTPSubscriptionService(cfg config.Adapter, tokens TokenSource, log *logger.Logger) (SubscriptionService, error) {
	client, err := newBaseClient(cfg)
	if err != nil {
		return nil, err
	}

	return &httpSubscriptionService{client: client, tokens: tokens, logger: log}, nil
}

// FetchEntitlement implements [SubscriptionService]. It GETs
// /api/subscription/{userID} and decodes the entitlement record.
func (h *httpSubscriptionService) FetchEntitlement(ctx context.Context, userID string) (models.SubscriptionState, error) {
	var state models.SubscriptionState

	resp, err := h.authedRequest(ctx).
		SetPathParam("userID", userID).
		SetResult(&state).
		Get("/api/subscription/{userID}")
	if err != nil {
		return models.SubscriptionState{}, fmt.Errorf("fetch entitlement request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SubscriptionState{}, err
	}

	return state, nil
}

func (h *httpSubscriptionService) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.tokens.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
