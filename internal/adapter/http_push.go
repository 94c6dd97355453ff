package adapter

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/kevindrums92/baselineapp/internal/config"
	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/utils"
)

type httpPushGateway struct {
	client *utils.HTTPClient
	tokens TokenSource
	logger *logger.Logger
}

// NewHTTPPushGateway constructs the HTTP/REST implementation of
// [PushGateway].
func NewHTTPPushGateway(cfg config.Adapter, tokens TokenSource, log *logger.Logger) (PushGateway, error) {
	client, err := newBaseClient(cfg)
	if err != nil {
		return nil, err
	}

	return &httpPushGateway{client: client, tokens: tokens, logger: log}, nil
}

// RegisterDevice implements [PushGateway]. It POSTs to /api/push/register
// under the current identity.
func (h *httpPushGateway) RegisterDevice(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/push/register")
	if err != nil {
		return fmt.Errorf("register device request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeregisterDevice implements [PushGateway]. It POSTs to
// /api/push/deregister, removing this device's registration.
func (h *httpPushGateway) DeregisterDevice(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/push/deregister")
	if err != nil {
		return fmt.Errorf("deregister device request: %w", err)
	}

	return mapHTTPError(resp)
}

// MigrateRegistration implements [PushGateway]. It POSTs the identity pair
// to /api/push/migrate, moving the device registration from fromUserID to
// toUserID.
func (h *httpPushGateway) MigrateRegistration(ctx context.Context, fromUserID, toUserID string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"from_user_id": fromUserID, "to_user_id": toUserID}).
		Post("/api/push/migrate")
	if err != nil {
		return fmt.Errorf("migrate registration request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpPushGateway) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.tokens.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
