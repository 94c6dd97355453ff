package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/kevindrums92/baselineapp/internal/config"
	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/utils"
	"github.com/kevindrums92/baselineapp/models"
)

type httpStateAuthority struct {
	client *utils.HTTPClient
	tokens TokenSource
	logger *logger.Logger
}

// NewHTTPStateAuthority constructs the HTTP/REST implementation of
// [StateAuthority]. Authenticated requests carry the bearer token from
// tokens.
func NewHTTPStateAuthority(cfg config.Adapter, tokens TokenSource, log *logger.Logger) (StateAuthority, error) {
	client, err := newBaseClient(cfg)
	if err != nil {
		return nil, err
	}

	return &httpStateAuthority{client: client, tokens: tokens, logger: log}, nil
}

// FetchState implements [StateAuthority]. It GETs /api/state/{userID} and
// decodes the snapshot row. A 404 answer maps to [ErrStateNotFound].
func (h *httpStateAuthority) FetchState(ctx context.Context, userID string) (models.Snapshot, error) {
	var snapshot models.Snapshot

	resp, err := h.authedRequest(ctx).
		SetPathParam("userID", userID).
		SetResult(&snapshot).
		Get("/api/state/{userID}")
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("fetch state request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Snapshot{}, ErrStateNotFound
		}
		return models.Snapshot{}, err
	}

	return snapshot, nil
}

// UpsertState implements [StateAuthority]. It PUTs the full snapshot to
// /api/state/{userID}, replacing the identity's row wholesale.
func (h *httpStateAuthority) UpsertState(ctx context.Context, userID string, snapshot models.Snapshot) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("userID", userID).
		SetHeader("Content-Type", "application/json").
		SetBody(snapshot).
		Put("/api/state/{userID}")
	if err != nil {
		return fmt.Errorf("upsert state request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpStateAuthority) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.tokens.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
