package adapter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kevindrums92/baselineapp/internal/config"
	"github.com/kevindrums92/baselineapp/internal/utils"
)

// newBaseClient builds the resty client underlying one adapter: normalized
// base URL, request timeout, and the static API key header when configured.
func newBaseClient(cfg config.Adapter) (*utils.HTTPClient, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)
	if cfg.APIKey != "" {
		client.SetHeader("X-API-Key", cfg.APIKey)
	}

	return client, nil
}

// NewProbeClient builds the HTTP client and URL used by the connectivity
// probe. An empty netCfg.ProbeURL derives the backend ping endpoint from
// the adapter address; an absolute URL overrides it.
func NewProbeClient(adapterCfg config.Adapter, netCfg config.Netcheck) (*utils.HTTPClient, string, error) {
	client, err := newBaseClient(adapterCfg)
	if err != nil {
		return nil, "", err
	}
	client.SetTimeout(netCfg.ProbeTimeout)

	probeURL := netCfg.ProbeURL
	if probeURL == "" {
		probeURL = "/ping"
	}

	return client, probeURL, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
