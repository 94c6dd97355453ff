// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for HTTP client initialization, JWT claim inspection,
// UUID generation, and other common operations.
package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance. Each call
// returns an independent client with its own configuration, connection
// pool, and state.
//
// Every backend collaborator speaks JSON, so the content type is fixed
// once here. Transport-level retries stay off: redelivery is owned by the
// sync scheduler, and a transparent transport retry could deliver the
// same push twice.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &HTTPClient{Client: client}
}
