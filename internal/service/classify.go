package service

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/kevindrums92/baselineapp/internal/adapter"
)

// transientPatterns matches error strings from transports that surface
// connectivity problems as plain text rather than typed errors.
var transientPatterns = []string{
	"failed to fetch",
	"network error",
	"load failed",
	"timeout",
	"timed out",
	"connection refused",
	"connection reset",
	"no such host",
	"network is unreachable",
	"broken pipe",
}

// isTransientFailure reports whether err looks like a connectivity or
// availability problem rather than a permanent rejection. Transient
// failures park the engine in the offline status with the change
// buffered; permanent ones surface as an error.
//
// Server-side 5xx responses count as transient: the request was valid,
// the backend was not ready for it. 4xx responses are permanent.
func isTransientFailure(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *adapter.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= 500 && statusErr.Code < 600
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
