package utils

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kevindrums92/baselineapp/models"
)

// ParseSessionClaims decodes the claims of a stored access token without
// verifying its signature.
//
// The client never holds the backend's signing key: the token was verified
// by the backend when it was issued, and locally its claims are only used to
// rebuild a degraded identity while the backend is unreachable. Expiry is
// still enforced by the caller via the exp claim.
//
// Parameters:
//
//	tokenString - the raw signed JWT string to decode
//
// Returns:
//
//	*models.SessionClaims - the decoded claims (sub, email, is_anonymous, exp)
//	error                 - non-nil if the token cannot be decoded or has no subject
func ParseSessionClaims(tokenString string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, fmt.Errorf("error parsing session token: %w", err)
	}

	if claims.Subject == "" {
		return nil, errors.New("empty subject error")
	}

	return claims, nil
}
