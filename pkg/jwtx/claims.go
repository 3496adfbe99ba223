// Package jwtx inspects bearer tokens issued by the EAGL API.
//
// The console never verifies signatures: the API is the only authority on
// whether a token is valid (GET /api/auth/me). Claims are read so operators
// can see when a session or support token will lapse.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNotJWT is returned for opaque tokens that are not JWTs.
	ErrNotJWT = errors.New("jwtx: token is not a jwt")
	// ErrExpired reports that exp is in the past.
	ErrExpired = errors.New("jwtx: token expired")
)

// Claims are the fields the API places in console tokens. Unknown claims are ignored.
type Claims struct {
	jwt.RegisteredClaims

	Role     string `json:"role,omitempty"`
	TenantID string `json:"tenantId,omitempty"`

	// Support tokens minted by tenant impersonation carry this flag.
	Support bool `json:"support,omitempty"`
}

// Inspect decodes the claims of raw without verifying its signature.
func Inspect(raw string) (Claims, error) {
	var c Claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &c); err != nil {
		return Claims{}, errors.Join(ErrNotJWT, err)
	}
	return c, nil
}

// ExpiresIn reports the time left until exp relative to now. ok is false when
// the token carries no exp claim.
func (c *Claims) ExpiresIn(now time.Time) (left time.Duration, ok bool) {
	if c.ExpiresAt == nil {
		return 0, false
	}
	return c.ExpiresAt.Sub(now), true
}

// ValidateExpiryWithLeeway adds a small grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	return nil
}
