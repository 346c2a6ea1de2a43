// Package token decodes the bearer tokens issued by the records API.
//
// The console never holds the backend's signing key, so payloads are parsed
// without signature verification and trusted only as a hint of who is logged
// in: every authenticated request is still authorized server-side by the
// records API. A malformed token is treated exactly like an expired one.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/uniadmin/records-console/internal/domain/auth"
)

// ErrExpired is returned when a token's expiry claim is in the past.
var ErrExpired = errors.New("token expired")

// ErrMalformed is returned when a token cannot be decoded at all.
var ErrMalformed = errors.New("malformed token")

// Claims are the decoded fields carried inside a records API bearer token.
type Claims struct {
	// Subject is the account email.
	Subject string
	// Role is the raw role claim, possibly "ROLE_"-prefixed.
	Role string
	// ID is the account id when the backend includes it; zero otherwise.
	ID        int64
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// wireClaims mirrors the backend's JWT payload:
// {sub: email, role: string, exp: seconds, iat: seconds, id?: number}.
type wireClaims struct {
	Role string `json:"role"`
	ID   int64  `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// Decode parses raw without verifying the signature and returns its claims.
// Expiry is NOT checked here; callers decide with Claims.Expired so that an
// expired-but-decodable token can still be distinguished from garbage.
func Decode(raw string) (Claims, error) {
	var wc wireClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &wc); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	c := Claims{
		Subject: wc.Subject,
		Role:    wc.Role,
		ID:      wc.ID,
	}
	if wc.ExpiresAt != nil {
		c.ExpiresAt = wc.ExpiresAt.Time
	}
	if wc.IssuedAt != nil {
		c.IssuedAt = wc.IssuedAt.Time
	}
	return c, nil
}

// Expired reports whether the token's expiry is at or before now.
// A token without an expiry claim is considered expired.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt.IsZero() || !c.ExpiresAt.After(now)
}

// Identity builds the claims-derived identity: role normalized, status
// assumed ACTIVE, id zero unless the token carried one. Enrichment may later
// replace the placeholder fields with authoritative values.
func (c Claims) Identity() (domainauth.Identity, error) {
	role, err := domainauth.ParseRole(c.Role)
	if err != nil {
		return domainauth.Identity{}, err
	}
	return domainauth.Identity{
		ID:     c.ID,
		Email:  c.Subject,
		Role:   role,
		Status: domainauth.StatusActive,
	}, nil
}
