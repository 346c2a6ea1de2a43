package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"fmt"
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Values mirror the records API wire format (uppercase tags).
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
)

// rolePrefix is the optional prefix the records API attaches to role claims.
// Role values arrive in two shapes ("ADMIN" and "ROLE_ADMIN") depending on
// the endpoint; normalization happens once, at Identity construction.
const rolePrefix = "ROLE_"

// NormalizeRole canonicalizes a raw role string by stripping a single
// leading "ROLE_" prefix. It is idempotent: normalizing an already
// normalized value returns it unchanged.
func NormalizeRole(raw string) Role {
	return Role(strings.TrimPrefix(raw, rolePrefix))
}

// ParseRole normalizes raw and validates membership in the canonical role set.
func ParseRole(raw string) (Role, error) {
	role := NormalizeRole(raw)
	switch role {
	case RoleAdmin, RoleStudent, RoleTeacher:
		return role, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Status represents an account's activation state.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Identity represents the authenticated principal derived from a bearer
// token and optionally upgraded by a profile lookup. ID stays zero until
// enrichment resolves the authoritative record.
type Identity struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Status Status `json:"status"`
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier; Token is the bearer credential the
// records API issued, attached to every authenticated call on the user's
// behalf. Invariant: a stored session always carries the identity decoded
// from a valid, non-expired Token.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Identity  Identity  `json:"identity"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HasRole reports whether the session's normalized role is a member of the
// allowed set. An empty set means any authenticated identity passes.
func (s Session) HasRole(allowed ...Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if s.Identity.Role == r {
			return true
		}
	}
	return false
}
