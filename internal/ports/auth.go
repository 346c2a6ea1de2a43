package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/apiclient and internal/adapters;
// orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/uniadmin/records-console/internal/domain/auth"
	"github.com/uniadmin/records-console/internal/domain/model"
)

// ErrSessionNotFound is returned by SessionStore.Get when no record exists
// for the given id. Every implementation returns this exact sentinel.
var ErrSessionNotFound = errors.New("session not found")

// Authenticator exchanges credentials for a bearer token and resolves
// profiles against the records API.
type Authenticator interface {
	// Login posts credentials to the records API and returns the issued
	// bearer token. Any non-2xx answer is an invalid-credentials error.
	Login(ctx context.Context, email, password string) (string, error)

	// SearchUser looks up the superset profile record for an email, member
	// code, or document number, authenticated with the given token.
	SearchUser(ctx context.Context, token, value string) (*model.SearchResult, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
