// Package service orchestrates login, session resolution, and logout by
// coordinating the records API client and the session store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/uniadmin/records-console/internal/domain/auth"
	apperrors "github.com/uniadmin/records-console/internal/errors"
	"github.com/uniadmin/records-console/internal/ports"
	"github.com/uniadmin/records-console/internal/token"
)

// ErrLoggedOut is returned by Resolve when no live session exists for the
// given id: missing record, expired token, or anything in between. Callers
// treat all of these the same way, as an anonymous visitor.
var ErrLoggedOut = errors.New("not logged in")

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	API      ports.Authenticator
	Sessions ports.SessionStore
	Logger   *slog.Logger
}

// SessionService owns the session lifecycle. A session is created only from
// a token that decodes cleanly and has not expired; from then on the stored
// record is the single source of truth for who the browser is.
type SessionService struct {
	api      ports.Authenticator
	sessions ports.SessionStore
	logger   *slog.Logger
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		api:      opts.API,
		sessions: opts.Sessions,
		logger:   logger,
	}
}

// Login exchanges credentials for a bearer token, decodes it, and persists a
// new session. The token must decode and must not already be expired;
// otherwise no session is created. The identity starts from the token claims
// and is upgraded with the profile lookup when that succeeds, so callers see
// a fully settled session immediately.
func (s *SessionService) Login(ctx context.Context, email, password string) (domainauth.Session, error) {
	if email == "" || password == "" {
		return domainauth.Session{}, apperrors.Validation("email and password are required")
	}

	bearer, err := s.api.Login(ctx, email, password)
	if err != nil {
		return domainauth.Session{}, err
	}

	claims, err := token.Decode(bearer)
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "records API issued an undecodable token")
	}
	if claims.Expired(time.Now()) {
		return domainauth.Session{}, apperrors.Internal("records API issued an already expired token")
	}

	identity, err := claims.Identity()
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "records API issued a token with an unusable role")
	}

	identity = s.enrich(ctx, bearer, identity)

	sess := domainauth.Session{
		ID:        uuid.NewString(),
		Token:     bearer,
		Identity:  identity,
		ExpiresAt: claims.ExpiresAt,
	}
	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", saveErr)
	}

	return sess, nil
}

// enrich upgrades a claims-derived identity with the authoritative profile
// record. Lookup failures are logged and swallowed: a session built from
// claims alone is still valid. The result is trusted only when the returned
// email matches the token subject exactly.
func (s *SessionService) enrich(ctx context.Context, bearer string, identity domainauth.Identity) domainauth.Identity {
	res, err := s.api.SearchUser(ctx, bearer, identity.Email)
	if err != nil {
		s.logger.Warn("profile enrichment failed, keeping token identity",
			slog.String("email", identity.Email),
			slog.Any("error", err),
		)
		return identity
	}
	if res.Email != identity.Email {
		s.logger.Warn("profile enrichment returned a different account, discarding",
			slog.String("subject", identity.Email),
			slog.String("returned", res.Email),
		)
		return identity
	}

	identity.ID = res.ID
	if role, roleErr := domainauth.ParseRole(res.Role); roleErr == nil {
		identity.Role = role
	}
	if res.Status != "" {
		identity.Status = domainauth.Status(res.Status)
	}
	return identity
}

// Resolve loads the session for a request. Any way a live session can fail
// to exist (no record, expired token) comes back as ErrLoggedOut; expired
// records are deleted on the way out.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (domainauth.Session, error) {
	if sessionID == "" {
		return domainauth.Session{}, ErrLoggedOut
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return domainauth.Session{}, ErrLoggedOut
		}
		return domainauth.Session{}, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(sess.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			s.logger.Warn("failed to delete expired session",
				slog.String("session_id", sessionID),
				slog.Any("error", deleteErr),
			)
		}
		return domainauth.Session{}, ErrLoggedOut
	}

	return sess, nil
}

// Logout removes a session. Idempotent, and never fails the caller: a user
// walking away must always end up logged out, so store errors are only
// logged.
func (s *SessionService) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("failed to delete session on logout",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)
	}
}

// Invalidate is the forced logout used when the records API rejects the
// session's token mid-flight. Same semantics as Logout; the separate name
// keeps call sites honest about which path they are on.
func (s *SessionService) Invalidate(ctx context.Context, sessionID string) {
	s.Logout(ctx, sessionID)
}
