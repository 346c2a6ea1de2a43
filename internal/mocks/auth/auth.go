package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"

	domainauth "github.com/uniadmin/records-console/internal/domain/auth"
	"github.com/uniadmin/records-console/internal/domain/model"
	"github.com/uniadmin/records-console/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.Authenticator = (*StubAuthenticator)(nil)
	_ ports.SessionStore  = (*MemorySessionStore)(nil)
)

// StubAuthenticator simulates the records API auth endpoints with
// programmable responses.
type StubAuthenticator struct {
	LoginFunc      func(ctx context.Context, email, password string) (string, error)
	SearchUserFunc func(ctx context.Context, token, value string) (*model.SearchResult, error)

	// Token is returned by Login when LoginFunc is nil.
	Token string
	// Profile is returned by SearchUser when SearchUserFunc is nil.
	Profile *model.SearchResult

	// Call tracking for assertions.
	LoginCalls  int
	SearchCalls int
}

func (s *StubAuthenticator) Login(ctx context.Context, email, password string) (string, error) {
	s.LoginCalls++
	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, email, password)
	}
	if s.Token == "" {
		return "", errors.New("stub: no token configured")
	}
	return s.Token, nil
}

func (s *StubAuthenticator) SearchUser(ctx context.Context, token, value string) (*model.SearchResult, error) {
	s.SearchCalls++
	if s.SearchUserFunc != nil {
		return s.SearchUserFunc(ctx, token, value)
	}
	if s.Profile == nil {
		return nil, errors.New("stub: no profile configured")
	}
	out := *s.Profile
	return &out, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	// FailSave and FailDelete force the corresponding call to error.
	FailSave   error
	FailDelete error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.FailSave != nil {
		return m.FailSave
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if id == "" || !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if m.FailDelete != nil {
		return m.FailDelete
	}
	if id == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are stored.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
