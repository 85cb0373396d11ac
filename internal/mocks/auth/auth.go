package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider         = (*MockAuthProvider)(nil)
	_ ports.RedirectAuthProvider = (*StubSSOProvider)(nil)
	_ ports.SessionStore         = (*MemorySessionStore)(nil)
	_ ports.TokenIssuer          = (*StubTokenIssuer)(nil)
)

// MockAuthProvider simulates a credential check for tests.
type MockAuthProvider struct {
	AuthenticateFunc func(ctx context.Context, creds ports.Credentials) (domainauth.Identity, error)

	// DefaultUser is returned when AuthenticateFunc is nil.
	DefaultUser domainauth.Identity
}

// NewMockAuthProvider creates a MockAuthProvider with a sensible default identity.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		DefaultUser: domainauth.Identity{
			UserID:    "mock-user-1",
			FullName:  "Mock User",
			Email:     "mock.user@gmc.edu",
			Role:      domainauth.RoleStudent,
			CollegeID: "college-1",
		},
	}
}

func (m *MockAuthProvider) Authenticate(ctx context.Context, creds ports.Credentials) (domainauth.Identity, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, creds)
	}
	user := m.DefaultUser
	user.ExpiresAt = time.Now().Add(time.Hour)
	return user, nil
}

// StubSSOProvider simulates a redirect-based sign-on flow for tests. Begin
// hands out fixed state and nonce; Exchange succeeds only when they come
// back unchanged.
type StubSSOProvider struct {
	Identity domainauth.Identity
	AuthURL  string
	State    string
	Nonce    string

	// ExchangeErr, when set, is returned from Exchange.
	ExchangeErr error
}

// NewStubSSOProvider creates a StubSSOProvider with fixed flow parameters.
func NewStubSSOProvider(identity domainauth.Identity) *StubSSOProvider {
	return &StubSSOProvider{
		Identity: identity,
		AuthURL:  "https://idp.example.edu/authorize?state=stub-state",
		State:    "stub-state",
		Nonce:    "stub-nonce",
	}
}

func (s *StubSSOProvider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	return s.AuthURL, s.State, s.Nonce, nil
}

func (s *StubSSOProvider) Exchange(_ context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if s.ExchangeErr != nil {
		return domainauth.Identity{}, s.ExchangeErr
	}
	if in.State != s.State || in.Nonce != s.Nonce {
		return domainauth.Identity{}, errors.New("state or nonce mismatch")
	}
	identity := s.Identity
	if identity.ExpiresAt.IsZero() {
		identity.ExpiresAt = time.Now().Add(time.Hour)
	}
	return identity, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session

	// SaveErr, when set, is returned from Save to simulate store failures.
	SaveErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, errors.New("session not found")
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are stored.
func (m *MemorySessionStore) Len() int {
	return len(m.sessions)
}

// StubTokenIssuer mints predictable tokens for tests.
type StubTokenIssuer struct {
	VerifyFunc func(token string) (ports.TokenClaims, error)

	issued int
}

func (s *StubTokenIssuer) Issue(identity domainauth.Identity, sessionID string) (string, string, error) {
	s.issued++
	access := fmt.Sprintf("access-%s-%d", sessionID, s.issued)
	refresh := fmt.Sprintf("refresh-%s-%d", sessionID, s.issued)
	return access, refresh, nil
}

func (s *StubTokenIssuer) Verify(token string) (ports.TokenClaims, error) {
	if s.VerifyFunc != nil {
		return s.VerifyFunc(token)
	}
	return ports.TokenClaims{}, errors.New("verify not configured")
}
