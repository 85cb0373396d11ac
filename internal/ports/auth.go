package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
)

// Credentials carries a password login attempt.
type Credentials struct {
	Email    string
	Password string
}

// AuthProvider verifies a login attempt and returns the authenticated identity.
// The password adapter checks credentials against stored hashes; the SSO
// adapter completes a code exchange with the campus identity provider.
type AuthProvider interface {
	Authenticate(ctx context.Context, creds Credentials) (domainauth.Identity, error)
}

// BeginInput carries inputs for initiating a redirect-based auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// RedirectAuthProvider initiates and completes a redirect-based flow against
// an identity provider. Only the SSO adapter implements it.
type RedirectAuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists and retrieves user sessions. Delete is idempotent:
// removing an absent session is not an error.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// TokenClaims is the verified content of an access or refresh token.
type TokenClaims struct {
	UserID    string
	Role      domainauth.Role
	CollegeID string
	SessionID string
	ExpiresAt time.Time
	Refresh   bool
}

// TokenIssuer mints and verifies the bearer tokens handed to the portal.
type TokenIssuer interface {
	// Issue mints an access/refresh token pair for a session.
	Issue(identity domainauth.Identity, sessionID string) (access, refresh string, err error)

	// Verify parses and validates a token, rejecting expired or tampered ones.
	Verify(token string) (TokenClaims, error)
}
