package passwordauth

// Package passwordauth authenticates users against bcrypt password hashes
// stored with their accounts. It is the default provider; campus SSO
// deployments swap in the oidc adapter instead.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
	"github.com/medconnect/medconnect-api/internal/ports"
)

// ErrInvalidCredentials is returned for a wrong email or password. The two
// cases are indistinguishable on purpose.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Provider checks credentials against the user repository.
type Provider struct {
	users ports.UserRepository
	ttl   time.Duration
}

// NewProvider creates a password auth provider. ttl bounds how long the
// resulting identity (and its session) stays valid.
func NewProvider(users ports.UserRepository, ttl time.Duration) *Provider {
	return &Provider{users: users, ttl: ttl}
}

// Authenticate verifies the credentials and returns the user's identity.
func (p *Provider) Authenticate(ctx context.Context, creds ports.Credentials) (domainauth.Identity, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return domainauth.Identity{}, ErrInvalidCredentials
	}

	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// Burn a hash comparison so a missing account costs the same
			// as a wrong password.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(creds.Password))
			return domainauth.Identity{}, ErrInvalidCredentials
		}
		return domainauth.Identity{}, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return domainauth.Identity{}, ErrInvalidCredentials
	}

	if !user.Role.Valid() {
		return domainauth.Identity{}, ErrInvalidCredentials
	}

	return domainauth.Identity{
		UserID:    user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		CollegeID: user.CollegeID,
		ExpiresAt: time.Now().Add(p.ttl),
	}, nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// dummyHash is a valid bcrypt hash of an unguessable value, used to equalize
// timing when the account does not exist.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("medconnect-timing-pad"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return h
}()
