package tokens

// Package tokens mints and verifies the signed bearer tokens handed to the
// portal. Access tokens are short-lived; refresh tokens carry a flag and a
// longer TTL and are only accepted by the refresh endpoint.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medconnect/medconnect-api/config"
	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/ports"
)

// ErrInvalidToken is returned for expired, malformed or tampered tokens.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	Role      string `json:"role"`
	CollegeID string `json:"college_id"`
	SessionID string `json:"sid"`
	Refresh   bool   `json:"refresh,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs tokens with an HMAC key from configuration.
type Issuer struct {
	key        []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewIssuer creates a token issuer from token configuration.
func NewIssuer(cfg config.TokenConfig) *Issuer {
	return &Issuer{
		key:        []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

// NewIssuerWithClock creates an issuer with a fixed clock (useful for tests).
func NewIssuerWithClock(cfg config.TokenConfig, now func() time.Time) *Issuer {
	iss := NewIssuer(cfg)
	iss.now = now
	return iss
}

// Issue mints an access/refresh token pair for the identity and session.
func (i *Issuer) Issue(identity domainauth.Identity, sessionID string) (string, string, error) {
	access, err := i.sign(identity, sessionID, i.accessTTL, false)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := i.sign(identity, sessionID, i.refreshTTL, true)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	return access, refresh, nil
}

func (i *Issuer) sign(identity domainauth.Identity, sessionID string, ttl time.Duration, refresh bool) (string, error) {
	now := i.now()
	c := claims{
		Role:      string(identity.Role),
		CollegeID: identity.CollegeID,
		SessionID: sessionID,
		Refresh:   refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.key)
}

// Verify parses and validates a token. The role claim must parse to a known
// role; anything else fails closed.
func (i *Issuer) Verify(token string) (ports.TokenClaims, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.key, nil
	}, jwt.WithIssuer(i.issuer), jwt.WithTimeFunc(i.now))
	if err != nil || !parsed.Valid {
		return ports.TokenClaims{}, ErrInvalidToken
	}

	role, ok := domainauth.ParseRole(c.Role)
	if !ok {
		return ports.TokenClaims{}, ErrInvalidToken
	}

	return ports.TokenClaims{
		UserID:    c.Subject,
		Role:      role,
		CollegeID: c.CollegeID,
		SessionID: c.SessionID,
		ExpiresAt: c.ExpiresAt.Time,
		Refresh:   c.Refresh,
	}, nil
}
