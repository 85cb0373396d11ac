package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModePassword uses college-scoped email/password credentials.
	AuthModePassword AuthMode = "password"
	// AuthModeOIDC uses an external OIDC identity provider (campus SSO).
	AuthModeOIDC AuthMode = "oidc"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "password", "oidc":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: password, oidc)", v)
	}
}

// TokenConfig controls JWT access/refresh token issuance.
type TokenConfig struct {
	// SigningKey is the HMAC key used to sign tokens. Required outside dev.
	SigningKey string `env:"SIGNING_KEY" envDefault:"medconnect-dev-secret"`

	// Issuer is the "iss" claim stamped on every token.
	Issuer string `env:"ISSUER" envDefault:"medconnect"`

	// AccessTTL is the lifetime of access tokens.
	AccessTTL time.Duration `env:"ACCESS_TTL" envDefault:"30m"`

	// RefreshTTL is the lifetime of refresh tokens and therefore of the
	// server-side session record.
	RefreshTTL time.Duration `env:"REFRESH_TTL" envDefault:"168h"`
}

// OIDCConfig contains OIDC/SSO configuration (used when Mode=oidc).
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"medconnect"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email groups"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"password"`

	// Tokens configures JWT issuance.
	Tokens TokenConfig `envPrefix:"TOKEN_"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	// Keep token lifetimes sane: access tokens short, refresh tokens longer
	// than access tokens.
	if a.Tokens.AccessTTL <= 0 {
		a.Tokens.AccessTTL = 30 * time.Minute
	}
	if a.Tokens.RefreshTTL <= a.Tokens.AccessTTL {
		a.Tokens.RefreshTTL = 7 * 24 * time.Hour
	}
}
