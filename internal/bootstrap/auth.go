package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/medconnect/medconnect-api/config"
	"github.com/medconnect/medconnect-api/internal/adapters/oidc"
	"github.com/medconnect/medconnect-api/internal/adapters/passwordauth"
	redisadapter "github.com/medconnect/medconnect-api/internal/adapters/redis"
	"github.com/medconnect/medconnect-api/internal/adapters/tokens"
	"github.com/medconnect/medconnect-api/internal/ports"
	"github.com/medconnect/medconnect-api/internal/service"
)

// AuthDeps groups dependencies for building the auth service.
type AuthDeps struct {
	Auth        config.AuthConfig
	Repos       RepositorySet
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService assembles the auth service for the configured mode.
// Password login is always available; AUTH_MODE=oidc additionally attaches
// the campus single sign-on provider.
func BuildAuthService(deps AuthDeps) (*service.AuthService, error) {
	if deps.RedisClient == nil {
		return nil, fmt.Errorf("auth service requires a redis client for durable sessions")
	}

	sessionStore := redisadapter.NewSessionStoreWithPrefix(deps.RedisClient, "session:")
	issuer := tokens.NewIssuer(deps.Auth.Tokens)
	provider := passwordauth.NewProvider(deps.Repos.Users, deps.Auth.Tokens.AccessTTL)

	var sso ports.RedirectAuthProvider
	if deps.Auth.Mode == config.AuthModeOIDC {
		built, err := buildSSOProvider(deps)
		if err != nil {
			return nil, err
		}
		sso = built
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		SSO:      sso,
		Sessions: sessionStore,
		Tokens:   issuer,
		Users:    deps.Repos.Users,
		Colleges: deps.Repos.Colleges,
		Hasher:   passwordauth.HashPassword,
	}), nil
}

func buildSSOProvider(deps AuthDeps) (*oidc.Provider, error) {
	cfg := deps.Auth.OIDC
	if cfg.DiscoveryURL == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("AUTH_MODE=oidc requires OIDC_DISCOVERY_URL, OIDC_CLIENT_ID and OIDC_CLIENT_SECRET")
	}

	provider, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scope:        cfg.Scope,
		DiscoveryURL: cfg.DiscoveryURL,
	}, deps.Repos.Users)
	if err != nil {
		return nil, fmt.Errorf("create sso provider: %w", err)
	}

	if deps.Logger != nil {
		deps.Logger.Info("campus sso enabled", "discovery_url", cfg.DiscoveryURL)
	}
	return provider, nil
}
