package config

import (
	"fmt"
	"strings"
)

// RepoBackend selects the repository implementation for domain resources.
type RepoBackend string

const (
	// RepoBackendFixture serves seeded in-memory data; no database required.
	RepoBackendFixture RepoBackend = "fixture"
	// RepoBackendPostgres serves data from PostgreSQL.
	RepoBackendPostgres RepoBackend = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for RepoBackend.
func (b *RepoBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "fixture", "postgres":
		*b = RepoBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid RepoBackend: %q (valid options: fixture, postgres)", v)
	}
}

// RepoConfig selects the backing store for domain repositories.
// The selection happens once at wiring time; call sites never branch on it.
type RepoConfig struct {
	Backend RepoBackend `env:"REPO_BACKEND" envDefault:"postgres"`
}

// Sanitize applies guardrails to repository configuration values.
func (r *RepoConfig) Sanitize() {
	if r.Backend == "" {
		r.Backend = RepoBackendPostgres
	}
}
