package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents a user's job function within a college.
// Keep string form for easy persistence and token claims.
// Valid values are defined as constants below; the set is closed.
type Role string

const (
	RoleStudent        Role = "student"
	RoleFaculty        Role = "faculty"
	RoleHOD            Role = "hod"
	RoleAdmin          Role = "admin"
	RoleDME            Role = "dme"
	RolePrincipal      Role = "principal"
	RoleSuperintendent Role = "superintendent"
)

// AllRoles lists every valid role in a fixed order.
// Exhaustive switches elsewhere are checked against this set in tests.
func AllRoles() []Role {
	return []Role{
		RoleStudent,
		RoleFaculty,
		RoleHOD,
		RoleAdmin,
		RoleDME,
		RolePrincipal,
		RoleSuperintendent,
	}
}

// ParseRole normalizes a role string and reports whether it is a known role.
// Unknown roles are rejected rather than defaulted; callers decide how to
// degrade (always toward less access, never more).
func ParseRole(value string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(value)))
	switch r {
	case RoleStudent, RoleFaculty, RoleHOD, RoleAdmin, RoleDME, RolePrincipal, RoleSuperintendent:
		return r, true
	default:
		return "", false
	}
}

// Valid reports whether the role is a member of the closed role set.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// IsFacultyLike reports whether the role is faculty or head of department.
// The two share the faculty navigation variant and logbook verification rights.
func (r Role) IsFacultyLike() bool {
	return r == RoleFaculty || r == RoleHOD
}

// IsGovernance reports whether the role belongs to the governance tier
// (directorate, principal, superintendent).
func (r Role) IsGovernance() bool {
	return r == RoleDME || r == RolePrincipal || r == RoleSuperintendent
}

// Identity represents the authenticated principal established by a provider
// (password check or campus SSO). Adapters map provider-specific claims into
// this shape.
type Identity struct {
	UserID    string
	FullName  string
	Email     string
	Role      Role
	CollegeID string
	ExpiresAt time.Time // absolute expiry of the authentication grant
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier; the tokens are the bearer credentials
// handed to the portal, kept here so a reload reconstructs the exact state
// present at the last successful login.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	CollegeID    string    `json:"college_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Authenticated reports whether the session represents a logged-in user.
// A zero session is not authenticated.
func (s Session) Authenticated() bool {
	return s.UserID != "" && time.Now().Before(s.ExpiresAt)
}
