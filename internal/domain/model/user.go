package model

import (
	"errors"
	"strings"
	"time"

	"github.com/medconnect/medconnect-api/internal/domain/auth"
)

// User represents a portal account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"            db:"id"`
	FullName     string    `json:"full_name"     db:"full_name"`
	Email        string    `json:"email"         db:"email"`
	Role         auth.Role `json:"role"          db:"role"`
	CollegeID    string    `json:"college_id"    db:"college_id"`
	Department   *string   `json:"department,omitempty" db:"department"`
	PasswordHash string    `json:"-"             db:"password_hash"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"    db:"updated_at"`
}

// CreateUserRequest represents parameters to register a User.
// Password arrives in the clear and is hashed before storage.
type CreateUserRequest struct {
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	Role       auth.Role `json:"role"`
	CollegeID  string    `json:"college_id"`
	Department *string   `json:"department,omitempty"`
}

// UpdateUserRequest represents a partial profile update. Nil fields are left
// untouched; an all-nil request is a no-op.
type UpdateUserRequest struct {
	FullName   *string `json:"full_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Department *string `json:"department,omitempty"`
}

// Validate validates CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return errors.New("full_name is required and cannot be empty")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(email, "@") {
		return errors.New("email is not a valid address")
	}
	if len(r.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if !r.Role.Valid() {
		return errors.New("role is not a recognized role")
	}
	if strings.TrimSpace(r.CollegeID) == "" {
		return errors.New("college_id is required")
	}
	return nil
}

// Validate validates UpdateUserRequest.
func (r *UpdateUserRequest) Validate() error {
	if r.FullName != nil && strings.TrimSpace(*r.FullName) == "" {
		return errors.New("full_name cannot be empty")
	}
	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		if email == "" || !strings.Contains(email, "@") {
			return errors.New("email is not a valid address")
		}
	}
	return nil
}

// Empty reports whether the update carries no changes.
func (r *UpdateUserRequest) Empty() bool {
	return r.FullName == nil && r.Email == nil && r.Department == nil
}

// UsersListOptions controls paging and filtering for listing users.
// Q matches full name or email via ILIKE substring.
type UsersListOptions struct {
	Limit     int
	Offset    int
	Q         *string
	Role      *auth.Role
	CollegeID *string
}
