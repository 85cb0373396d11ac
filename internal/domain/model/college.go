package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxNameLen = 255

// College represents a medical college registered on the portal.
type College struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Code      string    `json:"code"       db:"code"`
	City      string    `json:"city"       db:"city"`
	State     string    `json:"state"      db:"state"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCollegeRequest represents parameters to register a College.
type CreateCollegeRequest struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	City  string `json:"city"`
	State string `json:"state"`
}

// Validate validates CreateCollegeRequest.
func (r *CreateCollegeRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Code) == "" {
		return errors.New("code is required")
	}
	return nil
}
