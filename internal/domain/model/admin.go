package model

import (
	"errors"
	"strings"
	"time"
)

// CertificateStatus is the issuance lifecycle of a certificate request.
type CertificateStatus string

const (
	CertificateSubmitted CertificateStatus = "submitted"
	CertificateGenerated CertificateStatus = "generated"
	CertificateApproved  CertificateStatus = "approved"
	CertificateRejected  CertificateStatus = "rejected"
)

// Valid reports whether the certificate status is supported.
func (s CertificateStatus) Valid() bool {
	switch s {
	case CertificateSubmitted, CertificateGenerated, CertificateApproved, CertificateRejected:
		return true
	default:
		return false
	}
}

// ParseCertStatus normalizes a user-supplied certificate status. Older
// clients say "pending" for a request awaiting review; we store "submitted".
func ParseCertStatus(value string) (CertificateStatus, bool) {
	s := CertificateStatus(strings.ToLower(strings.TrimSpace(value)))
	if s == "pending" {
		s = CertificateSubmitted
	}
	if s.Valid() {
		return s, true
	}
	return "", false
}

// DisplayLabel renders the status the way the portal UI shows it.
func (s CertificateStatus) DisplayLabel() string {
	if s == CertificateSubmitted {
		return "pending"
	}
	return string(s)
}

// Certificate represents a student's request for an official document
// (bonafide, transcript, conduct certificate).
type Certificate struct {
	ID         string            `json:"id"          db:"id"`
	UserID     string            `json:"user_id"     db:"user_id"`
	Kind       string            `json:"kind"        db:"kind"`
	Purpose    string            `json:"purpose"     db:"purpose"`
	Status     CertificateStatus `json:"status"      db:"status"`
	FileURL    *string           `json:"file_url,omitempty"    db:"file_url"`
	ReviewedBy *string           `json:"reviewed_by,omitempty" db:"reviewed_by"`
	CreatedAt  time.Time         `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"  db:"updated_at"`
}

// Notice is an announcement published to a college.
type Notice struct {
	ID        string    `json:"id"         db:"id"`
	CollegeID string    `json:"college_id" db:"college_id"`
	Title     string    `json:"title"      db:"title"`
	Body      string    `json:"body"       db:"body"`
	Audience  string    `json:"audience"   db:"audience"`
	PostedBy  string    `json:"posted_by"  db:"posted_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Event is a scheduled campus event students can register for.
type Event struct {
	ID          string    `json:"id"          db:"id"`
	CollegeID   string    `json:"college_id"  db:"college_id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	Venue       string    `json:"venue"       db:"venue"`
	StartsAt    time.Time `json:"starts_at"   db:"starts_at"`
	EndsAt      time.Time `json:"ends_at"     db:"ends_at"`
	Capacity    int       `json:"capacity"    db:"capacity"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"  db:"updated_at"`
}

// EventRegistration records one user's registration for an event.
type EventRegistration struct {
	ID           string    `json:"id"            db:"id"`
	EventID      string    `json:"event_id"      db:"event_id"`
	UserID       string    `json:"user_id"       db:"user_id"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}

// RequestCertificateRequest represents a student's certificate request.
type RequestCertificateRequest struct {
	Kind    string `json:"kind"`
	Purpose string `json:"purpose"`
}

// Validate validates RequestCertificateRequest.
func (r *RequestCertificateRequest) Validate() error {
	if strings.TrimSpace(r.Kind) == "" {
		return errors.New("kind is required")
	}
	if strings.TrimSpace(r.Purpose) == "" {
		return errors.New("purpose is required and cannot be empty")
	}
	return nil
}

// ReviewCertificateRequest represents an admin decision on a certificate.
type ReviewCertificateRequest struct {
	Approve bool    `json:"approve"`
	FileURL *string `json:"file_url,omitempty"`
}

// Validate validates ReviewCertificateRequest. Approval must attach the
// generated document.
func (r *ReviewCertificateRequest) Validate() error {
	if r.Approve && (r.FileURL == nil || strings.TrimSpace(*r.FileURL) == "") {
		return errors.New("file_url is required when approving a certificate")
	}
	return nil
}

// CreateNoticeRequest represents parameters to publish a notice.
type CreateNoticeRequest struct {
	CollegeID string `json:"college_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Audience  string `json:"audience"`
}

// Validate validates CreateNoticeRequest.
func (r *CreateNoticeRequest) Validate() error {
	if strings.TrimSpace(r.CollegeID) == "" {
		return errors.New("college_id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required and cannot be empty")
	}
	if strings.TrimSpace(r.Body) == "" {
		return errors.New("body is required and cannot be empty")
	}
	return nil
}

// CreateEventRequest represents parameters to schedule an event.
type CreateEventRequest struct {
	CollegeID   string    `json:"college_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `json:"capacity"`
}

// Validate validates CreateEventRequest.
func (r *CreateEventRequest) Validate() error {
	if strings.TrimSpace(r.CollegeID) == "" {
		return errors.New("college_id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required and cannot be empty")
	}
	if r.StartsAt.IsZero() || r.EndsAt.IsZero() {
		return errors.New("starts_at and ends_at are required")
	}
	if !r.EndsAt.After(r.StartsAt) {
		return errors.New("ends_at must be after starts_at")
	}
	if r.Capacity < 0 {
		return errors.New("capacity cannot be negative")
	}
	return nil
}
