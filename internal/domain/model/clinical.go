package model

import (
	"errors"
	"strings"
	"time"
)

// PostingStatus is the lifecycle of a clinical posting.
type PostingStatus string

const (
	PostingScheduled PostingStatus = "scheduled"
	PostingActive    PostingStatus = "active"
	PostingCompleted PostingStatus = "completed"
	PostingCancelled PostingStatus = "cancelled"
)

// Valid reports whether the posting status is supported.
func (s PostingStatus) Valid() bool {
	switch s {
	case PostingScheduled, PostingActive, PostingCompleted, PostingCancelled:
		return true
	default:
		return false
	}
}

// LogbookStatus is the review lifecycle of a logbook entry. The stored form
// after a student hands an entry in is always "submitted"; DisplayLabel maps
// it to the "pending" wording the portal shows while review is outstanding.
type LogbookStatus string

const (
	LogbookDraft     LogbookStatus = "draft"
	LogbookSubmitted LogbookStatus = "submitted"
	LogbookVerified  LogbookStatus = "verified"
	LogbookRejected  LogbookStatus = "rejected"
)

// Valid reports whether the logbook status is supported.
func (s LogbookStatus) Valid() bool {
	switch s {
	case LogbookDraft, LogbookSubmitted, LogbookVerified, LogbookRejected:
		return true
	default:
		return false
	}
}

// ParseLogbookStatus normalizes a logbook status string, folding the legacy
// "pending" spelling into the canonical "submitted".
func ParseLogbookStatus(value string) (LogbookStatus, bool) {
	s := LogbookStatus(strings.ToLower(strings.TrimSpace(value)))
	if s == "pending" {
		s = LogbookSubmitted
	}
	if s.Valid() {
		return s, true
	}
	return "", false
}

// DisplayLabel returns the wording shown in the portal for a status.
func (s LogbookStatus) DisplayLabel() string {
	if s == LogbookSubmitted {
		return "pending"
	}
	return string(s)
}

// Posting represents a student's rotation through a clinical department.
type Posting struct {
	ID         string        `json:"id"          db:"id"`
	UserID     string        `json:"user_id"     db:"user_id"`
	Department string        `json:"department"  db:"department"`
	Ward       string        `json:"ward"        db:"ward"`
	Supervisor string        `json:"supervisor"  db:"supervisor"`
	StartDate  time.Time     `json:"start_date"  db:"start_date"`
	EndDate    time.Time     `json:"end_date"    db:"end_date"`
	Status     PostingStatus `json:"status"      db:"status"`
	CreatedAt  time.Time     `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"  db:"updated_at"`
}

// LogbookEntry records one clinical activity performed during a posting.
type LogbookEntry struct {
	ID           string        `json:"id"            db:"id"`
	PostingID    string        `json:"posting_id"    db:"posting_id"`
	UserID       string        `json:"user_id"       db:"user_id"`
	ActivityDate time.Time     `json:"activity_date" db:"activity_date"`
	Procedure    string        `json:"procedure"     db:"procedure"`
	Notes        string        `json:"notes"         db:"notes"`
	Status       LogbookStatus `json:"status"        db:"status"`
	VerifiedBy   *string       `json:"verified_by,omitempty" db:"verified_by"`
	Remarks      *string       `json:"remarks,omitempty"     db:"remarks"`
	CreatedAt    time.Time     `json:"created_at"    db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"    db:"updated_at"`
}

// CreatePostingRequest represents parameters to schedule a clinical posting.
type CreatePostingRequest struct {
	UserID     string    `json:"user_id"`
	Department string    `json:"department"`
	Ward       string    `json:"ward"`
	Supervisor string    `json:"supervisor"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// Validate validates CreatePostingRequest.
func (r *CreatePostingRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user_id is required")
	}
	if strings.TrimSpace(r.Department) == "" {
		return errors.New("department is required")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return errors.New("start_date and end_date are required")
	}
	if !r.EndDate.After(r.StartDate) {
		return errors.New("end_date must be after start_date")
	}
	return nil
}

// CreateLogbookEntryRequest represents parameters to record a logbook entry.
// Entries start as drafts unless Submit is set.
type CreateLogbookEntryRequest struct {
	PostingID    string    `json:"posting_id"`
	ActivityDate time.Time `json:"activity_date"`
	Procedure    string    `json:"procedure"`
	Notes        string    `json:"notes"`
	Submit       bool      `json:"submit"`
}

// Validate validates CreateLogbookEntryRequest.
func (r *CreateLogbookEntryRequest) Validate() error {
	if strings.TrimSpace(r.PostingID) == "" {
		return errors.New("posting_id is required")
	}
	if r.ActivityDate.IsZero() {
		return errors.New("activity_date is required")
	}
	if strings.TrimSpace(r.Procedure) == "" {
		return errors.New("procedure is required and cannot be empty")
	}
	return nil
}

// ReviewLogbookEntryRequest represents a faculty verification decision.
type ReviewLogbookEntryRequest struct {
	Approve bool    `json:"approve"`
	Remarks *string `json:"remarks,omitempty"`
}

// Validate validates ReviewLogbookEntryRequest. A rejection must say why.
func (r *ReviewLogbookEntryRequest) Validate() error {
	if !r.Approve && (r.Remarks == nil || strings.TrimSpace(*r.Remarks) == "") {
		return errors.New("remarks are required when rejecting an entry")
	}
	return nil
}

// LogbookListOptions controls filtering when listing logbook entries.
type LogbookListOptions struct {
	UserID    *string
	PostingID *string
	Status    *LogbookStatus
	Limit     int
	Offset    int
}
