package model

import (
	"errors"
	"strings"
	"time"
)

// ResourceKind classifies a learning resource.
type ResourceKind string

const (
	ResourceKindVideo    ResourceKind = "video"
	ResourceKindDocument ResourceKind = "document"
	ResourceKindQuiz     ResourceKind = "quiz"
)

// Valid reports whether the resource kind is supported.
func (k ResourceKind) Valid() bool {
	switch k {
	case ResourceKindVideo, ResourceKindDocument, ResourceKindQuiz:
		return true
	default:
		return false
	}
}

// Subject represents a course of study within a college's curriculum.
type Subject struct {
	ID        string    `json:"id"         db:"id"`
	CollegeID string    `json:"college_id" db:"college_id"`
	Name      string    `json:"name"       db:"name"`
	Code      string    `json:"code"       db:"code"`
	Year      int       `json:"year"       db:"year"`
	Semester  int       `json:"semester"   db:"semester"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CurriculumModule is one teaching unit within a subject.
type CurriculumModule struct {
	ID          string    `json:"id"          db:"id"`
	SubjectID   string    `json:"subject_id"  db:"subject_id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	OrderIndex  int       `json:"order_index" db:"order_index"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"  db:"updated_at"`
}

// LearningResource is a study material attached to a curriculum module.
type LearningResource struct {
	ID         string       `json:"id"          db:"id"`
	ModuleID   string       `json:"module_id"   db:"module_id"`
	Title      string       `json:"title"       db:"title"`
	Kind       ResourceKind `json:"kind"        db:"kind"`
	URL        string       `json:"url"         db:"url"`
	DurationMn int          `json:"duration_minutes" db:"duration_minutes"`
	CreatedAt  time.Time    `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"  db:"updated_at"`
}

// ResourceProgress records one student's progress through a resource.
// Percent is clamped to [0,100]; 100 marks completion. Bookmarked powers the
// portal's bookmark filter.
type ResourceProgress struct {
	ID          string     `json:"id"           db:"id"`
	UserID      string     `json:"user_id"      db:"user_id"`
	ResourceID  string     `json:"resource_id"  db:"resource_id"`
	Percent     int        `json:"percent"      db:"percent"`
	Bookmarked  bool       `json:"bookmarked"   db:"bookmarked"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	UpdatedAt   time.Time  `json:"updated_at"   db:"updated_at"`
}

// Completed reports whether the resource has been finished.
func (p ResourceProgress) Completed() bool {
	return p.Percent >= 100
}

// CreateSubjectRequest represents parameters to create a Subject.
type CreateSubjectRequest struct {
	CollegeID string `json:"college_id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Year      int    `json:"year"`
	Semester  int    `json:"semester"`
}

// Validate validates CreateSubjectRequest.
func (r *CreateSubjectRequest) Validate() error {
	if strings.TrimSpace(r.CollegeID) == "" {
		return errors.New("college_id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required and cannot be empty")
	}
	if strings.TrimSpace(r.Code) == "" {
		return errors.New("code is required")
	}
	if r.Year < 1 || r.Year > 5 {
		return errors.New("year must be between 1 and 5")
	}
	if r.Semester < 1 || r.Semester > 2 {
		return errors.New("semester must be 1 or 2")
	}
	return nil
}

// RecordProgressRequest represents a progress update for a learning resource.
type RecordProgressRequest struct {
	ResourceID string `json:"resource_id"`
	Percent    int    `json:"percent"`
	Bookmarked *bool  `json:"bookmarked,omitempty"`
}

// Validate validates RecordProgressRequest.
func (r *RecordProgressRequest) Validate() error {
	if strings.TrimSpace(r.ResourceID) == "" {
		return errors.New("resource_id is required")
	}
	if r.Percent < 0 || r.Percent > 100 {
		return errors.New("percent must be between 0 and 100")
	}
	return nil
}

// ResourceListOptions controls filtering when listing learning resources.
type ResourceListOptions struct {
	ModuleID       *string
	Q              *string
	BookmarkedOnly bool
	// ForUserID scopes progress-joined fields (bookmarks, completion).
	ForUserID string
}
