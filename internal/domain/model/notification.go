package model

import (
	"errors"
	"strings"
	"time"
)

// NotificationKind classifies how a notification is rendered.
type NotificationKind string

const (
	NotificationInfo    NotificationKind = "info"
	NotificationWarning NotificationKind = "warning"
	NotificationAction  NotificationKind = "action"
)

// Valid reports whether the notification kind is supported.
func (k NotificationKind) Valid() bool {
	switch k {
	case NotificationInfo, NotificationWarning, NotificationAction:
		return true
	default:
		return false
	}
}

// Notification is a message delivered to one user. Link, when set, points
// at the portal page the notification is about.
type Notification struct {
	ID        string           `json:"id"         db:"id"`
	UserID    string           `json:"user_id"    db:"user_id"`
	Kind      NotificationKind `json:"kind"       db:"kind"`
	Title     string           `json:"title"      db:"title"`
	Body      string           `json:"body"       db:"body"`
	Link      *string          `json:"link,omitempty" db:"link"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// Read reports whether the notification has been read.
func (n Notification) Read() bool {
	return n.ReadAt != nil
}

// CreateNotificationRequest represents parameters to deliver a notification.
type CreateNotificationRequest struct {
	UserID string           `json:"user_id"`
	Kind   NotificationKind `json:"kind"`
	Title  string           `json:"title"`
	Body   string           `json:"body"`
	Link   *string          `json:"link,omitempty"`
}

// Validate validates CreateNotificationRequest.
func (r *CreateNotificationRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user_id is required")
	}
	if !r.Kind.Valid() {
		return errors.New("kind is not a recognized notification kind")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required and cannot be empty")
	}
	return nil
}

// NotificationListOptions controls filtering when listing notifications.
type NotificationListOptions struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}
