package service

import (
	"context"
	"fmt"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/ports"
)

// NotificationServiceOptions groups dependencies for NotificationService.
type NotificationServiceOptions struct {
	Repo ports.NotificationRepository
}

// NotificationService serves the caller's notification feed. Everything is
// scoped to the caller; there is no way to read someone else's feed.
type NotificationService struct {
	repo ports.NotificationRepository
}

// NewNotificationService constructs a new NotificationService.
func NewNotificationService(opts NotificationServiceOptions) *NotificationService {
	if opts.Repo == nil {
		panic("notification service requires a repository")
	}
	return &NotificationService{repo: opts.Repo}
}

// List returns the caller's notifications.
func (s *NotificationService) List(ctx context.Context, caller domainauth.Session, opts model.NotificationListOptions) ([]*model.Notification, error) {
	notifications, err := s.repo.ListForUser(ctx, caller.UserID, opts)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead marks one of the caller's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, caller domainauth.Session, id string) (*model.Notification, error) {
	n, err := s.repo.MarkRead(ctx, id, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return n, nil
}

// MarkAllRead marks the caller's whole feed as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, caller domainauth.Session) (int, error) {
	changed, err := s.repo.MarkAllRead(ctx, caller.UserID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return changed, nil
}
