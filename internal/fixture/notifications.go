package fixture

import (
	"context"
	"sort"
	"strings"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
)

// NotificationRepo is the fixture-backed notification repository.
type NotificationRepo struct {
	s *state
}

// Create delivers a notification to a user.
func (r *NotificationRepo) Create(_ context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[req.UserID]; !ok {
		return nil, apperrors.NotFoundf("user %s not found", req.UserID)
	}

	n := &model.Notification{
		ID:        newID(),
		UserID:    req.UserID,
		Kind:      req.Kind,
		Title:     strings.TrimSpace(req.Title),
		Body:      req.Body,
		Link:      req.Link,
		CreatedAt: r.s.now(),
	}
	r.s.notifications[n.ID] = n
	nn := *n
	return &nn, nil
}

// ListForUser returns a user's notifications, newest first.
func (r *NotificationRepo) ListForUser(_ context.Context, userID string, opts model.NotificationListOptions) ([]*model.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Notification
	for _, n := range r.s.notifications {
		if n.UserID != userID {
			continue
		}
		if opts.UnreadOnly && n.Read() {
			continue
		}
		nn := *n
		out = append(out, &nn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, opts.Limit, opts.Offset), nil
}

// MarkRead marks one of the user's notifications as read. Marking a read
// notification again is a no-op.
func (r *NotificationRepo) MarkRead(_ context.Context, id, userID string) (*model.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok || n.UserID != userID {
		// A foreign notification is indistinguishable from a missing one.
		return nil, apperrors.NotFoundf("notification %s not found", id)
	}

	if n.ReadAt == nil {
		t := r.s.now()
		n.ReadAt = &t
	}
	nn := *n
	return &nn, nil
}

// MarkAllRead marks every unread notification of a user as read and reports
// how many changed.
func (r *NotificationRepo) MarkAllRead(_ context.Context, userID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var changed int
	now := r.s.now()
	for _, n := range r.s.notifications {
		if n.UserID != userID || n.ReadAt != nil {
			continue
		}
		t := now
		n.ReadAt = &t
		changed++
	}
	return changed, nil
}
