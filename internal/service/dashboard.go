package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/ports"
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Academic      ports.AcademicRepository
	Clinical      ports.ClinicalRepository
	Admin         ports.AdminRepository
	Notifications ports.NotificationRepository
}

// DashboardService aggregates the landing page in one round trip. The
// sections are independent, so they are fetched concurrently.
type DashboardService struct {
	academic      ports.AcademicRepository
	clinical      ports.ClinicalRepository
	admin         ports.AdminRepository
	notifications ports.NotificationRepository
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.Academic == nil || opts.Clinical == nil || opts.Admin == nil || opts.Notifications == nil {
		panic("dashboard service requires all repositories")
	}
	return &DashboardService{
		academic:      opts.Academic,
		clinical:      opts.Clinical,
		admin:         opts.Admin,
		notifications: opts.Notifications,
	}
}

// Dashboard is the landing page payload.
type Dashboard struct {
	Subjects      []*model.Subject        `json:"subjects"`
	Postings      []*model.Posting        `json:"postings"`
	Events        []*model.Event          `json:"events"`
	Notices       []*model.Notice         `json:"notices"`
	Notifications []*model.Notification   `json:"notifications"`
	Progress      []*model.ResourceProgress `json:"progress,omitempty"`
}

// Load assembles the dashboard for the caller. Any failing section fails the
// whole load: a partially wrong dashboard is worse than a retried one.
func (s *DashboardService) Load(ctx context.Context, caller domainauth.Session) (*Dashboard, error) {
	var dash Dashboard

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		subjects, err := s.academic.ListSubjects(gctx, caller.CollegeID)
		if err != nil {
			return fmt.Errorf("subjects: %w", err)
		}
		dash.Subjects = subjects
		return nil
	})

	g.Go(func() error {
		userID := caller.UserID
		if caller.Role != domainauth.RoleStudent {
			userID = ""
		}
		postings, err := s.clinical.ListPostings(gctx, userID)
		if err != nil {
			return fmt.Errorf("postings: %w", err)
		}
		dash.Postings = postings
		return nil
	})

	g.Go(func() error {
		events, err := s.admin.ListEvents(gctx, caller.CollegeID)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		dash.Events = events
		return nil
	})

	g.Go(func() error {
		notices, err := s.admin.ListNotices(gctx, caller.CollegeID)
		if err != nil {
			return fmt.Errorf("notices: %w", err)
		}
		dash.Notices = notices
		return nil
	})

	g.Go(func() error {
		notifications, err := s.notifications.ListForUser(gctx, caller.UserID, model.NotificationListOptions{
			UnreadOnly: true,
			Limit:      10,
		})
		if err != nil {
			return fmt.Errorf("notifications: %w", err)
		}
		dash.Notifications = notifications
		return nil
	})

	if caller.Role == domainauth.RoleStudent {
		g.Go(func() error {
			progress, err := s.academic.ListProgress(gctx, caller.UserID)
			if err != nil {
				return fmt.Errorf("progress: %w", err)
			}
			dash.Progress = progress
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	return &dash, nil
}
