package service

import (
	"context"
	"fmt"
	"log/slog"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/ports"
)

// AdminServiceOptions groups dependencies for AdminService.
type AdminServiceOptions struct {
	Repo          ports.AdminRepository
	Notifications ports.NotificationRepository // Optional: decisions notify the requester
	Logger        *slog.Logger                 // Optional
}

// AdminService serves certificates, notices and events.
type AdminService struct {
	repo          ports.AdminRepository
	notifications ports.NotificationRepository
	logger        *slog.Logger
}

// NewAdminService constructs a new AdminService.
func NewAdminService(opts AdminServiceOptions) *AdminService {
	if opts.Repo == nil {
		panic("admin service requires a repository")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{
		repo:          opts.Repo,
		notifications: opts.Notifications,
		logger:        logger,
	}
}

// RequestCertificate files a certificate request for the caller.
func (s *AdminService) RequestCertificate(ctx context.Context, caller domainauth.Session, req *model.RequestCertificateRequest) (*model.Certificate, error) {
	if err := requireRole(caller, domainauth.RoleStudent); err != nil {
		return nil, err
	}
	cert, err := s.repo.RequestCertificate(ctx, caller.UserID, req)
	if err != nil {
		return nil, fmt.Errorf("request certificate: %w", err)
	}
	return cert, nil
}

// MyCertificates returns the caller's certificate requests, optionally
// narrowed to one status.
func (s *AdminService) MyCertificates(ctx context.Context, caller domainauth.Session, status *model.CertificateStatus) ([]*model.Certificate, error) {
	certs, err := s.repo.ListCertificates(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	if status == nil {
		return certs, nil
	}
	filtered := certs[:0]
	for _, c := range certs {
		if c.Status == *status {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// PendingCertificates returns the review queue, oldest first.
func (s *AdminService) PendingCertificates(ctx context.Context, caller domainauth.Session) ([]*model.Certificate, error) {
	if err := requireRole(caller, domainauth.RoleAdmin); err != nil {
		return nil, err
	}
	certs, err := s.repo.ListPendingCertificates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending certificates: %w", err)
	}
	return certs, nil
}

// ReviewCertificate applies an admin decision and notifies the requester.
func (s *AdminService) ReviewCertificate(ctx context.Context, caller domainauth.Session, id string, req *model.ReviewCertificateRequest) (*model.Certificate, error) {
	if err := requireRole(caller, domainauth.RoleAdmin); err != nil {
		return nil, err
	}

	cert, err := s.repo.ReviewCertificate(ctx, id, caller.UserID, req)
	if err != nil {
		return nil, fmt.Errorf("review certificate: %w", err)
	}

	s.notifyCertificate(ctx, cert)
	return cert, nil
}

func (s *AdminService) notifyCertificate(ctx context.Context, cert *model.Certificate) {
	if s.notifications == nil {
		return
	}

	title := "Certificate approved"
	if cert.Status == model.CertificateRejected {
		title = "Certificate request rejected"
	}
	link := "/admin"
	_, err := s.notifications.Create(ctx, &model.CreateNotificationRequest{
		UserID: cert.UserID,
		Kind:   model.NotificationInfo,
		Title:  title,
		Body:   fmt.Sprintf("Your %s certificate request has been reviewed.", cert.Kind),
		Link:   &link,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to notify student of certificate decision",
			slog.String("certificate_id", cert.ID),
			slog.String("error", err.Error()))
	}
}

// PublishNotice posts a notice to the caller's college.
func (s *AdminService) PublishNotice(ctx context.Context, caller domainauth.Session, req *model.CreateNoticeRequest) (*model.Notice, error) {
	if err := requireRole(caller, domainauth.RoleAdmin, domainauth.RolePrincipal, domainauth.RoleHOD); err != nil {
		return nil, err
	}
	if req != nil && req.CollegeID == "" {
		req.CollegeID = caller.CollegeID
	}
	notice, err := s.repo.CreateNotice(ctx, caller.UserID, req)
	if err != nil {
		return nil, fmt.Errorf("create notice: %w", err)
	}
	return notice, nil
}

// ListNotices returns the caller's college notice board.
func (s *AdminService) ListNotices(ctx context.Context, caller domainauth.Session) ([]*model.Notice, error) {
	notices, err := s.repo.ListNotices(ctx, caller.CollegeID)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return notices, nil
}

// CreateEvent schedules a campus event.
func (s *AdminService) CreateEvent(ctx context.Context, caller domainauth.Session, req *model.CreateEventRequest) (*model.Event, error) {
	if err := requireRole(caller, domainauth.RoleAdmin, domainauth.RolePrincipal, domainauth.RoleHOD, domainauth.RoleFaculty); err != nil {
		return nil, err
	}
	if req != nil && req.CollegeID == "" {
		req.CollegeID = caller.CollegeID
	}
	event, err := s.repo.CreateEvent(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// ListEvents returns the caller's college events.
func (s *AdminService) ListEvents(ctx context.Context, caller domainauth.Session) ([]*model.Event, error) {
	events, err := s.repo.ListEvents(ctx, caller.CollegeID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// RegisterForEvent registers the caller for an event.
func (s *AdminService) RegisterForEvent(ctx context.Context, caller domainauth.Session, eventID string) (*model.EventRegistration, error) {
	reg, err := s.repo.RegisterForEvent(ctx, eventID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("register for event: %w", err)
	}
	return reg, nil
}

// MyRegistrations returns the caller's event registrations.
func (s *AdminService) MyRegistrations(ctx context.Context, caller domainauth.Session) ([]*model.EventRegistration, error) {
	regs, err := s.repo.ListRegistrations(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}
