package service

import (
	"context"
	"fmt"
	"log/slog"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
	"github.com/medconnect/medconnect-api/internal/ports"
)

// ClinicalServiceOptions groups dependencies for ClinicalService.
type ClinicalServiceOptions struct {
	Repo          ports.ClinicalRepository
	Notifications ports.NotificationRepository // Optional: review decisions notify the student
	Logger        *slog.Logger                 // Optional
}

// ClinicalService serves postings and logbooks. Students manage their own
// entries; faculty and heads of department work the verification queue.
type ClinicalService struct {
	repo          ports.ClinicalRepository
	notifications ports.NotificationRepository
	logger        *slog.Logger
}

// NewClinicalService constructs a new ClinicalService.
func NewClinicalService(opts ClinicalServiceOptions) *ClinicalService {
	if opts.Repo == nil {
		panic("clinical service requires a repository")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ClinicalService{
		repo:          opts.Repo,
		notifications: opts.Notifications,
		logger:        logger,
	}
}

// ListPostings returns postings visible to the caller: students see their
// own, faculty-like and administrative roles see everyone's.
func (s *ClinicalService) ListPostings(ctx context.Context, caller domainauth.Session) ([]*model.Posting, error) {
	userID := caller.UserID
	if caller.Role != domainauth.RoleStudent {
		userID = ""
	}
	postings, err := s.repo.ListPostings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	return postings, nil
}

// CreatePosting schedules a posting. Rotations are planned by faculty-like
// and administrative roles.
func (s *ClinicalService) CreatePosting(ctx context.Context, caller domainauth.Session, req *model.CreatePostingRequest) (*model.Posting, error) {
	if err := requireRole(caller, domainauth.RoleFaculty, domainauth.RoleHOD, domainauth.RoleAdmin, domainauth.RoleSuperintendent); err != nil {
		return nil, err
	}
	posting, err := s.repo.CreatePosting(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create posting: %w", err)
	}
	return posting, nil
}

// SetPostingStatus moves a posting through its lifecycle.
func (s *ClinicalService) SetPostingStatus(ctx context.Context, caller domainauth.Session, id string, status model.PostingStatus) (*model.Posting, error) {
	if err := requireRole(caller, domainauth.RoleFaculty, domainauth.RoleHOD, domainauth.RoleAdmin, domainauth.RoleSuperintendent); err != nil {
		return nil, err
	}
	posting, err := s.repo.SetPostingStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("set posting status: %w", err)
	}
	return posting, nil
}

// ListLogbookEntries returns logbook entries visible to the caller.
// Students are always pinned to their own entries regardless of the filter;
// faculty-like roles default to the submitted queue.
func (s *ClinicalService) ListLogbookEntries(ctx context.Context, caller domainauth.Session, opts model.LogbookListOptions) ([]*model.LogbookEntry, error) {
	if caller.Role == domainauth.RoleStudent {
		opts.UserID = &caller.UserID
	} else if opts.Status == nil && opts.UserID == nil {
		submitted := model.LogbookSubmitted
		opts.Status = &submitted
	}
	entries, err := s.repo.ListLogbookEntries(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list logbook entries: %w", err)
	}
	return entries, nil
}

// CreateLogbookEntry records a clinical activity for the caller.
func (s *ClinicalService) CreateLogbookEntry(ctx context.Context, caller domainauth.Session, req *model.CreateLogbookEntryRequest) (*model.LogbookEntry, error) {
	if err := requireRole(caller, domainauth.RoleStudent); err != nil {
		return nil, err
	}
	entry, err := s.repo.CreateLogbookEntry(ctx, caller.UserID, req)
	if err != nil {
		return nil, fmt.Errorf("create logbook entry: %w", err)
	}
	return entry, nil
}

// SubmitLogbookEntry hands one of the caller's drafts in for verification.
func (s *ClinicalService) SubmitLogbookEntry(ctx context.Context, caller domainauth.Session, id string) (*model.LogbookEntry, error) {
	if err := requireRole(caller, domainauth.RoleStudent); err != nil {
		return nil, err
	}
	entry, err := s.repo.SubmitLogbookEntry(ctx, id, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("submit logbook entry: %w", err)
	}
	return entry, nil
}

// ReviewLogbookEntry applies a verification decision and notifies the
// student. Only faculty and heads of department verify.
func (s *ClinicalService) ReviewLogbookEntry(ctx context.Context, caller domainauth.Session, id string, req *model.ReviewLogbookEntryRequest) (*model.LogbookEntry, error) {
	if err := requireFacultyLike(caller); err != nil {
		return nil, err
	}

	entry, err := s.repo.ReviewLogbookEntry(ctx, id, caller.UserID, req)
	if err != nil {
		return nil, fmt.Errorf("review logbook entry: %w", err)
	}

	s.notifyReview(ctx, caller, entry)
	return entry, nil
}

// notifyReview tells the student about the decision. Notification failures
// are logged, not surfaced: the review itself already happened.
func (s *ClinicalService) notifyReview(ctx context.Context, reviewer domainauth.Session, entry *model.LogbookEntry) {
	if s.notifications == nil {
		return
	}

	title := "Logbook entry verified"
	kind := model.NotificationInfo
	if entry.Status == model.LogbookRejected {
		title = "Logbook entry rejected"
		kind = model.NotificationAction
	}
	link := "/clinical/logbooks"
	_, err := s.notifications.Create(ctx, &model.CreateNotificationRequest{
		UserID: entry.UserID,
		Kind:   kind,
		Title:  title,
		Body:   fmt.Sprintf("%s reviewed your %q entry.", reviewer.FullName, entry.Procedure),
		Link:   &link,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to notify student of logbook review",
			slog.String("entry_id", entry.ID),
			slog.String("error", err.Error()))
	}
}

// GetLogbookEntry retrieves an entry the caller may see.
func (s *ClinicalService) GetLogbookEntry(ctx context.Context, caller domainauth.Session, id string) (*model.LogbookEntry, error) {
	entry, err := s.repo.GetLogbookEntry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get logbook entry: %w", err)
	}
	if caller.Role == domainauth.RoleStudent && entry.UserID != caller.UserID {
		return nil, apperrors.NotFoundf("logbook entry %s not found", id)
	}
	return entry, nil
}
