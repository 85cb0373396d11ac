package service

import (
	"context"
	"fmt"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
	"github.com/medconnect/medconnect-api/internal/ports"
)

// AcademicServiceOptions groups dependencies for AcademicService.
type AcademicServiceOptions struct {
	Repo ports.AcademicRepository
}

// AcademicService serves the academic and learning pages: subjects,
// curriculum drill-down, resources and progress.
type AcademicService struct {
	repo ports.AcademicRepository
}

// NewAcademicService constructs a new AcademicService.
func NewAcademicService(opts AcademicServiceOptions) *AcademicService {
	if opts.Repo == nil {
		panic("academic service requires a repository")
	}
	return &AcademicService{repo: opts.Repo}
}

// ListSubjects returns the caller's college curriculum. Everyone sees only
// their own college.
func (s *AcademicService) ListSubjects(ctx context.Context, caller domainauth.Session) ([]*model.Subject, error) {
	subjects, err := s.repo.ListSubjects(ctx, caller.CollegeID)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// GetSubject retrieves one subject of the caller's college.
func (s *AcademicService) GetSubject(ctx context.Context, caller domainauth.Session, id string) (*model.Subject, error) {
	subject, err := s.repo.GetSubject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}
	if subject.CollegeID != caller.CollegeID {
		return nil, errSubjectNotVisible(id)
	}
	return subject, nil
}

// CreateSubject adds a subject to the curriculum. Curriculum changes are for
// heads of department and admins.
func (s *AcademicService) CreateSubject(ctx context.Context, caller domainauth.Session, req *model.CreateSubjectRequest) (*model.Subject, error) {
	if err := requireRole(caller, domainauth.RoleHOD, domainauth.RoleAdmin, domainauth.RolePrincipal); err != nil {
		return nil, err
	}
	// Curriculum changes stay inside the caller's own college.
	if req != nil && req.CollegeID == "" {
		req.CollegeID = caller.CollegeID
	}
	if req != nil && req.CollegeID != caller.CollegeID {
		return nil, errSubjectNotVisible(req.CollegeID)
	}

	subject, err := s.repo.CreateSubject(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}
	return subject, nil
}

// ListModules returns the curriculum modules of a subject the caller can see.
func (s *AcademicService) ListModules(ctx context.Context, caller domainauth.Session, subjectID string) ([]*model.CurriculumModule, error) {
	if _, err := s.GetSubject(ctx, caller, subjectID); err != nil {
		return nil, err
	}
	modules, err := s.repo.ListModules(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return modules, nil
}

// ListResources returns learning resources. The bookmark filter is always
// evaluated against the caller's own bookmarks.
func (s *AcademicService) ListResources(ctx context.Context, caller domainauth.Session, opts model.ResourceListOptions) ([]*model.LearningResource, error) {
	opts.ForUserID = caller.UserID
	resources, err := s.repo.ListResources(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return resources, nil
}

// RecordProgress records the caller's progress on a resource.
func (s *AcademicService) RecordProgress(ctx context.Context, caller domainauth.Session, req *model.RecordProgressRequest) (*model.ResourceProgress, error) {
	progress, err := s.repo.RecordProgress(ctx, caller.UserID, req)
	if err != nil {
		return nil, fmt.Errorf("record progress: %w", err)
	}
	return progress, nil
}

// ListProgress returns the caller's progress records.
func (s *AcademicService) ListProgress(ctx context.Context, caller domainauth.Session) ([]*model.ResourceProgress, error) {
	progress, err := s.repo.ListProgress(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return progress, nil
}

// errSubjectNotVisible hides foreign colleges' subjects: they are
// indistinguishable from missing ones.
func errSubjectNotVisible(id string) error {
	return apperrors.NotFoundf("subject %s not found", id)
}
