package service

import (
	"context"
	"fmt"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/ports"
)

// DirectoryServiceOptions groups dependencies for DirectoryService.
type DirectoryServiceOptions struct {
	Users    ports.UserRepository
	Colleges ports.CollegeRepository
}

// DirectoryService serves colleges and people listings. The college list is
// public (the registration form needs it before any session exists).
type DirectoryService struct {
	users    ports.UserRepository
	colleges ports.CollegeRepository
}

// NewDirectoryService constructs a new DirectoryService.
func NewDirectoryService(opts DirectoryServiceOptions) *DirectoryService {
	if opts.Users == nil || opts.Colleges == nil {
		panic("directory service requires user and college repositories")
	}
	return &DirectoryService{users: opts.Users, colleges: opts.Colleges}
}

// ListColleges returns every registered college.
func (s *DirectoryService) ListColleges(ctx context.Context) ([]*model.College, error) {
	colleges, err := s.colleges.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return colleges, nil
}

// RegisterCollege adds a college to the portal. Only the directorate
// onboards colleges.
func (s *DirectoryService) RegisterCollege(ctx context.Context, caller domainauth.Session, req *model.CreateCollegeRequest) (*model.College, error) {
	if err := requireRole(caller, domainauth.RoleDME); err != nil {
		return nil, err
	}
	college, err := s.colleges.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create college: %w", err)
	}
	return college, nil
}

// ListStudents returns the student directory of the caller's college.
// Students do not browse the directory.
func (s *DirectoryService) ListStudents(ctx context.Context, caller domainauth.Session, q *string) ([]*model.User, error) {
	if err := requireRole(caller, staffRoles...); err != nil {
		return nil, err
	}
	role := domainauth.RoleStudent
	users, err := s.users.List(ctx, model.UsersListOptions{
		Role:      &role,
		CollegeID: &caller.CollegeID,
		Q:         q,
	})
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return users, nil
}

// ListFaculty returns the faculty directory of the caller's college.
func (s *DirectoryService) ListFaculty(ctx context.Context, caller domainauth.Session, q *string) ([]*model.User, error) {
	if err := requireRole(caller, staffRoles...); err != nil {
		return nil, err
	}
	role := domainauth.RoleFaculty
	users, err := s.users.List(ctx, model.UsersListOptions{
		Role:      &role,
		CollegeID: &caller.CollegeID,
		Q:         q,
	})
	if err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	return users, nil
}

// GetProfile returns the caller's own account.
func (s *DirectoryService) GetProfile(ctx context.Context, caller domainauth.Session) (*model.User, error) {
	user, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}
