package service

import (
	"context"
	"fmt"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/ports"
)

// HostelServiceOptions groups dependencies for HostelService.
type HostelServiceOptions struct {
	Repo ports.HostelRepository
}

// HostelService serves the hostel page: rooms, allocations and visitor
// requests. Allocation decisions belong to admins and superintendents.
type HostelService struct {
	repo ports.HostelRepository
}

// NewHostelService constructs a new HostelService.
func NewHostelService(opts HostelServiceOptions) *HostelService {
	if opts.Repo == nil {
		panic("hostel service requires a repository")
	}
	return &HostelService{repo: opts.Repo}
}

// ListHostels returns the hostels of the caller's college.
func (s *HostelService) ListHostels(ctx context.Context, caller domainauth.Session) ([]*model.Hostel, error) {
	hostels, err := s.repo.ListHostels(ctx, caller.CollegeID)
	if err != nil {
		return nil, fmt.Errorf("list hostels: %w", err)
	}
	return hostels, nil
}

// ListRooms returns rooms matching the filters.
func (s *HostelService) ListRooms(ctx context.Context, opts model.RoomListOptions) ([]*model.Room, error) {
	rooms, err := s.repo.ListRooms(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// AllocateRoom assigns a student to a room.
func (s *HostelService) AllocateRoom(ctx context.Context, caller domainauth.Session, req *model.AllocateRoomRequest) (*model.RoomAllocation, error) {
	if err := requireRole(caller, domainauth.RoleAdmin, domainauth.RoleSuperintendent); err != nil {
		return nil, err
	}
	alloc, err := s.repo.AllocateRoom(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("allocate room: %w", err)
	}
	return alloc, nil
}

// VacateRoom ends an allocation.
func (s *HostelService) VacateRoom(ctx context.Context, caller domainauth.Session, allocationID string) (*model.RoomAllocation, error) {
	if err := requireRole(caller, domainauth.RoleAdmin, domainauth.RoleSuperintendent); err != nil {
		return nil, err
	}
	alloc, err := s.repo.VacateRoom(ctx, allocationID)
	if err != nil {
		return nil, fmt.Errorf("vacate room: %w", err)
	}
	return alloc, nil
}

// MyAllocations returns the caller's own room history.
func (s *HostelService) MyAllocations(ctx context.Context, caller domainauth.Session) ([]*model.RoomAllocation, error) {
	allocations, err := s.repo.ListAllocations(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	return allocations, nil
}

// RequestVisitor files a visitor request for the caller.
func (s *HostelService) RequestVisitor(ctx context.Context, caller domainauth.Session, req *model.CreateVisitorLogRequest) (*model.VisitorLog, error) {
	if err := requireRole(caller, domainauth.RoleStudent); err != nil {
		return nil, err
	}
	visit, err := s.repo.CreateVisitorLog(ctx, caller.UserID, req)
	if err != nil {
		return nil, fmt.Errorf("create visitor log: %w", err)
	}
	return visit, nil
}

// ListVisitors returns a hostel's visitor log. Wardens' staff, admins and
// superintendents see the full log.
func (s *HostelService) ListVisitors(ctx context.Context, caller domainauth.Session, hostelID string) ([]*model.VisitorLog, error) {
	if err := requireRole(caller, domainauth.RoleAdmin, domainauth.RoleSuperintendent, domainauth.RolePrincipal); err != nil {
		return nil, err
	}
	visits, err := s.repo.ListVisitorLogs(ctx, hostelID)
	if err != nil {
		return nil, fmt.Errorf("list visitor logs: %w", err)
	}
	return visits, nil
}

// MyVisitors returns the caller's own visitor requests.
func (s *HostelService) MyVisitors(ctx context.Context, caller domainauth.Session) ([]*model.VisitorLog, error) {
	visits, err := s.repo.ListVisitorLogsForResident(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list own visitor logs: %w", err)
	}
	return visits, nil
}

// DecideVisitor moves a visitor request through its lifecycle.
func (s *HostelService) DecideVisitor(ctx context.Context, caller domainauth.Session, id string, status model.VisitorStatus) (*model.VisitorLog, error) {
	if err := requireRole(caller, domainauth.RoleAdmin, domainauth.RoleSuperintendent); err != nil {
		return nil, err
	}
	visit, err := s.repo.SetVisitorStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("set visitor status: %w", err)
	}
	return visit, nil
}
