package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/ports"
)

// GovernanceServiceOptions groups dependencies for GovernanceService.
type GovernanceServiceOptions struct {
	Users    ports.UserRepository
	Clinical ports.ClinicalRepository
	Admin    ports.AdminRepository
	Hostel   ports.HostelRepository
}

// GovernanceService serves the leadership analytics page: headcounts, review
// backlogs and occupancy rolled up per college.
type GovernanceService struct {
	users    ports.UserRepository
	clinical ports.ClinicalRepository
	admin    ports.AdminRepository
	hostel   ports.HostelRepository
}

// NewGovernanceService constructs a new GovernanceService.
func NewGovernanceService(opts GovernanceServiceOptions) *GovernanceService {
	if opts.Users == nil || opts.Clinical == nil || opts.Admin == nil || opts.Hostel == nil {
		panic("governance service requires all repositories")
	}
	return &GovernanceService{
		users:    opts.Users,
		clinical: opts.Clinical,
		admin:    opts.Admin,
		hostel:   opts.Hostel,
	}
}

// DepartmentLoad is the verification backlog of one clinical department.
type DepartmentLoad struct {
	Department      string `json:"department"`
	PendingLogbooks int    `json:"pending_logbooks"`
}

// HostelOccupancy summarizes one hostel's bed usage.
type HostelOccupancy struct {
	HostelID string `json:"hostel_id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Occupied int    `json:"occupied"`
}

// GovernanceDashboard is the analytics payload for college leadership.
type GovernanceDashboard struct {
	Students            int               `json:"students"`
	Faculty             int               `json:"faculty"`
	ActivePostings      int               `json:"active_postings"`
	PendingLogbooks     int               `json:"pending_logbooks"`
	PendingCertificates int               `json:"pending_certificates"`
	UpcomingEvents      int               `json:"upcoming_events"`
	Departments         []DepartmentLoad  `json:"departments"`
	Hostels             []HostelOccupancy `json:"hostels"`
}

// Dashboard assembles the governance metrics for the caller's college. Only
// leadership roles see it. The sections are independent and fetched
// concurrently, the way the landing page is.
func (s *GovernanceService) Dashboard(ctx context.Context, caller domainauth.Session) (*GovernanceDashboard, error) {
	err := requireRole(caller,
		domainauth.RoleHOD,
		domainauth.RoleDME,
		domainauth.RolePrincipal,
		domainauth.RoleSuperintendent,
	)
	if err != nil {
		return nil, err
	}

	var dash GovernanceDashboard

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.countUsers(gctx, caller.CollegeID, domainauth.RoleStudent)
		if err != nil {
			return fmt.Errorf("students: %w", err)
		}
		dash.Students = n
		return nil
	})

	g.Go(func() error {
		n, err := s.countUsers(gctx, caller.CollegeID, domainauth.RoleFaculty)
		if err != nil {
			return fmt.Errorf("faculty: %w", err)
		}
		dash.Faculty = n
		return nil
	})

	g.Go(func() error {
		postings, err := s.clinical.ListPostings(gctx, "")
		if err != nil {
			return fmt.Errorf("postings: %w", err)
		}
		for _, p := range postings {
			if p.Status == model.PostingActive {
				dash.ActivePostings++
			}
		}
		return nil
	})

	g.Go(func() error {
		count, departments, err := s.logbookBacklog(gctx)
		if err != nil {
			return fmt.Errorf("logbooks: %w", err)
		}
		dash.PendingLogbooks = count
		dash.Departments = departments
		return nil
	})

	g.Go(func() error {
		certs, err := s.admin.ListPendingCertificates(gctx)
		if err != nil {
			return fmt.Errorf("certificates: %w", err)
		}
		dash.PendingCertificates = len(certs)
		return nil
	})

	g.Go(func() error {
		events, err := s.admin.ListEvents(gctx, caller.CollegeID)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		now := time.Now()
		for _, e := range events {
			if e.EndsAt.After(now) {
				dash.UpcomingEvents++
			}
		}
		return nil
	})

	g.Go(func() error {
		occupancy, err := s.hostelOccupancy(gctx, caller.CollegeID)
		if err != nil {
			return fmt.Errorf("hostels: %w", err)
		}
		dash.Hostels = occupancy
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load governance dashboard: %w", err)
	}
	return &dash, nil
}

func (s *GovernanceService) countUsers(ctx context.Context, collegeID string, role domainauth.Role) (int, error) {
	users, err := s.users.List(ctx, model.UsersListOptions{
		Role:      &role,
		CollegeID: &collegeID,
	})
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// logbookBacklog counts entries awaiting verification and attributes each to
// its posting's department. Postings are resolved once and memoized.
func (s *GovernanceService) logbookBacklog(ctx context.Context) (int, []DepartmentLoad, error) {
	status := model.LogbookSubmitted
	entries, err := s.clinical.ListLogbookEntries(ctx, model.LogbookListOptions{Status: &status})
	if err != nil {
		return 0, nil, err
	}

	byDepartment := make(map[string]int)
	postings := make(map[string]*model.Posting)
	for _, entry := range entries {
		posting, ok := postings[entry.PostingID]
		if !ok {
			posting, err = s.clinical.GetPosting(ctx, entry.PostingID)
			if err != nil {
				return 0, nil, fmt.Errorf("posting %s: %w", entry.PostingID, err)
			}
			postings[entry.PostingID] = posting
		}
		byDepartment[posting.Department]++
	}

	departments := make([]DepartmentLoad, 0, len(byDepartment))
	for department, pending := range byDepartment {
		departments = append(departments, DepartmentLoad{Department: department, PendingLogbooks: pending})
	}
	sort.Slice(departments, func(i, j int) bool {
		if departments[i].PendingLogbooks != departments[j].PendingLogbooks {
			return departments[i].PendingLogbooks > departments[j].PendingLogbooks
		}
		return departments[i].Department < departments[j].Department
	})
	return len(entries), departments, nil
}

func (s *GovernanceService) hostelOccupancy(ctx context.Context, collegeID string) ([]HostelOccupancy, error) {
	hostels, err := s.hostel.ListHostels(ctx, collegeID)
	if err != nil {
		return nil, err
	}

	out := make([]HostelOccupancy, 0, len(hostels))
	for _, h := range hostels {
		rooms, err := s.hostel.ListRooms(ctx, model.RoomListOptions{HostelID: &h.ID})
		if err != nil {
			return nil, fmt.Errorf("rooms of %s: %w", h.ID, err)
		}
		occ := HostelOccupancy{HostelID: h.ID, Name: h.Name}
		for _, room := range rooms {
			occ.Capacity += room.Capacity
			occ.Occupied += room.Occupied
		}
		out = append(out, occ)
	}
	return out, nil
}
