package fixture

import (
	"context"
	"sort"
	"strings"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
)

// HostelRepo is the fixture-backed hostel repository.
type HostelRepo struct {
	s *state
}

// ListHostels returns the hostels of a college, ordered by name.
func (r *HostelRepo) ListHostels(_ context.Context, collegeID string) ([]*model.Hostel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Hostel
	for _, h := range r.s.hostels {
		if h.CollegeID != collegeID {
			continue
		}
		hh := *h
		out = append(out, &hh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListRooms returns rooms matching the options, ordered by room number.
func (r *HostelRepo) ListRooms(_ context.Context, opts model.RoomListOptions) ([]*model.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Room
	for _, room := range r.s.rooms {
		if opts.HostelID != nil && room.HostelID != *opts.HostelID {
			continue
		}
		if opts.Status != nil && room.Status != *opts.Status {
			continue
		}
		if opts.Floor != nil && room.Floor != *opts.Floor {
			continue
		}
		rr := *room
		out = append(out, &rr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// GetRoom retrieves a room by ID.
func (r *HostelRepo) GetRoom(_ context.Context, id string) (*model.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	room, ok := r.s.rooms[id]
	if !ok {
		return nil, apperrors.NotFoundf("room %s not found", id)
	}
	rr := *room
	return &rr, nil
}

// AllocateRoom assigns a student to a room with space. A student holds at
// most one active allocation; a full room flips to occupied.
func (r *HostelRepo) AllocateRoom(_ context.Context, req *model.AllocateRoomRequest) (*model.RoomAllocation, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.rooms[req.RoomID]
	if !ok {
		return nil, apperrors.NotFoundf("room %s not found", req.RoomID)
	}
	if _, ok := r.s.users[req.UserID]; !ok {
		return nil, apperrors.NotFoundf("user %s not found", req.UserID)
	}
	if !room.HasSpace() {
		return nil, apperrors.Conflict("Room has no free space.")
	}
	for _, a := range r.s.allocations {
		if a.UserID == req.UserID && a.Active() {
			return nil, apperrors.Conflict("Student already holds a room allocation.")
		}
	}

	now := r.s.now()
	alloc := &model.RoomAllocation{
		ID:          newID(),
		RoomID:      req.RoomID,
		UserID:      req.UserID,
		AllocatedAt: now,
	}
	r.s.allocations[alloc.ID] = alloc

	room.Occupied++
	if room.Occupied >= room.Capacity {
		room.Status = model.RoomOccupied
	}
	room.UpdatedAt = now

	aa := *alloc
	return &aa, nil
}

// VacateRoom ends an active allocation and frees its spot.
func (r *HostelRepo) VacateRoom(_ context.Context, allocationID string) (*model.RoomAllocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	alloc, ok := r.s.allocations[allocationID]
	if !ok {
		return nil, apperrors.NotFoundf("allocation %s not found", allocationID)
	}
	if !alloc.Active() {
		return nil, apperrors.Conflict("Allocation has already been vacated.")
	}

	now := r.s.now()
	t := now
	alloc.VacatedAt = &t

	if room, ok := r.s.rooms[alloc.RoomID]; ok {
		if room.Occupied > 0 {
			room.Occupied--
		}
		if room.Status == model.RoomOccupied && room.Occupied < room.Capacity {
			room.Status = model.RoomAvailable
		}
		room.UpdatedAt = now
	}

	aa := *alloc
	return &aa, nil
}

// ListAllocations returns a student's allocations, most recent first.
func (r *HostelRepo) ListAllocations(_ context.Context, userID string) ([]*model.RoomAllocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.RoomAllocation
	for _, a := range r.s.allocations {
		if userID != "" && a.UserID != userID {
			continue
		}
		aa := *a
		out = append(out, &aa)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AllocatedAt.After(out[j].AllocatedAt) })
	return out, nil
}

// CreateVisitorLog files a visitor request for a resident. Requests start
// pending until the warden decides.
func (r *HostelRepo) CreateVisitorLog(_ context.Context, residentID string, req *model.CreateVisitorLogRequest) (*model.VisitorLog, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.hostels[req.HostelID]; !ok {
		return nil, apperrors.NotFoundf("hostel %s not found", req.HostelID)
	}

	now := r.s.now()
	v := &model.VisitorLog{
		ID:          newID(),
		HostelID:    req.HostelID,
		ResidentID:  residentID,
		VisitorName: strings.TrimSpace(req.VisitorName),
		Relation:    req.Relation,
		VisitDate:   req.VisitDate,
		Status:      model.VisitorPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.visitors[v.ID] = v
	vv := *v
	return &vv, nil
}

// ListVisitorLogs returns the visitor log of a hostel, newest visit first.
func (r *HostelRepo) ListVisitorLogs(_ context.Context, hostelID string) ([]*model.VisitorLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.VisitorLog
	for _, v := range r.s.visitors {
		if hostelID != "" && v.HostelID != hostelID {
			continue
		}
		vv := *v
		out = append(out, &vv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitDate.After(out[j].VisitDate) })
	return out, nil
}

// ListVisitorLogsForResident returns a resident's own visitor requests,
// newest visit first.
func (r *HostelRepo) ListVisitorLogsForResident(_ context.Context, residentID string) ([]*model.VisitorLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.VisitorLog
	for _, v := range r.s.visitors {
		if v.ResidentID != residentID {
			continue
		}
		vv := *v
		out = append(out, &vv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitDate.After(out[j].VisitDate) })
	return out, nil
}

// SetVisitorStatus moves a visitor request through its lifecycle. Approval
// stamps check-in; completion stamps check-out.
func (r *HostelRepo) SetVisitorStatus(_ context.Context, id string, status model.VisitorStatus) (*model.VisitorLog, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("unknown visitor status %q", status)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.visitors[id]
	if !ok {
		return nil, apperrors.NotFoundf("visitor log %s not found", id)
	}

	now := r.s.now()
	switch status {
	case model.VisitorApproved:
		if v.Status != model.VisitorPending {
			return nil, apperrors.Conflictf("visitor request is %s, only pending requests can be approved", v.Status)
		}
		t := now
		v.CheckedIn = &t
	case model.VisitorRejected:
		if v.Status != model.VisitorPending {
			return nil, apperrors.Conflictf("visitor request is %s, only pending requests can be rejected", v.Status)
		}
	case model.VisitorCompleted:
		if v.Status != model.VisitorApproved {
			return nil, apperrors.Conflictf("visitor request is %s, only approved visits can be completed", v.Status)
		}
		t := now
		v.CheckedOut = &t
	case model.VisitorPending:
		return nil, apperrors.Validation("visitor requests cannot return to pending")
	}

	v.Status = status
	v.UpdatedAt = now
	vv := *v
	return &vv, nil
}
