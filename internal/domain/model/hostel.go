package model

import (
	"errors"
	"strings"
	"time"
)

// RoomStatus is the occupancy state of a hostel room.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
	RoomReserved    RoomStatus = "reserved"
)

// Valid reports whether the room status is supported.
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomReserved:
		return true
	default:
		return false
	}
}

// VisitorStatus is the approval lifecycle of a visitor request.
type VisitorStatus string

const (
	VisitorPending   VisitorStatus = "pending"
	VisitorApproved  VisitorStatus = "approved"
	VisitorRejected  VisitorStatus = "rejected"
	VisitorCompleted VisitorStatus = "completed"
)

// Valid reports whether the visitor status is supported.
func (s VisitorStatus) Valid() bool {
	switch s {
	case VisitorPending, VisitorApproved, VisitorRejected, VisitorCompleted:
		return true
	default:
		return false
	}
}

// Hostel represents one residence building of a college.
type Hostel struct {
	ID        string    `json:"id"         db:"id"`
	CollegeID string    `json:"college_id" db:"college_id"`
	Name      string    `json:"name"       db:"name"`
	Warden    string    `json:"warden"     db:"warden"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Room represents a hostel room and its capacity.
type Room struct {
	ID        string     `json:"id"         db:"id"`
	HostelID  string     `json:"hostel_id"  db:"hostel_id"`
	Number    string     `json:"number"     db:"number"`
	Floor     int        `json:"floor"      db:"floor"`
	Capacity  int        `json:"capacity"   db:"capacity"`
	Occupied  int        `json:"occupied"   db:"occupied"`
	Status    RoomStatus `json:"status"     db:"status"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// HasSpace reports whether the room can take another resident.
func (r Room) HasSpace() bool {
	return r.Status == RoomAvailable && r.Occupied < r.Capacity
}

// RoomAllocation assigns a student to a room.
type RoomAllocation struct {
	ID         string     `json:"id"          db:"id"`
	RoomID     string     `json:"room_id"     db:"room_id"`
	UserID     string     `json:"user_id"     db:"user_id"`
	AllocatedAt time.Time `json:"allocated_at" db:"allocated_at"`
	VacatedAt  *time.Time `json:"vacated_at,omitempty" db:"vacated_at"`
}

// Active reports whether the allocation is current.
func (a RoomAllocation) Active() bool {
	return a.VacatedAt == nil
}

// VisitorLog records a visitor request for a hostel resident.
type VisitorLog struct {
	ID          string        `json:"id"           db:"id"`
	HostelID    string        `json:"hostel_id"    db:"hostel_id"`
	ResidentID  string        `json:"resident_id"  db:"resident_id"`
	VisitorName string        `json:"visitor_name" db:"visitor_name"`
	Relation    string        `json:"relation"     db:"relation"`
	VisitDate   time.Time     `json:"visit_date"   db:"visit_date"`
	Status      VisitorStatus `json:"status"       db:"status"`
	CheckedIn   *time.Time    `json:"checked_in,omitempty"  db:"checked_in"`
	CheckedOut  *time.Time    `json:"checked_out,omitempty" db:"checked_out"`
	CreatedAt   time.Time     `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"   db:"updated_at"`
}

// AllocateRoomRequest represents parameters to assign a student to a room.
type AllocateRoomRequest struct {
	RoomID string `json:"room_id"`
	UserID string `json:"user_id"`
}

// Validate validates AllocateRoomRequest.
func (r *AllocateRoomRequest) Validate() error {
	if strings.TrimSpace(r.RoomID) == "" {
		return errors.New("room_id is required")
	}
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user_id is required")
	}
	return nil
}

// CreateVisitorLogRequest represents a new visitor request.
type CreateVisitorLogRequest struct {
	HostelID    string    `json:"hostel_id"`
	VisitorName string    `json:"visitor_name"`
	Relation    string    `json:"relation"`
	VisitDate   time.Time `json:"visit_date"`
}

// Validate validates CreateVisitorLogRequest.
func (r *CreateVisitorLogRequest) Validate() error {
	if strings.TrimSpace(r.HostelID) == "" {
		return errors.New("hostel_id is required")
	}
	if strings.TrimSpace(r.VisitorName) == "" {
		return errors.New("visitor_name is required and cannot be empty")
	}
	if r.VisitDate.IsZero() {
		return errors.New("visit_date is required")
	}
	return nil
}

// RoomListOptions controls filtering when listing rooms.
type RoomListOptions struct {
	HostelID *string
	Status   *RoomStatus
	Floor    *int
}
