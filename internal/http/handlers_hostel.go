package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/service"
)

// HostelHandlers provides HTTP handlers for hostels, rooms, allocations and
// visitor logs.
type HostelHandlers struct {
	Svc *service.HostelService
}

// ListHostels handles GET /hostel/hostels.
func (h *HostelHandlers) ListHostels(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	hostels, err := h.Svc.ListHostels(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, hostels)
}

// ListRooms handles GET /hostel/rooms. Query parameters: hostel, status,
// floor.
func (h *HostelHandlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerSession(w, r); !ok {
		return
	}

	opts := model.RoomListOptions{HostelID: optStringQuery(r, "hostel")}
	if raw := optStringQuery(r, "status"); raw != nil {
		status := model.RoomStatus(strings.ToLower(*raw))
		if !status.Valid() {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_query",
				Err:     errors.New("status is not a recognized room status"),
			})
			return
		}
		opts.Status = &status
	}
	if r.URL.Query().Has("floor") {
		floor := parseIntQuery(r, "floor", 0)
		opts.Floor = &floor
	}

	rooms, err := h.Svc.ListRooms(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rooms)
}

// AllocateRoom handles POST /hostel/allocations.
func (h *HostelHandlers) AllocateRoom(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	var req model.AllocateRoomRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	allocation, err := h.Svc.AllocateRoom(r.Context(), caller, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, allocation)
}

// VacateRoom handles POST /hostel/allocations/{id}/vacate.
func (h *HostelHandlers) VacateRoom(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	allocation, err := h.Svc.VacateRoom(r.Context(), caller, id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, allocation)
}

// MyAllocations handles GET /hostel/allocations/me.
func (h *HostelHandlers) MyAllocations(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	allocations, err := h.Svc.MyAllocations(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, allocations)
}

// RequestVisitor handles POST /hostel/visitors.
func (h *HostelHandlers) RequestVisitor(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	var req model.CreateVisitorLogRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	visit, err := h.Svc.RequestVisitor(r.Context(), caller, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, visit)
}

// ListVisitors handles GET /hostel/visitors?hostel=... for housing staff
// working the approval queue.
func (h *HostelHandlers) ListVisitors(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	hostelID := r.URL.Query().Get("hostel")
	visits, err := h.Svc.ListVisitors(r.Context(), caller, hostelID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, visits)
}

// MyVisitors handles GET /hostel/visitors/me: the caller's own requests.
func (h *HostelHandlers) MyVisitors(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	visits, err := h.Svc.MyVisitors(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, visits)
}

type visitorStatusRequest struct {
	Status model.VisitorStatus `json:"status"`
}

// DecideVisitor handles PUT /hostel/visitors/{id}/status.
func (h *HostelHandlers) DecideVisitor(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req visitorStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	visit, err := h.Svc.DecideVisitor(r.Context(), caller, id, req.Status)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, visit)
}
