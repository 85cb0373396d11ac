package httpx

import (
	"net/http"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/service"
)

// DirectoryHandlers provides HTTP handlers for colleges and people listings.
type DirectoryHandlers struct {
	Svc *service.DirectoryService
}

// ListColleges handles GET /colleges. Public: the registration form needs
// the list before any session exists.
func (h *DirectoryHandlers) ListColleges(w http.ResponseWriter, r *http.Request) {
	colleges, err := h.Svc.ListColleges(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, colleges)
}

// RegisterCollege handles POST /colleges.
func (h *DirectoryHandlers) RegisterCollege(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	var req model.CreateCollegeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	college, err := h.Svc.RegisterCollege(r.Context(), caller, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, college)
}

// ListStudents handles GET /students?q=...
func (h *DirectoryHandlers) ListStudents(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	students, err := h.Svc.ListStudents(r.Context(), caller, optStringQuery(r, "q"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, students)
}

// ListFaculty handles GET /faculty?q=...
func (h *DirectoryHandlers) ListFaculty(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	faculty, err := h.Svc.ListFaculty(r.Context(), caller, optStringQuery(r, "q"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, faculty)
}

// GetProfile handles GET /users/me.
func (h *DirectoryHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	user, err := h.Svc.GetProfile(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}
