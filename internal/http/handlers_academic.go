package httpx

import (
	"net/http"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/service"
)

// AcademicHandlers provides HTTP handlers for subjects, curriculum modules,
// learning resources and progress.
type AcademicHandlers struct {
	Svc *service.AcademicService
}

// ListSubjects handles GET /academic/subjects.
func (h *AcademicHandlers) ListSubjects(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	subjects, err := h.Svc.ListSubjects(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, subjects)
}

// GetSubject handles GET /academic/subjects/{id}.
func (h *AcademicHandlers) GetSubject(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	subject, err := h.Svc.GetSubject(r.Context(), caller, id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, subject)
}

// CreateSubject handles POST /academic/subjects.
func (h *AcademicHandlers) CreateSubject(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	var req model.CreateSubjectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	subject, err := h.Svc.CreateSubject(r.Context(), caller, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, subject)
}

// ListModules handles GET /academic/subjects/{id}/modules.
func (h *AcademicHandlers) ListModules(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	modules, err := h.Svc.ListModules(r.Context(), caller, id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, modules)
}

// ListResources handles GET /academic/resources. Query parameters: module,
// q, bookmarked.
func (h *AcademicHandlers) ListResources(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	opts := model.ResourceListOptions{
		ModuleID:       optStringQuery(r, "module"),
		Q:              optStringQuery(r, "q"),
		BookmarkedOnly: boolQuery(r, "bookmarked"),
	}

	resources, err := h.Svc.ListResources(r.Context(), caller, opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, resources)
}

// RecordProgress handles POST /academic/progress.
func (h *AcademicHandlers) RecordProgress(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	var req model.RecordProgressRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	progress, err := h.Svc.RecordProgress(r.Context(), caller, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, progress)
}

// ListProgress handles GET /academic/progress/me.
func (h *AcademicHandlers) ListProgress(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	progress, err := h.Svc.ListProgress(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, progress)
}
