package httpx

import (
	"errors"
	"net/http"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/service"
)

// AdminHandlers provides HTTP handlers for certificates, notices, events and
// event registrations.
type AdminHandlers struct {
	Svc *service.AdminService
}

// RequestCertificate handles POST /admin/certificates.
func (h *AdminHandlers) RequestCertificate(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	var req model.RequestCertificateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	cert, err := h.Svc.RequestCertificate(r.Context(), caller, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, cert)
}

// MyCertificates handles GET /admin/certificates/me?status=... The status
// filter accepts "pending" as an alias for the stored "submitted".
func (h *AdminHandlers) MyCertificates(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	var status *model.CertificateStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, ok := model.ParseCertStatus(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_query",
				Err:     errors.New("status is not a recognized certificate status"),
			})
			return
		}
		status = &parsed
	}

	certs, err := h.Svc.MyCertificates(r.Context(), caller, status)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, certs)
}

// PendingCertificates handles GET /admin/certificates/pending.
func (h *AdminHandlers) PendingCertificates(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	certs, err := h.Svc.PendingCertificates(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, certs)
}

// ReviewCertificate handles POST /admin/certificates/{id}/review.
func (h *AdminHandlers) ReviewCertificate(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.ReviewCertificateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	cert, err := h.Svc.ReviewCertificate(r.Context(), caller, id, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, cert)
}

// PublishNotice handles POST /admin/notices.
func (h *AdminHandlers) PublishNotice(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	var req model.CreateNoticeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	notice, err := h.Svc.PublishNotice(r.Context(), caller, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, notice)
}

// ListNotices handles GET /admin/notices.
func (h *AdminHandlers) ListNotices(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	notices, err := h.Svc.ListNotices(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, notices)
}

// CreateEvent handles POST /admin/events.
func (h *AdminHandlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	var req model.CreateEventRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	event, err := h.Svc.CreateEvent(r.Context(), caller, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /admin/events.
func (h *AdminHandlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	events, err := h.Svc.ListEvents(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, events)
}

// RegisterForEvent handles POST /admin/events/{id}/register.
func (h *AdminHandlers) RegisterForEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	registration, err := h.Svc.RegisterForEvent(r.Context(), caller, id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, registration)
}

// MyRegistrations handles GET /admin/events/registrations/me.
func (h *AdminHandlers) MyRegistrations(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	registrations, err := h.Svc.MyRegistrations(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, registrations)
}
